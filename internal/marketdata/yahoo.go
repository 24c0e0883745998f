package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// YahooClient fetches daily bars from the Yahoo Finance v8 chart API.
// Yahoo throttles aggressively, so requests rotate across both query hosts
// with short backoffs before giving up.
type YahooClient struct {
	baseURLs []string
	client   *http.Client
	backoffs []time.Duration
}

// NewYahooClient creates a Yahoo Finance client with sane timeouts.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		baseURLs: []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"},
		client:   &http.Client{Timeout: 15 * time.Second},
		backoffs: []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second},
	}
}

// NewYahooClientWithBase creates a client pinned to a single base URL,
// used by tests to point at a local server.
func NewYahooClientWithBase(base string) *YahooClient {
	return &YahooClient{
		baseURLs: []string{strings.TrimRight(base, "/")},
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// FetchDaily fetches the daily bar series for a symbol over the given
// lookback range (Yahoo range syntax, e.g. "2y"). Returns ErrNoData when the
// API has no usable bars for the symbol.
func (y *YahooClient) FetchDaily(ctx context.Context, symbol, period string) ([]models.PriceBar, error) {
	var yc yahooChartResp
	var lastErr error

	for attempt := 0; attempt < len(y.backoffs)+1; attempt++ {
		for _, base := range y.baseURLs {
			url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d&events=div,splits", base, symbol, period)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to build request: %w", err)
			}
			req.Header.Set("User-Agent", defaultUserAgent)
			req.Header.Set("Accept", "application/json")

			resp, err := y.client.Do(req)
			if err != nil {
				lastErr = err
				continue
			}
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read yahoo response: %w", readErr)
				continue
			}
			if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
			}
			if resp.StatusCode != http.StatusOK {
				lastErr = fmt.Errorf("yahoo %s returned %d", base, resp.StatusCode)
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %w", err)
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(y.backoffs) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(y.backoffs[attempt]):
			}
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to fetch market data for %s: %w", symbol, lastErr)
	}

	bars := barsFromChart(&yc)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return bars, nil
}

// barsFromChart flattens the chart payload into ordered daily bars, dropping
// entries with a missing close (Yahoo reports unfilled sessions as zeros).
func barsFromChart(yc *yahooChartResp) []models.PriceBar {
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil
	}
	result := yc.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		bar := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: quote.Close[i],
		}
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}
