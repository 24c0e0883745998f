// Package indicators computes technical indicators over daily OHLCV series.
// All functions operate on closing prices ordered by date ascending.
package indicators

import (
	"errors"
	"math"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

var (
	// ErrEmptySeries is returned when a series contains no bars at all.
	ErrEmptySeries = errors.New("empty price series")
	// ErrInsufficientData is returned when a series is too short for the
	// requested window. Indicators are never computed over a shortened
	// window; the value is absent rather than approximated.
	ErrInsufficientData = errors.New("insufficient data for indicator window")
)

// SMA computes the arithmetic mean of the last period closes.
func SMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period), nil
}

// EMA computes the exponential moving average series, seeded with the SMA of
// the first period closes. The returned slice holds one value per input bar
// from index period-1 onward.
func EMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < period {
		return nil, ErrInsufficientData
	}
	out := make([]float64, 0, len(closes)-period+1)
	sum := 0.0
	for _, v := range closes[:period] {
		sum += v
	}
	prev := sum / float64(period)
	out = append(out, prev)
	mult := 2.0 / (float64(period) + 1.0)
	for _, v := range closes[period:] {
		prev = (v-prev)*mult + prev
		out = append(out, prev)
	}
	return out, nil
}

// RSI computes the Wilder-smoothed relative strength index over the given
// period. Requires at least period+1 bars. The result is always in [0, 100].
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	// Initial average gain/loss over the first period changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remaining bars
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// MACD computes the 12/26 MACD line and its 9-period signal line, returning
// the latest value of each. Requires at least 34 bars.
func MACD(closes []float64) (line, signal float64, err error) {
	const fast, slow, smooth = 12, 26, 9
	if len(closes) < slow+smooth-1 {
		return 0, 0, ErrInsufficientData
	}
	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return 0, 0, err
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return 0, 0, err
	}
	// fastEMA starts slow-fast bars earlier than slowEMA; align on the slow series
	offset := slow - fast
	macdSeries := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macdSeries[i] = fastEMA[i+offset] - slowEMA[i]
	}
	signalEMA, err := EMA(macdSeries, smooth)
	if err != nil {
		return 0, 0, err
	}
	return macdSeries[len(macdSeries)-1], signalEMA[len(signalEMA)-1], nil
}

// Bollinger computes the upper and lower Bollinger bands: the period SMA
// plus/minus width population standard deviations of the last period closes.
func Bollinger(closes []float64, period int, width float64) (upper, lower float64, err error) {
	mean, err := SMA(closes, period)
	if err != nil {
		return 0, 0, err
	}
	variance := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(period))
	return mean + width*stddev, mean - width*stddev, nil
}

// Closes extracts the closing prices from a bar series.
func Closes(bars []models.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
