// Package marketdata fetches historical OHLCV series for stock symbols.
package marketdata

import (
	"context"
	"errors"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// ErrNoData is returned when the provider has no bars for a symbol/period.
var ErrNoData = errors.New("no market data for symbol")

// Provider supplies a daily OHLCV series for a symbol over an opaque
// lookback period (e.g. "2y"). Implementations return ErrNoData for an
// unknown symbol or an empty history window.
type Provider interface {
	FetchDaily(ctx context.Context, symbol, period string) ([]models.PriceBar, error)
}
