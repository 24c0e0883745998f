package indicators

import (
	"fmt"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// Indicator windows. The snapshot requires enough history for the longest
// window; shorter series fail as a whole rather than producing a partial
// snapshot.
const (
	SMAShortPeriod  = 20
	SMAMediumPeriod = 50
	SMALongPeriod   = 200
	RSIPeriod       = 14
	BBPeriod        = 20
	BBWidth         = 2.0
)

// MinBars is the shortest series the snapshot accepts.
const MinBars = SMALongPeriod

// Snapshot computes the latest value of every supported indicator from a
// daily bar series. Returns ErrEmptySeries for an empty series and
// ErrInsufficientData when fewer than MinBars bars are available.
func Snapshot(bars []models.PriceBar) (models.IndicatorSnapshot, error) {
	var snap models.IndicatorSnapshot

	if len(bars) == 0 {
		return snap, ErrEmptySeries
	}
	if len(bars) < MinBars {
		return snap, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientData, len(bars), MinBars)
	}

	closes := Closes(bars)
	snap.Price = closes[len(closes)-1]

	var err error
	if snap.SMA20, err = SMA(closes, SMAShortPeriod); err != nil {
		return models.IndicatorSnapshot{}, err
	}
	if snap.SMA50, err = SMA(closes, SMAMediumPeriod); err != nil {
		return models.IndicatorSnapshot{}, err
	}
	if snap.SMA200, err = SMA(closes, SMALongPeriod); err != nil {
		return models.IndicatorSnapshot{}, err
	}
	if snap.RSI, err = RSI(closes, RSIPeriod); err != nil {
		return models.IndicatorSnapshot{}, err
	}
	if snap.MACD, snap.MACDSignal, err = MACD(closes); err != nil {
		return models.IndicatorSnapshot{}, err
	}
	if snap.BBUpper, snap.BBLower, err = Bollinger(closes, BBPeriod, BBWidth); err != nil {
		return models.IndicatorSnapshot{}, err
	}

	return snap, nil
}
