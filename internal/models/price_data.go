package models

import "time"

// PriceBar represents one daily OHLCV bar of market data. Bars in a series
// are ordered by date ascending with no duplicate dates; missing trading
// days are simply absent, never zero-filled.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
