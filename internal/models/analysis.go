package models

import "time"

// Recommendation action constants
const (
	ActionBuy  = "Buy"
	ActionSell = "Sell"
	ActionHold = "Hold"
)

// IndicatorSnapshot holds the latest value of each computed technical
// indicator for a symbol. It is produced fresh per analysis and persisted
// only as the serialized indicators field of a Report.
type IndicatorSnapshot struct {
	Price      float64 `json:"price"`
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	SMA200     float64 `json:"sma_200"`
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	BBUpper    float64 `json:"bb_upper"`
	BBLower    float64 `json:"bb_lower"`
}

// NarrativeSignal is the structured recommendation extracted from a
// generated narrative text.
type NarrativeSignal struct {
	Action             string  `json:"action"`
	AllocationFraction float64 `json:"allocation_fraction"`
	RiskNote           string  `json:"risk_note"`
}

// AnalysisResult is the immutable outcome of one analysis run. It is not
// persisted until an analyst explicitly saves it as a Report.
type AnalysisResult struct {
	Symbol        string            `json:"symbol"`
	Indicators    IndicatorSnapshot `json:"indicators"`
	NarrativeText string            `json:"narrative_text"`
	Signal        NarrativeSignal   `json:"signal"`
	GeneratedAt   time.Time         `json:"generated_at"`
}
