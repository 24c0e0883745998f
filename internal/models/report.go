package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a persisted analysis attributed to one analyst. Reports are
// immutable once created; saving the same analysis twice creates two
// distinct records.
type Report struct {
	ID                  int             `json:"id"`
	AnalystID           int             `json:"analyst_id"`
	Symbol              string          `json:"symbol"`
	AnalysisDate        time.Time       `json:"analysis_date"`
	Indicators          string          `json:"indicators"` // JSON-serialized IndicatorSnapshot
	Recommendation      string          `json:"recommendation"`
	PortfolioAllocation float64         `json:"portfolio_allocation"`
	AnalysisText        string          `json:"analysis_text"`
	PriceAtAnalysis     decimal.Decimal `json:"price_at_analysis"`
	CreatedAt           time.Time       `json:"created_at"`
}
