package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioPosition is an investor's copy of a report's allocation decision.
// Symbol, allocation and entry price are copied from the report at creation
// time and never re-derived. ExitDate and ExitPrice are both nil (open) or
// both set (closed); a position is never partially closed.
type PortfolioPosition struct {
	ID                   int              `json:"id"`
	InvestorID           int              `json:"investor_id"`
	AnalysisID           int              `json:"analysis_id"`
	Symbol               string           `json:"symbol"`
	AllocationPercentage float64          `json:"allocation_percentage"`
	EntryDate            time.Time        `json:"entry_date"`
	EntryPrice           decimal.Decimal  `json:"entry_price"`
	ExitDate             *time.Time       `json:"exit_date,omitempty"`
	ExitPrice            *decimal.Decimal `json:"exit_price,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// Open reports whether the position has not been closed yet.
func (p *PortfolioPosition) Open() bool {
	return p.ExitDate == nil && p.ExitPrice == nil
}
