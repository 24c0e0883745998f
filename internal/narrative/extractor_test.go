package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		action     string
		allocation float64
	}{
		{
			name:       "buy with allocation",
			text:       "Based on the momentum I recommend a Buy. Allocate about 15% of the portfolio.",
			action:     models.ActionBuy,
			allocation: 0.15,
		},
		{
			name:       "hold with no percentage defaults allocation",
			text:       "Hold steady, no major allocation change advised",
			action:     models.ActionHold,
			allocation: DefaultAllocation,
		},
		{
			name:       "sell wins when both buy and sell appear",
			text:       "Some would buy the dip, but I would sell into strength. 10% at most.",
			action:     models.ActionSell,
			allocation: 0.10,
		},
		{
			name:       "case insensitive action scan",
			text:       "STRONG BUY signal here",
			action:     models.ActionBuy,
			allocation: DefaultAllocation,
		},
		{
			name:       "empty text yields defaults",
			text:       "",
			action:     models.ActionHold,
			allocation: DefaultAllocation,
		},
		{
			name:       "no digits yields default allocation",
			text:       "Buy this stock, allocation unclear",
			action:     models.ActionBuy,
			allocation: DefaultAllocation,
		},
		{
			name:       "first of multiple percentages wins",
			text:       "Buy. Start with 20% now and maybe 40% later.",
			action:     models.ActionBuy,
			allocation: 0.20,
		},
		{
			name:       "allocation above 100 percent is clamped",
			text:       "Buy with 150% conviction",
			action:     models.ActionBuy,
			allocation: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := Extract(tt.text)
			assert.Equal(t, tt.action, signal.Action)
			assert.InDelta(t, tt.allocation, signal.AllocationFraction, 1e-9)
			assert.Equal(t, RiskNote, signal.RiskNote)
			assert.GreaterOrEqual(t, signal.AllocationFraction, 0.0)
			assert.LessOrEqual(t, signal.AllocationFraction, 1.0)
		})
	}

	t.Run("extraction is deterministic", func(t *testing.T) {
		text := "Buy now, 25% allocation, then sell half"
		first := Extract(text)
		second := Extract(text)
		assert.Equal(t, first, second)
	})
}
