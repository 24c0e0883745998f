// Package narrative extracts a structured recommendation signal from
// free-text analysis narratives.
package narrative

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// DefaultAllocation is used when the text contains no percentage figure.
const DefaultAllocation = 0.05

// RiskNote is a fixed pointer to the full narrative; risk-specific
// extraction is not attempted in this version.
const RiskNote = "Please review the full analysis for detailed risk factors."

var allocationPattern = regexp.MustCompile(`(\d+)%`)

// Extract derives a NarrativeSignal from arbitrary narrative text. It is
// total and deterministic: every input, including the empty string, yields a
// well-formed signal.
//
// The action scan is a known order-sensitive heuristic: "sell" is checked
// before "buy", so text mentioning both resolves to Sell. The allocation is
// the first "<integer>%" occurrence, read as a percentage and capped at 100%.
func Extract(text string) models.NarrativeSignal {
	lower := strings.ToLower(text)

	action := models.ActionHold
	switch {
	case strings.Contains(lower, "sell"):
		action = models.ActionSell
	case strings.Contains(lower, "buy"):
		action = models.ActionBuy
	}

	allocation := DefaultAllocation
	if m := allocationPattern.FindStringSubmatch(text); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			allocation = pct / 100
			if allocation > 1.0 {
				allocation = 1.0
			}
		}
	}

	return models.NarrativeSignal{
		Action:             action,
		AllocationFraction: allocation,
		RiskNote:           RiskNote,
	}
}
