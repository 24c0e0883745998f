// Package analysis composes market data, indicator computation, narrative
// generation and signal extraction into a single analysis operation.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/stock-analysis-service/internal/indicators"
	"github.com/trogers1052/stock-analysis-service/internal/llm"
	"github.com/trogers1052/stock-analysis-service/internal/marketdata"
	"github.com/trogers1052/stock-analysis-service/internal/models"
	"github.com/trogers1052/stock-analysis-service/internal/narrative"
)

var (
	// ErrAnalysisFailed wraps indicator computation failures with their cause.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrNarrativeUnavailable is returned when the generator cannot produce
	// a narrative for the prompt.
	ErrNarrativeUnavailable = errors.New("narrative unavailable")
)

// NarrativeCache caches generated narratives by prompt. Implementations are
// best-effort; a miss simply falls through to the generator.
type NarrativeCache interface {
	Get(ctx context.Context, prompt string) (string, bool)
	Set(ctx context.Context, prompt, text string)
}

// Analyzer runs the analysis pipeline. It performs no persistence; saving a
// result as a report is a separate, explicit step taken by the caller.
type Analyzer struct {
	provider  marketdata.Provider
	generator llm.Generator
	cache     NarrativeCache
}

// NewAnalyzer creates an Analyzer. cache may be nil to disable caching.
func NewAnalyzer(provider marketdata.Provider, generator llm.Generator, cache NarrativeCache) *Analyzer {
	return &Analyzer{provider: provider, generator: generator, cache: cache}
}

// Analyze fetches the symbol's history, computes indicators, obtains a
// narrative and extracts the structured signal. The returned result is
// immutable; callers decide whether to persist it.
func (a *Analyzer) Analyze(ctx context.Context, symbol, period string) (*models.AnalysisResult, error) {
	bars, err := a.provider.FetchDaily(ctx, symbol, period)
	if err != nil {
		if errors.Is(err, marketdata.ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch market data for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", marketdata.ErrNoData, symbol)
	}

	snap, err := indicators.Snapshot(bars)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrAnalysisFailed, symbol, err)
	}

	prompt := buildPrompt(symbol, snap)

	text, cached := "", false
	if a.cache != nil {
		text, cached = a.cache.Get(ctx, prompt)
	}
	if !cached {
		text, err = a.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNarrativeUnavailable, err)
		}
		if a.cache != nil {
			a.cache.Set(ctx, prompt, text)
		}
	}

	signal := narrative.Extract(text)

	return &models.AnalysisResult{
		Symbol:        symbol,
		Indicators:    snap,
		NarrativeText: text,
		Signal:        signal,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
