package analysis

import (
	"fmt"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// buildPrompt renders the fixed analysis prompt with the current indicator
// values. Currency and oscillator values are formatted to two decimals.
func buildPrompt(symbol string, snap models.IndicatorSnapshot) string {
	return fmt.Sprintf(`Analyze the following stock (%s) with these technical indicators:
- Current Price: $%.2f
- RSI: %.2f
- MACD: %.2f
- MACD Signal: %.2f
- 20-day SMA: $%.2f
- 50-day SMA: $%.2f
- 200-day SMA: $%.2f
- Bollinger Upper Band: $%.2f
- Bollinger Lower Band: $%.2f

Provide:
1. A brief summary about the stock
2. A brief technical analysis
3. A recommendation (Buy/Sell/Hold)
4. Potential price targets in next 3-6 months
5. Key risks and considerations
6. Suggested portfolio allocation percentage
`,
		symbol,
		snap.Price,
		snap.RSI,
		snap.MACD,
		snap.MACDSignal,
		snap.SMA20,
		snap.SMA50,
		snap.SMA200,
		snap.BBUpper,
		snap.BBLower,
	)
}
