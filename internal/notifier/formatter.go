package notifier

import (
	"fmt"
	"strings"

	"SignalScout/internal/model"
)

// FormatEntrySignal renders the plain-text report for a qualifying
// candidate.
func FormatEntrySignal(c *model.ScanCandidate) string {
	ind := c.Indicators
	var b strings.Builder

	b.WriteString(fmt.Sprintf("SignalScout - Entry opportunity %s\n\n", recommendationEmoji(ind.Recommendation)))
	b.WriteString(fmt.Sprintf("%s (%s)\n", c.Asset.Name, c.Asset.Symbol))
	b.WriteString(fmt.Sprintf("%s - signal strength: %d/100\n\n",
		strings.ReplaceAll(string(ind.Recommendation), "_", " "), ind.SignalStrength))

	b.WriteString("KEY INDICATORS:\n")
	b.WriteString(fmt.Sprintf("- Current price: %.2f\n", ind.CurrentPrice))
	b.WriteString(fmt.Sprintf("- COMBO20 (MA20/lower band): %.4f\n", ind.Combo20))
	b.WriteString(fmt.Sprintf("- COMBO50 (MA50/lower band): %.4f\n", ind.Combo50))
	if c.SuggestedAmount > 0 {
		b.WriteString(fmt.Sprintf("- Suggested amount: %.2f\n", c.SuggestedAmount))
	}

	b.WriteString("\nANALYSIS:\n")
	b.WriteString(strings.Join(ind.Rationale, "\n"))

	b.WriteString("\n\nThis notification is generated automatically from your configured thresholds.\n")
	b.WriteString("Always check the market context before investing.\n")
	return b.String()
}
