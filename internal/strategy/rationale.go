package strategy

import (
	"fmt"

	"SignalScout/internal/model"
)

// Rationale renders the human-readable justification: a recommendation
// headline, one line per triggered rule in evaluation order, then a
// technical-data summary block.
func Rationale(c *model.ComboIndicators) []string {
	lines := make([]string, 0, len(c.Triggers)+10)
	lines = append(lines, headline(c))
	for _, t := range c.Triggers {
		lines = append(lines, describeTrigger(c, t))
	}
	lines = append(lines,
		"",
		"📊 Technical data:",
		fmt.Sprintf("- Current price: %.2f", c.CurrentPrice),
		fmt.Sprintf("- MA20: %.2f", c.MA20),
		fmt.Sprintf("- MA50: %.2f", c.MA50),
		fmt.Sprintf("- Bollinger upper: %.2f", c.BollingerUpper),
		fmt.Sprintf("- Bollinger middle: %.2f", c.BollingerMiddle),
		fmt.Sprintf("- Bollinger lower: %.2f", c.BollingerLower),
	)
	return lines
}

func headline(c *model.ComboIndicators) string {
	switch c.Recommendation {
	case model.StrongBuy:
		return fmt.Sprintf("🚀 Very strong buy signal (%d/100)", c.SignalStrength)
	case model.Buy:
		return fmt.Sprintf("📈 Strong buy signal (%d/100)", c.SignalStrength)
	case model.Hold:
		return fmt.Sprintf("⏸️ Moderate signal (%d/100) - observe", c.SignalStrength)
	default:
		return fmt.Sprintf("⏳ Weak signal (%d/100) - wait", c.SignalStrength)
	}
}

func describeTrigger(c *model.ComboIndicators, t model.RuleTrigger) string {
	switch t.Rule {
	case RuleCombo20Tight:
		return fmt.Sprintf("🎯 COMBO20 = %.4f (≈1.00) - very strong: MA20 nearly on the lower band", t.Value)
	case RuleCombo20Strong:
		return fmt.Sprintf("✅ COMBO20 = %.4f - strong: MA20 close to the lower band", t.Value)
	case RuleCombo20Moderate:
		return fmt.Sprintf("⚠️ COMBO20 = %.4f - moderate signal", t.Value)
	case RuleCombo50Strong:
		return fmt.Sprintf("🎯 COMBO50 = %.4f - long-term trend favorable", t.Value)
	case RuleCombo50OK:
		return fmt.Sprintf("✅ COMBO50 = %.4f - long-term trend acceptable", t.Value)
	case RuleOversold:
		return fmt.Sprintf("💰 Price (%.2f) at or under the lower band (%.2f) - oversold zone", c.CurrentPrice, c.BollingerLower)
	case RuleBelowMAs:
		return "📉 Price below MA20 and MA50 - rebound potential"
	case RuleSqueeze:
		return fmt.Sprintf("📊 Bollinger bands squeezed (%.1f%%) - low volatility, move imminent", t.Value)
	default:
		return t.Rule
	}
}
