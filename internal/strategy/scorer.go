package strategy

import (
	"math"

	"SignalScout/internal/model"
)

// Rule identifiers, in evaluation order. The combo rules are tiered: only
// the highest matching tier of each group fires.
const (
	RuleCombo20Tight    = "COMBO20_TIGHT"
	RuleCombo20Strong   = "COMBO20_STRONG"
	RuleCombo20Moderate = "COMBO20_MODERATE"
	RuleCombo50Strong   = "COMBO50_STRONG"
	RuleCombo50OK       = "COMBO50_OK"
	RuleOversold        = "PRICE_NEAR_LOWER_BAND"
	RuleBelowMAs        = "PRICE_BELOW_MAS"
	RuleSqueeze         = "BAND_SQUEEZE"
)

// Evaluate derives the combo ratios, accumulates the signal score from the
// rule table and maps it to a recommendation. Scoring reads nothing but the
// indicators; the rationale is rendered afterwards from the triggers and
// never feeds back into the score.
func Evaluate(ind *model.TechnicalIndicators) *model.ComboIndicators {
	out := &model.ComboIndicators{TechnicalIndicators: *ind}

	// Combo ratios are undefined for a degenerate lower band.
	if ind.BollingerLower > 0 {
		out.Combo20 = ind.MA20 / ind.BollingerLower
		out.Combo50 = ind.MA50 / ind.BollingerLower
	}

	score := 0
	trigger := func(rule string, points int, value float64) {
		score += points
		out.Triggers = append(out.Triggers, model.RuleTrigger{Rule: rule, Points: points, Value: value})
	}

	switch {
	case out.Combo20 >= 0.98:
		trigger(RuleCombo20Tight, 40, out.Combo20)
	case out.Combo20 >= 0.95:
		trigger(RuleCombo20Strong, 30, out.Combo20)
	case out.Combo20 >= 0.92:
		trigger(RuleCombo20Moderate, 15, out.Combo20)
	}

	switch {
	case out.Combo50 >= 0.95:
		trigger(RuleCombo50Strong, 30, out.Combo50)
	case out.Combo50 >= 0.90:
		trigger(RuleCombo50OK, 20, out.Combo50)
	}

	if ind.CurrentPrice <= ind.BollingerLower*1.02 {
		trigger(RuleOversold, 20, ind.CurrentPrice)
	}

	if ind.CurrentPrice < ind.MA20 && ind.CurrentPrice < ind.MA50 {
		trigger(RuleBelowMAs, 10, ind.CurrentPrice)
	}

	if width := bandWidth(ind); width < 10 {
		trigger(RuleSqueeze, 5, width)
	}

	out.SignalStrength = score
	out.Recommendation = mapRecommendation(score)
	out.Rationale = Rationale(out)
	return out
}

// bandWidth is the band spread as a percentage of the middle band.
func bandWidth(ind *model.TechnicalIndicators) float64 {
	if ind.BollingerMiddle == 0 {
		return math.Inf(1)
	}
	return (ind.BollingerUpper - ind.BollingerLower) / ind.BollingerMiddle * 100
}

// mapRecommendation maps an accumulated score to a recommendation tier.
// Thresholds are inclusive lower bounds, evaluated highest first.
func mapRecommendation(score int) model.Recommendation {
	switch {
	case score >= 80:
		return model.StrongBuy
	case score >= 60:
		return model.Buy
	case score >= 40:
		return model.Hold
	default:
		return model.Wait
	}
}
