package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScout/internal/model"
)

func TestMapRecommendation(t *testing.T) {
	tests := []struct {
		score int
		want  model.Recommendation
	}{
		{0, model.Wait},
		{39, model.Wait},
		{40, model.Hold},
		{59, model.Hold},
		{60, model.Buy},
		{79, model.Buy},
		{80, model.StrongBuy},
		{125, model.StrongBuy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapRecommendation(tt.score), "score %d", tt.score)
	}
}

func TestEvaluateDegenerateLowerBand(t *testing.T) {
	for _, lower := range []float64{0, -5} {
		ind := &model.TechnicalIndicators{
			CurrentPrice:    50,
			MA20:            100,
			MA50:            100,
			BollingerUpper:  0,
			BollingerMiddle: 0,
			BollingerLower:  lower,
		}
		c := Evaluate(ind)
		assert.Zero(t, c.Combo20, "lower %v", lower)
		assert.Zero(t, c.Combo50, "lower %v", lower)
	}
}

func TestEvaluateComboTiersExclusive(t *testing.T) {
	// Only the highest matching tier of each combo group may fire.
	tests := []struct {
		name       string
		combo      float64 // target ma20/lower ratio
		wantRule   string
		wantPoints int
	}{
		{"tight", 0.99, RuleCombo20Tight, 40},
		{"exactly tight boundary", 0.98, RuleCombo20Tight, 40},
		{"strong", 0.96, RuleCombo20Strong, 30},
		{"moderate", 0.93, RuleCombo20Moderate, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := &model.TechnicalIndicators{
				CurrentPrice:    500, // well above everything: no price rules
				MA20:            tt.combo * 100,
				MA50:            10, // combo50 = 0.1: no combo50 rule
				BollingerUpper:  150,
				BollingerMiddle: 125,
				BollingerLower:  100,
			}
			c := Evaluate(ind)
			require.Len(t, c.Triggers, 1)
			assert.Equal(t, tt.wantRule, c.Triggers[0].Rule)
			assert.Equal(t, tt.wantPoints, c.Triggers[0].Points)
			assert.Equal(t, tt.wantPoints, c.SignalStrength)
		})
	}
}

func TestEvaluateIndependentRules(t *testing.T) {
	// Price under the lower band and under both MAs, bands wide enough that
	// the squeeze rule stays quiet.
	ind := &model.TechnicalIndicators{
		CurrentPrice:    79,
		MA20:            80, // combo20 = 0.8: no combo rule
		MA50:            85, // combo50 = 0.85: no combo rule
		BollingerUpper:  140,
		BollingerMiddle: 120,
		BollingerLower:  100,
	}
	c := Evaluate(ind)
	rules := triggeredRules(c)
	assert.Contains(t, rules, RuleOversold)
	assert.Contains(t, rules, RuleBelowMAs)
	assert.NotContains(t, rules, RuleSqueeze)
	assert.Equal(t, 30, c.SignalStrength)
	assert.Equal(t, model.Wait, c.Recommendation)
}

func TestEvaluateSqueeze(t *testing.T) {
	// Band spread of 9% of the middle, price above everything.
	ind := &model.TechnicalIndicators{
		CurrentPrice:    500,
		MA20:            10,
		MA50:            10,
		BollingerUpper:  104.5,
		BollingerMiddle: 100,
		BollingerLower:  95.5,
	}
	c := Evaluate(ind)
	require.Len(t, c.Triggers, 1)
	assert.Equal(t, RuleSqueeze, c.Triggers[0].Rule)
	assert.Equal(t, 5, c.SignalStrength)
}

func TestEvaluateSqueezeSkippedWhenMiddleZero(t *testing.T) {
	ind := &model.TechnicalIndicators{
		CurrentPrice:    500,
		MA20:            10,
		MA50:            10,
		BollingerMiddle: 0,
	}
	c := Evaluate(ind)
	assert.NotContains(t, triggeredRules(c), RuleSqueeze)
}

func TestEvaluateConstantSeries(t *testing.T) {
	// Flat market: every band and average collapses onto the price. Both
	// combo ratios are exactly 1, the price sits on the lower band and the
	// band spread is zero, so four rules fire at once.
	ind := &model.TechnicalIndicators{
		CurrentPrice:    100,
		MA20:            100,
		MA50:            100,
		BollingerUpper:  100,
		BollingerMiddle: 100,
		BollingerLower:  100,
	}
	c := Evaluate(ind)

	assert.InDelta(t, 1.0, c.Combo20, 1e-9)
	assert.InDelta(t, 1.0, c.Combo50, 1e-9)

	rules := triggeredRules(c)
	assert.ElementsMatch(t, []string{
		RuleCombo20Tight, RuleCombo50Strong, RuleOversold, RuleSqueeze,
	}, rules)
	assert.Equal(t, 95, c.SignalStrength)
	assert.Equal(t, model.StrongBuy, c.Recommendation)
	assert.NotEmpty(t, c.Rationale)
}

func TestEvaluateMaximumScore(t *testing.T) {
	// Price below both MAs and on the lower band, tight combos, zero-width
	// bands: all five rule groups fire for 105 points.
	ind := &model.TechnicalIndicators{
		CurrentPrice:    99,
		MA20:            100,
		MA50:            101,
		BollingerUpper:  100,
		BollingerMiddle: 100,
		BollingerLower:  100,
	}
	c := Evaluate(ind)
	assert.Equal(t, 105, c.SignalStrength)
	assert.Equal(t, model.StrongBuy, c.Recommendation)
	assert.Len(t, c.Triggers, 5)
}

func triggeredRules(c *model.ComboIndicators) []string {
	rules := make([]string, 0, len(c.Triggers))
	for _, tr := range c.Triggers {
		rules = append(rules, tr.Rule)
	}
	return rules
}
