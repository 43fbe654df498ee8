package model

// Recommendation buckets the accumulated signal strength.
type Recommendation string

const (
	StrongBuy Recommendation = "STRONG_BUY"
	Buy       Recommendation = "BUY"
	Hold      Recommendation = "HOLD"
	Wait      Recommendation = "WAIT"
)

// RuleTrigger records one scoring rule that fired.
type RuleTrigger struct {
	Rule   string  `json:"rule"`
	Points int     `json:"points"`
	Value  float64 `json:"value"` // the measured value the rule fired on
}

// ComboIndicators extends TechnicalIndicators with the combo ratios, the
// accumulated score and the rendered rationale.
type ComboIndicators struct {
	TechnicalIndicators
	Combo20        float64        `json:"combo20"`
	Combo50        float64        `json:"combo50"`
	SignalStrength int            `json:"signalStrength"`
	Recommendation Recommendation `json:"recommendation"`
	Triggers       []RuleTrigger  `json:"triggers"`
	Rationale      []string       `json:"rationale"`
}
