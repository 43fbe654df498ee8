package model

// TechnicalIndicators holds the derived values for one closing-price series.
type TechnicalIndicators struct {
	CurrentPrice    float64 `json:"currentPrice"`
	MA20            float64 `json:"ma20"`
	MA50            float64 `json:"ma50"`
	BollingerUpper  float64 `json:"bollingerUpper"`
	BollingerMiddle float64 `json:"bollingerMiddle"`
	BollingerLower  float64 `json:"bollingerLower"`
}
