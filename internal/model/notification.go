package model

import "time"

// Notification statuses.
const (
	NotificationPending   = "PENDING"
	NotificationExecuted  = "EXECUTED"
	NotificationDismissed = "DISMISSED"
)

// Notification is a persisted buy-signal record.
type Notification struct {
	ID              int64          `json:"id"`
	AssetID         int64          `json:"assetId"`
	Symbol          string         `json:"symbol"`
	CreatedAt       time.Time      `json:"createdAt"`
	CurrentPrice    float64        `json:"currentPrice"`
	MA20            float64        `json:"ma20"`
	MA50            float64        `json:"ma50"`
	BollingerUpper  float64        `json:"bollingerUpper"`
	BollingerMiddle float64        `json:"bollingerMiddle"`
	BollingerLower  float64        `json:"bollingerLower"`
	Combo20         float64        `json:"combo20"`
	Combo50         float64        `json:"combo50"`
	SignalStrength  int            `json:"signalStrength"`
	Recommendation  Recommendation `json:"recommendation"`
	Rationale       string         `json:"rationale"`
	SuggestedAmount float64        `json:"suggestedAmount"`
	Status          string         `json:"status"`
	Viewed          bool           `json:"viewed"`
	EmailSent       bool           `json:"emailSent"`
}
