package model

// ScanCandidate is one qualifying asset produced by a scan.
type ScanCandidate struct {
	Asset           Asset           `json:"asset"`
	Indicators      ComboIndicators `json:"indicators"`
	SuggestedAmount float64         `json:"suggestedAmount"`
	NotificationID  int64           `json:"notificationId"`
	EmailSent       bool            `json:"emailSent"`
}
