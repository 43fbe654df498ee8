package model

import "time"

// Position statuses.
const (
	PositionOpen   = "OPEN"
	PositionClosed = "CLOSED"
)

// Position is an executed entry created from a notification.
type Position struct {
	ID             int64      `json:"id"`
	NotificationID int64      `json:"notificationId"`
	AssetID        int64      `json:"assetId"`
	Symbol         string     `json:"symbol"`
	EntryPrice     float64    `json:"entryPrice"`
	Quantity       float64    `json:"quantity"`
	InvestedAmount float64    `json:"investedAmount"`
	EntryDate      time.Time  `json:"entryDate"`
	ExitPrice      float64    `json:"exitPrice"`
	ExitDate       *time.Time `json:"exitDate"`
	RealizedPnL    float64    `json:"realizedPnL"`
	RealizedPnLPct float64    `json:"realizedPnLPct"`
	Notes          string     `json:"notes"`
	Status         string     `json:"status"`
}
