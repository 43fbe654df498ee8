package model

import "time"

// Asset is a tradable instrument the scanner watches.
type Asset struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	AssetType string    `json:"assetType"` // INDEX, COMMODITY, STOCK, ...
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
