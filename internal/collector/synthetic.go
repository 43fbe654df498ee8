package collector

import (
	"context"
	"math"
	"strings"
	"time"

	"SignalScout/internal/model"
)

// SyntheticFetcher generates a deterministic price series so the pipeline
// always has input when every real provider fails. Two calls with the same
// arguments produce identical prices and volumes.
type SyntheticFetcher struct{}

func (SyntheticFetcher) Name() string { return "synthetic" }

func (SyntheticFetcher) FetchDailySeries(_ context.Context, symbol string, limit int) ([]model.PricePoint, error) {
	base := 2000.0
	if strings.Contains(symbol, "SPX") || strings.Contains(symbol, "SP500") {
		base = 4500.0
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.PricePoint, limit)
	for i := 0; i < limit; i++ {
		trend := -0.5 + float64(i)*0.02
		volatility := math.Sin(float64(i)/5) * 30
		price := base + trend*50 + volatility
		bars[i] = model.PricePoint{
			Symbol: symbol,
			Time:   today.AddDate(0, 0, -(limit - i)),
			Open:   price * 0.995,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 1000000 + float64(i%7)*50000,
		}
	}
	return bars, nil
}
