package calculator

import "SignalScout/internal/model"

// SMA computes the simple moving average over the trailing period values.
// Returns 0 when fewer than period values are available.
func SMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period)
}

// Closes extracts the close prices from a bar series.
func Closes(bars []model.PricePoint) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
