package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScout/internal/model"
)

func constantSeries(n int, v float64) []model.PricePoint {
	bars := make([]model.PricePoint, n)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.PricePoint{
			Symbol: "TEST",
			Time:   start.AddDate(0, 0, i),
			Open:   v, High: v, Low: v, Close: v,
			Volume: 1000,
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		period int
		want   float64
	}{
		{"not enough data", []float64{1, 2, 3}, 5, 0},
		{"zero period", []float64{1, 2, 3}, 0, 0},
		{"empty series", nil, 20, 0},
		{"exact window", []float64{2, 4, 6}, 3, 4},
		{"trailing window only", []float64{100, 1, 2, 3, 4}, 2, 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SMA(tt.prices, tt.period), 1e-9)
		})
	}
}

func TestSMAConstantSeries(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 42.5
	}
	for _, period := range []int{1, 20, 50, 60} {
		assert.InDelta(t, 42.5, SMA(prices, period), 1e-9, "period %d", period)
	}
}

func TestBollingerBandsInsufficientData(t *testing.T) {
	b := BollingerBands([]float64{1, 2, 3}, 20, 2)
	assert.Equal(t, Bands{}, b)
}

func TestBollingerBandsConstantSeries(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100
	}
	b := BollingerBands(prices, 20, 2)
	assert.InDelta(t, 100, b.Upper, 1e-9)
	assert.InDelta(t, 100, b.Middle, 1e-9)
	assert.InDelta(t, 100, b.Lower, 1e-9)
}

func TestBollingerBandsPopulationStdDev(t *testing.T) {
	// Mean 5, population standard deviation exactly 2.
	prices := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	b := BollingerBands(prices, 8, 2)
	assert.InDelta(t, 5, b.Middle, 1e-9)
	assert.InDelta(t, 9, b.Upper, 1e-9)
	assert.InDelta(t, 1, b.Lower, 1e-9)
}

func TestComputeEmptySeries(t *testing.T) {
	assert.Nil(t, Compute(nil))
	assert.Nil(t, Compute([]model.PricePoint{}))
}

func TestComputeShortSeries(t *testing.T) {
	// 30 bars: MA20 and bands are defined, MA50 degrades to 0.
	ind := Compute(constantSeries(30, 100))
	require.NotNil(t, ind)
	assert.InDelta(t, 100, ind.CurrentPrice, 1e-9)
	assert.InDelta(t, 100, ind.MA20, 1e-9)
	assert.InDelta(t, 0, ind.MA50, 1e-9)
	assert.InDelta(t, 100, ind.BollingerMiddle, 1e-9)
}

func TestComputeFullSeries(t *testing.T) {
	ind := Compute(constantSeries(50, 100))
	require.NotNil(t, ind)
	assert.InDelta(t, 100, ind.CurrentPrice, 1e-9)
	assert.InDelta(t, 100, ind.MA20, 1e-9)
	assert.InDelta(t, 100, ind.MA50, 1e-9)
	assert.InDelta(t, 100, ind.BollingerUpper, 1e-9)
	assert.InDelta(t, 100, ind.BollingerLower, 1e-9)
}
