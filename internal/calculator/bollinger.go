package calculator

import "math"

// Bands holds the three Bollinger band values.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands computes the bands over the trailing period using the
// population standard deviation. Returns zero bands when fewer than period
// values are available.
func BollingerBands(prices []float64, period int, stdDevMult float64) Bands {
	if period <= 0 || len(prices) < period {
		return Bands{}
	}
	middle := SMA(prices, period)

	var sqSum float64
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - middle
		sqSum += d * d
	}
	sigma := math.Sqrt(sqSum / float64(period))

	return Bands{
		Upper:  middle + stdDevMult*sigma,
		Middle: middle,
		Lower:  middle - stdDevMult*sigma,
	}
}
