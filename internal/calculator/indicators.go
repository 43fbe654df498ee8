package calculator

import "SignalScout/internal/model"

// Bollinger parameters used throughout the scanner.
const (
	BollingerPeriod     = 20
	BollingerStdDevMult = 2.0
)

// Compute derives all technical indicators from a daily bar series.
// The series must be chronologically ordered; only the trailing windows are
// read. Returns nil for an empty series.
func Compute(bars []model.PricePoint) *model.TechnicalIndicators {
	if len(bars) == 0 {
		return nil
	}
	closes := Closes(bars)
	bands := BollingerBands(closes, BollingerPeriod, BollingerStdDevMult)
	return &model.TechnicalIndicators{
		CurrentPrice:    closes[len(closes)-1],
		MA20:            SMA(closes, 20),
		MA50:            SMA(closes, 50),
		BollingerUpper:  bands.Upper,
		BollingerMiddle: bands.Middle,
		BollingerLower:  bands.Lower,
	}
}
