package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScout/internal/model"
)

type stubFetcher struct {
	name  string
	bars  []model.PricePoint
	err   error
	calls int
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) FetchDailySeries(_ context.Context, _ string, _ int) ([]model.PricePoint, error) {
	s.calls++
	return s.bars, s.err
}

func makeBars(n int, close float64) []model.PricePoint {
	bars := make([]model.PricePoint, n)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.PricePoint{
			Symbol: "SPX500",
			Time:   start.AddDate(0, 0, i),
			Close:  close,
		}
	}
	return bars
}

func TestChainUsesFirstHealthyProvider(t *testing.T) {
	first := &stubFetcher{name: "first", bars: makeBars(30, 100)}
	second := &stubFetcher{name: "second", bars: makeBars(30, 999)}
	chain := NewChain(first, second)

	bars := chain.FetchDailySeries(context.Background(), "SPX500", 50)
	require.Len(t, bars, 30)
	assert.InDelta(t, 100, bars[0].Close, 1e-9)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls, "later providers must not be tried")
}

func TestChainFallsThroughErrorsAndShortSeries(t *testing.T) {
	failing := &stubFetcher{name: "failing", err: errors.New("rate limited")}
	short := &stubFetcher{name: "short", bars: makeBars(19, 50)}
	healthy := &stubFetcher{name: "healthy", bars: makeBars(25, 200)}
	chain := NewChain(failing, short, healthy)

	bars := chain.FetchDailySeries(context.Background(), "SPX500", 50)
	require.Len(t, bars, 25)
	assert.InDelta(t, 200, bars[0].Close, 1e-9)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, short.calls)
}

func TestChainSyntheticFallback(t *testing.T) {
	failing := &stubFetcher{name: "failing", err: errors.New("boom")}
	chain := NewChain(failing)

	bars := chain.FetchDailySeries(context.Background(), "SPX500", 50)
	require.Len(t, bars, 50)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i-1].Time.Before(bars[i].Time), "bars must be oldest first")
	}
}

func TestChainNoProviders(t *testing.T) {
	chain := NewChain()
	bars := chain.FetchDailySeries(context.Background(), "XAUUSD", 30)
	assert.Len(t, bars, 30)
}

func TestSyntheticDeterministic(t *testing.T) {
	s := SyntheticFetcher{}
	a, err := s.FetchDailySeries(context.Background(), "SPX500", 50)
	require.NoError(t, err)
	b, err := s.FetchDailySeries(context.Background(), "SPX500", 50)
	require.NoError(t, err)

	require.Len(t, a, 50)
	for i := range a {
		assert.Equal(t, a[i].Close, b[i].Close, "bar %d", i)
		assert.Equal(t, a[i].Volume, b[i].Volume, "bar %d", i)
	}
}

func TestSyntheticBasePrice(t *testing.T) {
	s := SyntheticFetcher{}
	spx, _ := s.FetchDailySeries(context.Background(), "SPX500", 10)
	gold, _ := s.FetchDailySeries(context.Background(), "XAUUSD", 10)

	// Index series sits around 4500, everything else around 2000.
	assert.Greater(t, spx[0].Close, 4000.0)
	assert.Less(t, gold[0].Close, 3000.0)
	for _, b := range append(spx, gold...) {
		assert.Greater(t, b.Close, 0.0)
		assert.LessOrEqual(t, b.Low, b.High)
	}
}

func TestSymbolAliases(t *testing.T) {
	assert.Equal(t, "^GSPC", yahooSymbol("SPX500"))
	assert.Equal(t, "^GSPC", yahooSymbol("SPX"))
	assert.Equal(t, "GC=F", yahooSymbol("GOLD"))
	assert.Equal(t, "SPX", alphaSymbol("SPX500"))
	assert.Equal(t, "XAUUSD", twelveSymbol("GOLD"))
	// Unknown symbols pass through untouched.
	assert.Equal(t, "AAPL", yahooSymbol("AAPL"))
	assert.Equal(t, "AAPL", alphaSymbol("AAPL"))
	assert.Equal(t, "AAPL", twelveSymbol("AAPL"))
}

func TestNormalizeSeries(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
	}
	in := []model.PricePoint{
		{Time: day(3), Close: 3},
		{Time: day(1), Close: 1},
		{Time: day(2), Close: 2},
		{Time: day(2), Close: 2}, // duplicate timestamp dropped
		{Time: day(4), Close: 4},
	}

	out := normalizeSeries(in, 3)
	require.Len(t, out, 3)
	assert.Equal(t, []time.Time{day(2), day(3), day(4)}, []time.Time{out[0].Time, out[1].Time, out[2].Time})
	assert.Equal(t, []float64{2, 3, 4}, []float64{out[0].Close, out[1].Close, out[2].Close})
}

func TestNormalizeSeriesNoTrim(t *testing.T) {
	in := makeBars(5, 10)
	out := normalizeSeries(in, 50)
	assert.Len(t, out, 5)
}
