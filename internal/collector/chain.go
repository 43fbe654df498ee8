package collector

import (
	"context"
	"log"
	"time"

	"SignalScout/internal/model"
)

// fetchTimeout bounds each individual provider call.
const fetchTimeout = 10 * time.Second

// minSeriesPoints is the shortest real-provider series the chain accepts.
const minSeriesPoints = 20

// Chain tries fetchers strictly in priority order and degrades to a
// deterministic synthetic series when every provider errors or returns too
// little history. Provider failures are recovered locally, never fatal.
type Chain struct {
	Fetchers  []Fetcher
	Synthetic Fetcher
}

// NewChain creates a chain over the given fetchers, in priority order.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{Fetchers: fetchers, Synthetic: SyntheticFetcher{}}
}

// FetchDailySeries returns at most limit daily bars, oldest first. The
// result is never empty as long as limit > 0: the synthetic fallback always
// produces a series.
func (c *Chain) FetchDailySeries(ctx context.Context, symbol string, limit int) []model.PricePoint {
	for _, f := range c.Fetchers {
		fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		bars, err := f.FetchDailySeries(fctx, symbol, limit)
		cancel()
		if err != nil {
			log.Printf("[WARN] %s fetch %s: %v", f.Name(), symbol, err)
			continue
		}
		if len(bars) < minSeriesPoints {
			log.Printf("[WARN] %s: only %d bars for %s, trying next provider", f.Name(), len(bars), symbol)
			continue
		}
		log.Printf("[INFO] %s: got %d bars for %s", f.Name(), len(bars), symbol)
		return bars
	}

	log.Printf("[WARN] all providers failed for %s, using synthetic data", symbol)
	bars, _ := c.Synthetic.FetchDailySeries(ctx, symbol, limit)
	return bars
}
