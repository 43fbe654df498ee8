package collector

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	"SignalScout/internal/model"
)

// Fetcher retrieves daily bars from one market-data provider.
type Fetcher interface {
	FetchDailySeries(ctx context.Context, symbol string, limit int) ([]model.PricePoint, error)
	Name() string
}

// providerSymbols maps a canonical symbol to provider-specific spellings.
type providerSymbols struct {
	Yahoo  string
	Alpha  string
	Twelve string
}

var symbolAliases = map[string]providerSymbols{
	"SPX500": {Yahoo: "^GSPC", Alpha: "SPX", Twelve: "SPX"},
	"SPX":    {Yahoo: "^GSPC", Alpha: "SPX", Twelve: "SPX"},
	"XAUUSD": {Yahoo: "GC=F", Alpha: "XAUUSD", Twelve: "XAUUSD"},
	"GOLD":   {Yahoo: "GC=F", Alpha: "XAUUSD", Twelve: "XAUUSD"},
}

func yahooSymbol(symbol string) string {
	if a, ok := symbolAliases[symbol]; ok {
		return a.Yahoo
	}
	return symbol
}

func alphaSymbol(symbol string) string {
	if a, ok := symbolAliases[symbol]; ok {
		return a.Alpha
	}
	return symbol
}

func twelveSymbol(symbol string) string {
	if a, ok := symbolAliases[symbol]; ok {
		return a.Twelve
	}
	return symbol
}

// newHTTPClient builds a client with the per-call timeout and optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// normalizeSeries sorts bars ascending by time, drops duplicate timestamps
// and trims to the most recent limit points.
func normalizeSeries(bars []model.PricePoint, limit int) []model.PricePoint {
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		if n := len(out); n > 0 && !b.Time.After(out[n-1].Time) {
			continue
		}
		out = append(out, b)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
