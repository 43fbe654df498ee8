package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"SignalScout/internal/model"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage
// TIME_SERIES_DAILY endpoint. Requires an API key.
type AlphaVantageFetcher struct {
	APIKey string
	Client *http.Client
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(apiKey, proxyURL string) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{
		APIKey: apiKey,
		Client: newHTTPClient(proxyURL, fetchTimeout),
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

type alphaBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type alphaResponse struct {
	TimeSeries   map[string]alphaBar `json:"Time Series (Daily)"`
	Note         string              `json:"Note"`
	ErrorMessage string              `json:"Error Message"`
}

func (f *AlphaVantageFetcher) FetchDailySeries(ctx context.Context, symbol string, limit int) ([]model.PricePoint, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("alphavantage: api key not configured")
	}

	u := fmt.Sprintf("https://www.alphavantage.co/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s&outputsize=compact",
		url.QueryEscape(alphaSymbol(symbol)), url.QueryEscape(f.APIKey))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var data alphaResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if data.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", data.ErrorMessage)
	}
	if data.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limited: %s", data.Note)
	}
	if len(data.TimeSeries) == 0 {
		return nil, fmt.Errorf("alphavantage: no data for %s", symbol)
	}

	bars := make([]model.PricePoint, 0, len(data.TimeSeries))
	for date, raw := range data.TimeSeries {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		bars = append(bars, model.PricePoint{
			Symbol: symbol,
			Time:   t,
			Open:   parsePrice(raw.Open),
			High:   parsePrice(raw.High),
			Low:    parsePrice(raw.Low),
			Close:  parsePrice(raw.Close),
			Volume: parsePrice(raw.Volume),
		})
	}
	return normalizeSeries(bars, limit), nil
}

func parsePrice(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
