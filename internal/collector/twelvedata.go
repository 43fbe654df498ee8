package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SignalScout/internal/model"
)

// TwelveDataFetcher implements Fetcher using the Twelve Data time_series
// endpoint. Requires an API key.
type TwelveDataFetcher struct {
	APIKey string
	Client *http.Client
}

// NewTwelveDataFetcher creates a fetcher with optional proxy support.
func NewTwelveDataFetcher(apiKey, proxyURL string) *TwelveDataFetcher {
	return &TwelveDataFetcher{
		APIKey: apiKey,
		Client: newHTTPClient(proxyURL, fetchTimeout),
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

type twelveBar struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type twelveResponse struct {
	Values  []twelveBar `json:"values"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

func (f *TwelveDataFetcher) FetchDailySeries(ctx context.Context, symbol string, limit int) ([]model.PricePoint, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("twelvedata: api key not configured")
	}

	u := fmt.Sprintf("https://api.twelvedata.com/time_series?symbol=%s&interval=1day&outputsize=%d&apikey=%s",
		url.QueryEscape(twelveSymbol(symbol)), limit, url.QueryEscape(f.APIKey))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twelvedata fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("twelvedata read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twelvedata: status %d, body: %s", resp.StatusCode, string(body))
	}

	var data twelveResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if data.Status == "error" {
		return nil, fmt.Errorf("twelvedata api error: %s", data.Message)
	}
	if len(data.Values) == 0 {
		return nil, fmt.Errorf("twelvedata: no data for %s", symbol)
	}

	bars := make([]model.PricePoint, 0, len(data.Values))
	for _, raw := range data.Values {
		t, err := time.Parse("2006-01-02", raw.Datetime)
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
