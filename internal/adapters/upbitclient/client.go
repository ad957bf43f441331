// Package upbitclient implements the ports.FXSource interface using
// Upbit's public ticker for the KRW-USDT market. The rate is display-only;
// when it cannot be fetched the dashboard simply omits KRW conversions.
package upbitclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fundboard/internal/ports"
)

const defaultBaseURL = "https://api.upbit.com"

// Client fetches the KRW price of USDT.
type Client struct {
	httpClient *http.Client
	logger     ports.Logger
	baseURL    string
}

// Config holds configuration for the Upbit client adapter.
type Config struct {
	BaseURL string // override for tests
	Timeout time.Duration
	Logger  ports.Logger
}

// New creates a new Upbit client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Upbit client")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
		baseURL:    baseURL,
	}, nil
}

// FetchRate implements ports.FXSource. Failures are logged and reported as
// an absent rate, never as an error.
func (c *Client) FetchRate(ctx context.Context) (float64, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/ticker?markets=KRW-USDT", nil)
	if err != nil {
		return 0, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "FX rate fetch failed", map[string]interface{}{"error": err.Error()})
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug(ctx, "FX rate fetch returned non-OK status", map[string]interface{}{"status": resp.StatusCode})
		return 0, false
	}

	var tickers []struct {
		TradePrice float64 `json:"trade_price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tickers); err != nil || len(tickers) == 0 {
		return 0, false
	}
	if tickers[0].TradePrice <= 0 {
		return 0, false
	}
	return tickers[0].TradePrice, true
}
