// Package bitgetclient implements the ports.ExchangeClient interface
// against the Bitget mix (USDT-futures) REST API. Private endpoints use
// the exchange's HMAC-SHA256 request signing; there is no official Go SDK
// for this API, so the transport is plain net/http.
package bitgetclient

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fundboard/internal/domain"
	"fundboard/internal/ports"
)

const (
	defaultBaseURL = "https://api.bitget.com"

	codeOK = "00000"
)

// Client implements the ports.ExchangeClient interface for Bitget.
type Client struct {
	httpClient  *http.Client
	logger      ports.Logger
	baseURL     string
	apiKey      string
	secretKey   string
	passphrase  string
	productType string
	marginCoin  string
	now         func() time.Time
}

// Config holds configuration specific to the Bitget client adapter.
type Config struct {
	APIKey      string
	SecretKey   string
	Passphrase  string
	ProductType string // e.g. "USDT-FUTURES"
	MarginCoin  string // e.g. "USDT"
	BaseURL     string // override for tests; defaults to the production host
	Timeout     time.Duration
	Logger      ports.Logger
}

// New creates a new Bitget client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Bitget client")
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" || cfg.Passphrase == "" {
		cfg.Logger.Warn(context.Background(), "Bitget credentials incomplete; only public endpoints will work")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	productType := cfg.ProductType
	if productType == "" {
		productType = "USDT-FUTURES"
	}
	marginCoin := cfg.MarginCoin
	if marginCoin == "" {
		marginCoin = "USDT"
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		logger:      cfg.Logger,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		secretKey:   cfg.SecretKey,
		passphrase:  cfg.Passphrase,
		productType: productType,
		marginCoin:  marginCoin,
		now:         time.Now,
	}, nil
}

// envelope is Bitget's standard response wrapper.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// sign produces the ACCESS-SIGN header value: base64(HMAC-SHA256 over
// timestamp + method + requestPath[?query] + body).
func (c *Client) sign(ts, method, path, query, body string) string {
	target := ts + method + path
	if query != "" {
		target += "?" + query
	}
	target += body

	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(target))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c *Client) get(ctx context.Context, path string, params url.Values, private bool) (json.RawMessage, error) {
	query := params.Encode()
	reqURL := c.baseURL + path
	if query != "" {
		reqURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ports.ErrInvalidRequest, path, err)
	}
	if private {
		ts := strconv.FormatInt(c.now().UnixMilli(), 10)
		req.Header.Set("ACCESS-KEY", c.apiKey)
		req.Header.Set("ACCESS-SIGN", c.sign(ts, http.MethodGet, path, query, ""))
		req.Header.Set("ACCESS-PASSPHRASE", c.passphrase)
		req.Header.Set("ACCESS-TIMESTAMP", ts)
	}
	req.Header.Set("locale", "en-US")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s", ports.ErrContextCanceled, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ports.ErrExchangeUnavailable, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response from %s: %v", ports.ErrExchangeUnavailable, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ports.ErrRateLimited, path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ports.ErrAuthenticationFailed, path)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ports.ErrExchangeUnavailable, path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode response from %s: %v", ports.ErrExchangeUnavailable, path, err)
	}
	if env.Code != codeOK {
		c.logger.Warn(ctx, "Bitget API returned error code", map[string]interface{}{
			"path": path, "code": env.Code, "msg": env.Msg,
		})
		return nil, fmt.Errorf("%w: %s: code %s (%s)", ports.ErrInvalidRequest, path, env.Code, env.Msg)
	}
	return env.Data, nil
}

// FetchPositions implements ports.ExchangeClient.
func (c *Client) FetchPositions(ctx context.Context) ([]domain.PositionRecord, error) {
	params := url.Values{}
	params.Set("productType", c.productType)
	params.Set("marginCoin", c.marginCoin)

	data, err := c.get(ctx, "/api/v2/mix/position/all-position", params, true)
	if err != nil {
		return nil, err
	}

	var positions []domain.PositionRecord
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &positions); err != nil {
			return nil, fmt.Errorf("%w: decode positions: %v", ports.ErrExchangeUnavailable, err)
		}
	}
	return positions, nil
}

// FetchAccount implements ports.ExchangeClient. The endpoint returns one
// record per margin coin; the configured coin's record is selected.
func (c *Client) FetchAccount(ctx context.Context) (*domain.AccountRecord, error) {
	params := url.Values{}
	params.Set("productType", c.productType)
	params.Set("marginCoin", c.marginCoin)

	data, err := c.get(ctx, "/api/v2/mix/account/accounts", params, true)
	if err != nil {
		return nil, err
	}

	var accounts []domain.AccountRecord
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &accounts); err != nil {
			return nil, fmt.Errorf("%w: decode accounts: %v", ports.ErrExchangeUnavailable, err)
		}
	}
	for i := range accounts {
		if accounts[i].MarginCoin == c.marginCoin {
			return &accounts[i], nil
		}
	}
	return nil, nil
}

// FetchBills implements ports.ExchangeClient.
func (c *Client) FetchBills(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{}
	params.Set("productType", c.productType)
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.get(ctx, "/api/v2/mix/account/bill", params, true)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Bills []domain.LedgerEntry `json:"bills"`
	}
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("%w: decode bills: %v", ports.ErrExchangeUnavailable, err)
		}
	}
	return payload.Bills, nil
}

// FetchCandles implements ports.ExchangeClient. Public endpoint, no signing.
// Rows arrive as [ts, open, high, low, close, baseVol, quoteVol] string
// tuples, newest last after sorting by the exchange.
func (c *Client) FetchCandles(ctx context.Context, symbol, granularity string, limit int) ([]ports.Candle, error) {
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("granularity", granularity)
	params.Set("productType", c.productType)
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.get(ctx, "/api/v2/mix/market/candles", params, false)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("%w: decode candles: %v", ports.ErrExchangeUnavailable, err)
		}
	}

	candles := make([]ports.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		ms, ok := domain.EpochMillis(row[0])
		if !ok {
			continue
		}
		candles = append(candles, ports.Candle{
			Timestamp: time.UnixMilli(ms),
			Open:      domain.Float(row[1]),
			High:      domain.Float(row[2]),
			Low:       domain.Float(row[3]),
			Close:     domain.Float(row[4]),
			Volume:    domain.Float(row[5]),
		})
	}
	return candles, nil
}
