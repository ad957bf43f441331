package bitgetclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundboard/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:     "key",
		SecretKey:  "secret",
		Passphrase: "phrase",
		BaseURL:    server.URL,
		Logger:     nopLogger{},
	})
	require.NoError(t, err)
	return client
}

func TestFetchPositionsSignsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/mix/position/all-position", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("ACCESS-KEY"))
		assert.Equal(t, "phrase", r.Header.Get("ACCESS-PASSPHRASE"))
		assert.NotEmpty(t, r.Header.Get("ACCESS-SIGN"))
		assert.NotEmpty(t, r.Header.Get("ACCESS-TIMESTAMP"))
		assert.Equal(t, "USDT-FUTURES", r.URL.Query().Get("productType"))

		w.Write([]byte(`{"code":"00000","msg":"success","data":[
			{"symbol":"BTCUSDT","holdSide":"long","leverage":"10","marginSize":"100","unrealizedPL":"50"}
		]}`))
	})

	positions, err := client.FetchPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "BTCUSDT", positions[0].Symbol)
	assert.Equal(t, "10", positions[0].Leverage)
}

func TestFetchAccountSelectsMarginCoin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"00000","msg":"success","data":[
			{"marginCoin":"BTC","available":"1"},
			{"marginCoin":"USDT","available":"400","locked":"100","usdtEquity":"1000"}
		]}`))
	})

	account, err := client.FetchAccount(context.Background())
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "USDT", account.MarginCoin)
	assert.Equal(t, "1000", account.UsdtEquity)
}

func TestFetchBillsUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/mix/account/bill", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"code":"00000","msg":"success","data":{"bills":[
			{"symbol":"BTCUSDT_UMCBL","businessType":"contract_settle_fee","amount":"-0.5","cTime":"100"}
		]}}`))
	})

	bills, err := client.FetchBills(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "contract_settle_fee", bills[0].BusinessType)
}

func TestAPIErrorCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"40037","msg":"apikey does not exist","data":null}`))
	})

	_, err := client.FetchPositions(context.Background())
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
}

func TestRateLimitStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchBills(context.Background(), 10)
	assert.ErrorIs(t, err, ports.ErrRateLimited)
}

func TestFetchCandlesParsesTuples(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("ACCESS-SIGN"), "market data must not be signed")
		w.Write([]byte(`{"code":"00000","msg":"success","data":[
			["1700000000000","100","110","90","105","12.5","1300"],
			["1700003600000","105","120","101","118","8.1","900"]
		]}`))
	})

	candles, err := client.FetchCandles(context.Background(), "BTCUSDT", "1h", 2)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, 105.0, candles[0].Close)
	assert.Equal(t, 118.0, candles[1].Close)
}
