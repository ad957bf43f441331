package upbitclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

	client, err := New(Config{BaseURL: server.URL, Logger: nopLogger{}})
	require.NoError(t, err)
	return client
}

func TestFetchRate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ticker", r.URL.Path)
		assert.Equal(t, "KRW-USDT", r.URL.Query().Get("markets"))
		w.Write([]byte(`[{"market":"KRW-USDT","trade_price":1450.5}]`))
	})

	rate, ok := client.FetchRate(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1450.5, rate)
}

func TestFetchRateUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, ok := client.FetchRate(context.Background())
	assert.False(t, ok, "a failed fetch is an absent rate, not an error")
}

func TestFetchRateEmptyPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, ok := client.FetchRate(context.Background())
	assert.False(t, ok)
}
