package ports

import (
	"context"
	"time"

	"fundboard/internal/domain"
)

// Candle is a single candlestick from the exchange's public market data.
// Candles feed the chart widget only; the accounting engine never reads them.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// ExchangeClient defines the read-only surface the dashboard needs from the
// derivatives exchange. All records come back raw and loosely typed; the
// engine, not the client, owns the "malformed input never fails" contract.
type ExchangeClient interface {
	// FetchPositions retrieves all open positions for the configured
	// product type and margin coin.
	FetchPositions(ctx context.Context) ([]domain.PositionRecord, error)

	// FetchAccount retrieves the margin account summary for the configured
	// margin coin. Returns nil, nil when the exchange reports no account.
	FetchAccount(ctx context.Context) (*domain.AccountRecord, error)

	// FetchBills retrieves up to limit recent ledger entries, newest first.
	FetchBills(ctx context.Context, limit int) ([]domain.LedgerEntry, error)

	// FetchCandles retrieves recent candles for a symbol and granularity
	// (e.g. "1h"), oldest first.
	FetchCandles(ctx context.Context, symbol, granularity string, limit int) ([]Candle, error)
}

// FXSource provides a single spot conversion rate for display purposes.
type FXSource interface {
	// FetchRate returns the current rate and true, or 0 and false when the
	// rate is unavailable. An absent rate is not an error: FX-dependent
	// display lines are simply omitted.
	FetchRate(ctx context.Context) (float64, bool)
}
