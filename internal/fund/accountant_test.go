package fund

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundboard/internal/adapters/memory"
	"fundboard/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newAccountant(t *testing.T, repo *memory.UnitLedgerRepository) *Accountant {
	t.Helper()
	acct, err := New(repo, nopLogger{})
	require.NoError(t, err)
	return acct
}

func TestValuationFirstRun(t *testing.T) {
	repo := &memory.UnitLedgerRepository{}
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, map[string]float64{"A": 600, "B": 400}))

	result := newAccountant(t, repo).Valuation(ctx, 1000, nil)

	assert.Equal(t, 1.0, result.NAV)
	assert.Equal(t, 1000.0, result.TotalUnits)
	assert.Equal(t, 0.0, result.ChangePct, "empty history means no change")

	require.Len(t, result.Investors, 2)
	a, b := result.Investors[0], result.Investors[1]
	assert.Equal(t, "A", a.Name)
	assert.InDelta(t, 600.0, a.Valuation, 1e-9)
	assert.InDelta(t, 60.0, a.SharePct, 1e-9)
	assert.Equal(t, "B", b.Name)
	assert.InDelta(t, 400.0, b.Valuation, 1e-9)
	assert.InDelta(t, 40.0, b.SharePct, 1e-9)
}

func TestValuationChangeVsLastSnapshot(t *testing.T) {
	repo := &memory.UnitLedgerRepository{}
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, map[string]float64{"A": 1}))

	series := []domain.EquitySnapshot{
		{Date: "2025-03-08", Equity: 1200},
		{Date: "2025-03-09", Equity: 900},
	}
	result := newAccountant(t, repo).Valuation(ctx, 990, series)

	assert.InDelta(t, 10.0, result.ChangePct, 1e-9)
}

func TestValuationZeroLastEquity(t *testing.T) {
	repo := &memory.UnitLedgerRepository{}
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, map[string]float64{"A": 1}))

	series := []domain.EquitySnapshot{{Date: "2025-03-09", Equity: 0}}
	result := newAccountant(t, repo).Valuation(ctx, 990, series)

	assert.Equal(t, 0.0, result.ChangePct)
}

func TestValuationConservesEquity(t *testing.T) {
	repo := &memory.UnitLedgerRepository{}
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, map[string]float64{
		"Alpha": 123.45,
		"Beta":  67.8,
		"Gamma": 901.25,
	}))

	const equity = 54321.99
	result := newAccountant(t, repo).Valuation(ctx, equity, nil)

	var sum float64
	for _, inv := range result.Investors {
		sum += inv.Valuation
	}
	assert.InDelta(t, equity, sum, 1e-6, "valuations must sum back to total equity")
}

func TestValuationFallsBackOnCorruptLedger(t *testing.T) {
	repo := &memory.UnitLedgerRepository{LoadErr: errors.New("bad json")}
	ctx := context.Background()

	result := newAccountant(t, repo).Valuation(ctx, 978, nil)

	// default seed: 511 + 467 = 978 units
	assert.Equal(t, 978.0, result.TotalUnits)
	assert.InDelta(t, 1.0, result.NAV, 1e-9)
	require.Len(t, result.Investors, 2)
}

func TestValuationEmptyLedgerUsesUnitDenominator(t *testing.T) {
	// an explicitly saved empty mapping also falls back to the seed; to hit
	// the 1.0-unit guard the seed itself must be degenerate, which we
	// simulate by saving zero-unit investors
	repo := &memory.UnitLedgerRepository{}
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, map[string]float64{"A": 0, "B": 0}))

	result := newAccountant(t, repo).Valuation(ctx, 500, nil)

	assert.Equal(t, 1.0, result.TotalUnits)
	assert.Equal(t, 500.0, result.NAV)
}
