package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundboard/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity_history.csv")
	repo, err := NewSnapshotRepository(path, nopLogger{})
	require.NoError(t, err)
	ctx := context.Background()

	// missing file is an empty series, not an error
	series, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, series)

	want := []domain.EquitySnapshot{
		{Date: "2025-03-09", Equity: 900},
		{Date: "2025-03-10", Equity: 990.25},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// file format stays the two-column CSV older deployments wrote
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,equity\n2025-03-09,900\n2025-03-10,990.25\n", string(raw))
}

func TestSnapshotRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity_history.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,equity\n2025-03-09,not-a-number\n"), 0644))

	repo, err := NewSnapshotRepository(path, nopLogger{})
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	assert.Error(t, err)
}

func TestUnitLedgerRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fund_state.json")
	repo, err := NewUnitLedgerRepository(path, nopLogger{})
	require.NoError(t, err)
	ctx := context.Background()

	investors, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, investors)

	want := map[string]float64{"Investor A": 511.0, "Investor B": 467.0}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// the document keeps the single top-level "investors" field
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"investors"`)
}

func TestUnitLedgerRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fund_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0644))

	repo, err := NewUnitLedgerRepository(path, nopLogger{})
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	assert.Error(t, err)
}

func TestUnitLedgerRepositoryMissingInvestorsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fund_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0644))

	repo, err := NewUnitLedgerRepository(path, nopLogger{})
	require.NoError(t, err)

	// an old-format document without the investors key loads as empty,
	// which the accountant turns into the default seed
	investors, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, investors)
}
