package ports

import (
	"context"

	"fundboard/internal/domain"
)

// SnapshotRepository persists the daily equity series. The series is small
// (one row per day) and is always loaded and saved whole; there is no
// incremental append API. Implementations are single-writer: two processes
// saving concurrently is last-writer-wins.
type SnapshotRepository interface {
	// Load returns the full series in append order.
	// A store that does not exist yet yields an empty series, not an error.
	Load(ctx context.Context) ([]domain.EquitySnapshot, error)
	// Save replaces the whole persisted series.
	Save(ctx context.Context, series []domain.EquitySnapshot) error
}

// UnitLedgerRepository persists the investor → unit-count mapping. The
// engine only reads it; mutations happen through external administrative
// action using Save.
type UnitLedgerRepository interface {
	// Load returns the investor unit mapping.
	// A store that does not exist yet yields an empty map, not an error.
	Load(ctx context.Context) (map[string]float64, error)
	// Save replaces the whole persisted mapping.
	Save(ctx context.Context, investors map[string]float64) error
}
