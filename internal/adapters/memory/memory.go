// Package memory provides in-memory repository implementations. They back
// the engine in tests so its logic never has to touch disk.
package memory

import (
	"context"
	"sync"

	"fundboard/internal/domain"
)

// SnapshotRepository implements ports.SnapshotRepository in memory.
type SnapshotRepository struct {
	mu     sync.Mutex
	series []domain.EquitySnapshot

	LoadErr error // when set, Load fails with it (simulates a corrupt store)
	SaveErr error // when set, Save fails with it
}

func (r *SnapshotRepository) Load(ctx context.Context) ([]domain.EquitySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	out := make([]domain.EquitySnapshot, len(r.series))
	copy(out, r.series)
	return out, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, series []domain.EquitySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.series = make([]domain.EquitySnapshot, len(series))
	copy(r.series, series)
	return nil
}

// UnitLedgerRepository implements ports.UnitLedgerRepository in memory.
type UnitLedgerRepository struct {
	mu        sync.Mutex
	investors map[string]float64

	LoadErr error
	SaveErr error
}

func (r *UnitLedgerRepository) Load(ctx context.Context) (map[string]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	out := make(map[string]float64, len(r.investors))
	for name, units := range r.investors {
		out[name] = units
	}
	return out, nil
}

func (r *UnitLedgerRepository) Save(ctx context.Context, investors map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.investors = make(map[string]float64, len(investors))
	for name, units := range investors {
		r.investors[name] = units
	}
	return nil
}
