package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fundboard/internal/ports"
)

// fundState is the on-disk shape of the unit ledger: a single top-level
// "investors" field mapping investor name to unit count.
type fundState struct {
	Investors map[string]float64 `json:"investors"`
}

// UnitLedgerRepository stores the investor unit mapping as a JSON document.
type UnitLedgerRepository struct {
	path   string
	logger ports.Logger
}

// NewUnitLedgerRepository creates a JSON-backed unit ledger repository.
func NewUnitLedgerRepository(path string, logger ports.Logger) (*UnitLedgerRepository, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for unit ledger repository")
	}
	if path == "" {
		path = "./data/fund_state.json"
	}
	return &UnitLedgerRepository{path: path, logger: logger}, nil
}

func (r *UnitLedgerRepository) Load(ctx context.Context) (map[string]float64, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil // no fund state yet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read '%s': %v", ports.ErrStoreUnavailable, r.path, err)
	}

	var state fundState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: parse '%s': %v", ports.ErrStoreUnavailable, r.path, err)
	}
	return state.Investors, nil
}

func (r *UnitLedgerRepository) Save(ctx context.Context, investors map[string]float64) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", ports.ErrSaveFailed, err)
	}
	raw, err := json.MarshalIndent(fundState{Investors: investors}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode fund state: %v", ports.ErrSaveFailed, err)
	}
	if err := os.WriteFile(r.path, raw, 0644); err != nil {
		return fmt.Errorf("%w: write '%s': %v", ports.ErrSaveFailed, r.path, err)
	}
	r.logger.Debug(ctx, "Fund state saved", map[string]interface{}{"investors": len(investors)})
	return nil
}
