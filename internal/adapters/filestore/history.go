// Package filestore implements the persistence ports on plain files: the
// equity history as a two-column CSV and the fund state as a JSON document.
// These are the production defaults and stay byte-compatible with the
// formats earlier deployments wrote. Writes are whole-file truncate-and-
// rewrite with no locking; a single writer is assumed.
package filestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fundboard/internal/domain"
	"fundboard/internal/ports"
)

// SnapshotRepository stores the equity series as CSV with a "date,equity"
// header, one row per calendar day in append order.
type SnapshotRepository struct {
	path   string
	logger ports.Logger
}

// NewSnapshotRepository creates a CSV-backed snapshot repository.
func NewSnapshotRepository(path string, logger ports.Logger) (*SnapshotRepository, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for snapshot repository")
	}
	if path == "" {
		path = "./data/equity_history.csv"
	}
	return &SnapshotRepository{path: path, logger: logger}, nil
}

func (r *SnapshotRepository) Load(ctx context.Context) ([]domain.EquitySnapshot, error) {
	file, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, nil // no history yet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open '%s': %v", ports.ErrStoreUnavailable, r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse '%s': %v", ports.ErrStoreUnavailable, r.path, err)
	}

	var series []domain.EquitySnapshot
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "date" {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		equity, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d of '%s' has non-numeric equity", ports.ErrStoreUnavailable, i, r.path)
		}
		series = append(series, domain.EquitySnapshot{Date: row[0], Equity: equity})
	}
	return series, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, series []domain.EquitySnapshot) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", ports.ErrSaveFailed, err)
	}
	file, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("%w: create '%s': %v", ports.ErrSaveFailed, r.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"date", "equity"})
	for _, snap := range series {
		writer.Write([]string{
			snap.Date,
			strconv.FormatFloat(snap.Equity, 'f', -1, 64),
		})
	}
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: write '%s': %v", ports.ErrSaveFailed, r.path, err)
	}
	r.logger.Debug(ctx, "Equity history saved", map[string]interface{}{"rows": len(series)})
	return nil
}
