// Package sqlite implements the persistence ports on an embedded SQLite
// database. It is the substitutable backend for deployments that outgrow
// the flat files; the file adapters remain the default.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fundboard/internal/domain"
	"fundboard/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.SnapshotRepository and
// ports.UnitLedgerRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/fundboard.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; limit the Go side to one conn
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite store initialized", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS equity_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL UNIQUE,
		equity REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS investors (
		name TEXT PRIMARY KEY,
		units REAL NOT NULL
	);
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Load implements ports.SnapshotRepository.
func (r *Repository) Load(ctx context.Context) ([]domain.EquitySnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, equity FROM equity_history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query equity history: %v", ports.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var series []domain.EquitySnapshot
	for rows.Next() {
		var snap domain.EquitySnapshot
		if err := rows.Scan(&snap.Date, &snap.Equity); err != nil {
			return nil, fmt.Errorf("%w: scan equity history: %v", ports.ErrStoreUnavailable, err)
		}
		series = append(series, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate equity history: %v", ports.ErrStoreUnavailable, err)
	}
	return series, nil
}

// Save implements ports.SnapshotRepository. The engine rewrites the whole
// series on every mutation, so the table is replaced transactionally.
func (r *Repository) Save(ctx context.Context, series []domain.EquitySnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ports.ErrSaveFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM equity_history`); err != nil {
		return fmt.Errorf("%w: clear equity history: %v", ports.ErrSaveFailed, err)
	}
	for _, snap := range series {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO equity_history (date, equity) VALUES (?, ?)`,
			snap.Date, snap.Equity); err != nil {
			return fmt.Errorf("%w: insert snapshot for %s: %v", ports.ErrSaveFailed, snap.Date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit equity history: %v", ports.ErrSaveFailed, err)
	}
	return nil
}

// LoadUnits implements ports.UnitLedgerRepository via UnitLedger.
func (r *Repository) LoadUnits(ctx context.Context) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, units FROM investors`)
	if err != nil {
		return nil, fmt.Errorf("%w: query investors: %v", ports.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	investors := make(map[string]float64)
	for rows.Next() {
		var name string
		var units float64
		if err := rows.Scan(&name, &units); err != nil {
			return nil, fmt.Errorf("%w: scan investors: %v", ports.ErrStoreUnavailable, err)
		}
		investors[name] = units
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate investors: %v", ports.ErrStoreUnavailable, err)
	}
	if len(investors) == 0 {
		return nil, nil // no fund state yet
	}
	return investors, nil
}

// SaveUnits implements ports.UnitLedgerRepository via UnitLedger.
func (r *Repository) SaveUnits(ctx context.Context, investors map[string]float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ports.ErrSaveFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM investors`); err != nil {
		return fmt.Errorf("%w: clear investors: %v", ports.ErrSaveFailed, err)
	}
	for name, units := range investors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO investors (name, units) VALUES (?, ?)`,
			name, units); err != nil {
			return fmt.Errorf("%w: insert investor '%s': %v", ports.ErrSaveFailed, name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit investors: %v", ports.ErrSaveFailed, err)
	}
	return nil
}

// UnitLedger adapts the repository to ports.UnitLedgerRepository, so the
// same *Repository can be handed to both the snapshot store and the fund
// accountant without the method sets colliding.
func (r *Repository) UnitLedger() ports.UnitLedgerRepository {
	return unitLedgerView{r}
}

type unitLedgerView struct{ r *Repository }

func (v unitLedgerView) Load(ctx context.Context) (map[string]float64, error) {
	return v.r.LoadUnits(ctx)
}

func (v unitLedgerView) Save(ctx context.Context, investors map[string]float64) error {
	return v.r.SaveUnits(ctx, investors)
}
