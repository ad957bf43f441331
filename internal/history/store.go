package history

import (
	"context"
	"fmt"
	"time"

	"fundboard/internal/domain"
	"fundboard/internal/ports"
)

// SnapshotStore records at most one equity observation per calendar day,
// with days measured in a fixed reference timezone. The underlying series
// is read whole, mutated and rewritten whole on every recording call;
// concurrent writers against the same store are not supported.
type SnapshotStore struct {
	repo       ports.SnapshotRepository
	logger     ports.Logger
	loc        *time.Location
	cutoffHour int
	now        func() time.Time
}

// Config holds configuration for the snapshot store.
type Config struct {
	Repo       ports.SnapshotRepository
	Logger     ports.Logger
	TZOffsetH  int              // reference timezone as a fixed UTC offset in hours
	CutoffHour int              // earliest local hour at which TryRecord may fire
	Now        func() time.Time // overridable for tests; defaults to time.Now
}

// New creates a snapshot store.
func New(cfg Config) (*SnapshotStore, error) {
	if cfg.Repo == nil || cfg.Logger == nil {
		return nil, fmt.Errorf("missing required dependencies for SnapshotStore")
	}
	if cfg.CutoffHour < 0 || cfg.CutoffHour > 23 {
		return nil, fmt.Errorf("cutoff hour %d out of range", cfg.CutoffHour)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &SnapshotStore{
		repo:       cfg.Repo,
		logger:     cfg.Logger,
		loc:        time.FixedZone(fmt.Sprintf("UTC%+d", cfg.TZOffsetH), cfg.TZOffsetH*3600),
		cutoffHour: cfg.CutoffHour,
		now:        now,
	}, nil
}

// Load returns the full recorded series. A missing or unreadable store
// yields an empty series; the failure is logged, never surfaced.
func (s *SnapshotStore) Load(ctx context.Context) []domain.EquitySnapshot {
	series, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "Equity history unreadable, starting from empty series", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return series
}

// TryRecord appends today's equity observation if today has no snapshot yet
// and the local time has passed the daily cutoff hour. It returns the
// series (reflecting any append) and whether a row was recorded just now.
func (s *SnapshotStore) TryRecord(ctx context.Context, equity float64) ([]domain.EquitySnapshot, bool) {
	series := s.Load(ctx)
	local := s.now().In(s.loc)
	today := local.Format(domain.DateFormat)

	for _, snap := range series {
		if snap.Date == today {
			return series, false // already recorded
		}
	}
	if local.Hour() < s.cutoffHour {
		return series, false // too early in the day
	}

	series = append(series, domain.EquitySnapshot{Date: today, Equity: equity})
	if err := s.repo.Save(ctx, series); err != nil {
		s.logger.Error(ctx, err, "Failed to persist equity snapshot", map[string]interface{}{"date": today})
		return series[:len(series)-1], false
	}
	return series, true
}

// ForceRecord overwrites today's observation unconditionally, ignoring both
// the cutoff hour and any existing row for today. This is the only
// supported correction mechanism; history beyond today is never edited.
func (s *SnapshotStore) ForceRecord(ctx context.Context, equity float64) ([]domain.EquitySnapshot, error) {
	series := s.Load(ctx)
	today := s.now().In(s.loc).Format(domain.DateFormat)

	kept := series[:0]
	for _, snap := range series {
		if snap.Date != today {
			kept = append(kept, snap)
		}
	}
	kept = append(kept, domain.EquitySnapshot{Date: today, Equity: equity})

	if err := s.repo.Save(ctx, kept); err != nil {
		s.logger.Error(ctx, err, "Failed to persist forced equity snapshot", map[string]interface{}{"date": today})
		return nil, fmt.Errorf("force record snapshot: %w", err)
	}
	return kept, nil
}
