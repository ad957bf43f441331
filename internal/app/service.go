package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundboard/internal/analytics"
	"fundboard/internal/domain"
	"fundboard/internal/fund"
	"fundboard/internal/history"
	"fundboard/internal/ports"
)

// CycleResult is everything one poll cycle produces for the rendering
// layer: plain data, no behavior.
type CycleResult struct {
	Metrics   domain.DerivedMetrics
	Funding   domain.FundingTable
	Series    []domain.EquitySnapshot
	Nav       domain.NavResult
	FXRate    float64 // KRW per USDT; 0 when unavailable
	HasFXRate bool
	Recorded  bool // whether this cycle recorded the daily snapshot
}

// DashboardService orchestrates the poll loop: fetch raw exchange data,
// derive metrics, reconcile funding, record the daily snapshot and compute
// the NAV allocation. All engine stages run sequentially within one cycle
// so the NAV change always reflects this cycle's snapshot attempt.
type DashboardService struct {
	logger     ports.Logger
	exchange   ports.ExchangeClient
	fx         ports.FXSource
	snapshots  *history.SnapshotStore
	accountant *fund.Accountant
	billsLimit int
	interval   time.Duration
}

// Config holds dependencies and settings for the dashboard service.
type Config struct {
	Logger     ports.Logger
	Exchange   ports.ExchangeClient
	FX         ports.FXSource // optional; nil disables FX conversion lines
	Snapshots  *history.SnapshotStore
	Accountant *fund.Accountant
	BillsLimit int
	Interval   time.Duration
}

// NewDashboardService creates a new application service instance.
func NewDashboardService(cfg Config) (*DashboardService, error) {
	if cfg.Logger == nil || cfg.Exchange == nil || cfg.Snapshots == nil || cfg.Accountant == nil {
		return nil, fmt.Errorf("missing required dependencies for DashboardService")
	}
	billsLimit := cfg.BillsLimit
	if billsLimit <= 0 {
		billsLimit = 100
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &DashboardService{
		logger:     cfg.Logger,
		exchange:   cfg.Exchange,
		fx:         cfg.FX,
		snapshots:  cfg.Snapshots,
		accountant: cfg.Accountant,
		billsLimit: billsLimit,
		interval:   interval,
	}, nil
}

// RunCycle executes one poll cycle. Upstream fetch failures abort the
// cycle with an error; once raw data is in hand the engine stages cannot
// fail.
func (s *DashboardService) RunCycle(ctx context.Context) (*CycleResult, error) {
	positions, err := s.exchange.FetchPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch positions: %w", err)
	}
	account, err := s.exchange.FetchAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	bills, err := s.exchange.FetchBills(ctx, s.billsLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch bills: %w", err)
	}

	result := &CycleResult{}
	if s.fx != nil {
		result.FXRate, result.HasFXRate = s.fx.FetchRate(ctx)
	}

	// Strict order: aggregate → attempt snapshot → value the fund, so the
	// NAV change compares against a series that includes today's row as
	// soon as it exists.
	result.Metrics = analytics.Aggregate(positions, account)
	result.Funding = analytics.ReconcileFunding(bills)
	result.Series, result.Recorded = s.snapshots.TryRecord(ctx, result.Metrics.TotalEquity)
	result.Nav = s.accountant.Valuation(ctx, result.Metrics.TotalEquity, result.Series)

	if result.Recorded {
		s.logger.Info(ctx, "Daily equity snapshot recorded", map[string]interface{}{
			"equity": result.Metrics.TotalEquity,
		})
	}
	return result, nil
}

// Start runs the poll loop until the context is canceled or a termination
// signal arrives. Cycle errors are logged and the loop keeps going; the
// upstream being down is a display problem, not a reason to exit.
func (s *DashboardService) Start(ctx context.Context) error {
	s.logger.Info(ctx, "Starting dashboard service", map[string]interface{}{
		"interval": s.interval.String(),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		s.logger.Info(ctx, "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run one cycle immediately rather than waiting a full interval
	s.runAndLog(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Dashboard service stopped")
			return nil
		case <-ticker.C:
			s.runAndLog(ctx)
		}
	}
}

func (s *DashboardService) runAndLog(ctx context.Context) {
	result, err := s.RunCycle(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error(ctx, err, "Poll cycle failed")
		}
		return
	}
	s.logger.Debug(ctx, "Poll cycle complete", map[string]interface{}{
		"equity":    result.Metrics.TotalEquity,
		"nav":       result.Nav.NAV,
		"changePct": result.Nav.ChangePct,
	})
}
