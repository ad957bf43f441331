package fund

import (
	"context"
	"fmt"
	"sort"

	"fundboard/internal/domain"
	"fundboard/internal/ports"
)

// DefaultSeed returns the investor unit mapping used when no fund state has
// been persisted yet (or the store is unreadable). It exists so the
// dashboard has something to render on first run; it carries no business
// meaning beyond that.
func DefaultSeed() map[string]float64 {
	return map[string]float64{
		"Investor A": 511.0,
		"Investor B": 467.0,
	}
}

// Accountant turns current equity plus the recorded history into a NAV
// allocation across investors. It only ever reads the unit ledger;
// minting and redeeming units is an administrative action outside the
// engine.
type Accountant struct {
	repo   ports.UnitLedgerRepository
	logger ports.Logger
}

// New creates a fund accountant.
func New(repo ports.UnitLedgerRepository, logger ports.Logger) (*Accountant, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Accountant")
	}
	return &Accountant{repo: repo, logger: logger}, nil
}

// Units loads the investor unit mapping, substituting the default seed when
// the persisted state is missing, unreadable or empty.
func (a *Accountant) Units(ctx context.Context) map[string]float64 {
	investors, err := a.repo.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "Fund state unreadable, using default seed", map[string]interface{}{"error": err.Error()})
		return DefaultSeed()
	}
	if len(investors) == 0 {
		return DefaultSeed()
	}
	return investors
}

// Valuation computes NAV, the change versus the last recorded snapshot and
// each investor's current valuation. Never fails: a degenerate unit ledger
// falls back to a total of 1.0 so NAV stays defined, and an empty history
// yields a change of 0.
func (a *Accountant) Valuation(ctx context.Context, totalEquity float64, series []domain.EquitySnapshot) domain.NavResult {
	investors := a.Units(ctx)

	var totalUnits float64
	for _, units := range investors {
		totalUnits += units
	}
	if totalUnits <= 0 {
		totalUnits = 1.0
	}

	result := domain.NavResult{
		NAV:        totalEquity / totalUnits,
		TotalUnits: totalUnits,
	}

	// Change is measured against the last snapshot's equity, not its NAV;
	// see the NavResult doc for the caveat this carries.
	if len(series) > 0 {
		if last := series[len(series)-1].Equity; last > 0 {
			result.ChangePct = (totalEquity - last) / last * 100.0
		}
	}

	names := make([]string, 0, len(investors))
	for name := range investors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		units := investors[name]
		result.Investors = append(result.Investors, domain.InvestorValuation{
			Name:      name,
			Units:     units,
			Valuation: units * result.NAV,
			SharePct:  units / totalUnits * 100.0,
		})
	}
	return result
}
