package analytics

import (
	"strings"

	"fundboard/internal/domain"
)

// biasDominanceRatio is the minimum fraction by which one side's notional
// must exceed the other before the aggregate bias leaves NEUTRAL. The
// reference behavior is a strict greater-than comparison (ratio 0); raise
// it to require e.g. 5% dominance.
const biasDominanceRatio = 0.0

// Aggregate rolls a snapshot of raw position records and the optional
// account record up into display metrics. It never fails: malformed
// numeric fields count as zero and every ratio with a degenerate
// denominator is 0.0. Pure function, safe for concurrent use.
func Aggregate(positions []domain.PositionRecord, account *domain.AccountRecord) domain.DerivedMetrics {
	var m domain.DerivedMetrics

	if account != nil {
		m.Available = domain.Float(account.Available)
		m.Locked = domain.Float(account.Locked)
		m.MarginInUse = domain.Float(account.MarginSize)
	}
	if account != nil && strings.TrimSpace(account.UsdtEquity) != "" {
		m.TotalEquity = domain.Float(account.UsdtEquity)
	} else {
		m.TotalEquity = m.Available + m.Locked + m.MarginInUse
	}

	for _, p := range positions {
		notional := p.Notional()
		m.TotalNotional += notional
		m.UnrealizedTotalPnL += domain.Float(p.UnrealizedPL)

		switch p.Side() {
		case domain.SideLong:
			m.LongNotional += notional
		case domain.SideShort:
			m.ShortNotional += notional
		}
		// unknown side contributes to neither bucket
	}

	if m.TotalEquity > 0 {
		m.EstLeverage = m.TotalNotional / m.TotalEquity
		m.RoePct = m.UnrealizedTotalPnL / m.TotalEquity * 100.0
	}

	m.Bias = directionBias(m.LongNotional, m.ShortNotional)
	return m
}

func directionBias(long, short float64) domain.DirectionBias {
	switch {
	case long > short*(1.0+biasDominanceRatio):
		return domain.BiasLong
	case short > long*(1.0+biasDominanceRatio):
		return domain.BiasShort
	default:
		return domain.BiasNeutral
	}
}
