package domain

// InvestorValuation is one investor's slice of the fund at current NAV.
type InvestorValuation struct {
	Name      string
	Units     float64
	Valuation float64 // units × nav
	SharePct  float64 // units / total units × 100
}

// NavResult is the fund accounting output for one poll cycle.
//
// ChangePct compares current equity against the last snapshot's recorded
// equity, not against the fund's NAV at that time. If total units changed
// between the two observations (deposit/withdrawal) this conflates
// performance with capital flows; the behavior is kept deliberately to
// match the figures the dashboard has always shown.
type NavResult struct {
	NAV        float64 // total equity / total units
	TotalUnits float64
	ChangePct  float64
	Investors  []InvestorValuation // sorted by name
}
