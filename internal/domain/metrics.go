package domain

// DirectionBias is the aggregate lean of all open positions.
type DirectionBias string

const (
	BiasLong    DirectionBias = "LONG"
	BiasShort   DirectionBias = "SHORT"
	BiasNeutral DirectionBias = "NEUTRAL"
)

// DerivedMetrics is the per-cycle rollup over positions and the account.
// All fields are defined for any input; degenerate denominators produce 0.
type DerivedMetrics struct {
	TotalEquity        float64 // exchange-reported equity, or available+locked+margin in use
	Available          float64
	Locked             float64
	MarginInUse        float64
	TotalNotional      float64 // Σ margin × leverage over all positions
	LongNotional       float64
	ShortNotional      float64
	UnrealizedTotalPnL float64
	RoePct             float64 // unrealized PnL as % of equity
	EstLeverage        float64 // total notional / equity
	Bias               DirectionBias
}

// FundingStat is the reconciled funding history for one instrument.
type FundingStat struct {
	Cumulative float64 // signed sum of all matched funding amounts
	Last       float64 // amount of the matched entry with the greatest timestamp
	LastTime   int64   // epoch ms of that entry, 0 when no entry carried a timestamp
}

// FundingTable maps normalized symbol to its funding stats. Instruments
// with no funding history are absent; consumers treat absence as zero.
type FundingTable map[string]FundingStat
