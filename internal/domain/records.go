package domain

// PositionRecord is one open position exactly as the exchange reports it.
// Every numeric field arrives as a string and may be empty, missing or
// garbage; consumers go through Float and never see a parse error.
// Records are produced fresh each poll cycle and never persisted.
type PositionRecord struct {
	Symbol           string `json:"symbol"`           // raw, may carry a contract suffix (e.g. "BTCUSDT_UMCBL")
	HoldSide         string `json:"holdSide"`         // "long", "short" or anything else (treated as unknown)
	Leverage         string `json:"leverage"`
	MarginSize       string `json:"marginSize"`       // margin allocated to the position
	UnrealizedPL     string `json:"unrealizedPL"`
	MarkPrice        string `json:"markPrice"`
	LiquidationPrice string `json:"liquidationPrice"`
	AverageOpenPrice string `json:"averageOpenPrice"`
	Total            string `json:"total"`            // held quantity in contracts
}

// AccountRecord is the margin account summary for one margin coin.
type AccountRecord struct {
	MarginCoin string `json:"marginCoin"`
	Available  string `json:"available"`
	Locked     string `json:"locked"`
	MarginSize string `json:"marginSize"` // margin currently in use
	UsdtEquity string `json:"usdtEquity"` // exchange-computed total equity, may be absent
}

// LedgerEntry is one account bill row from the exchange ledger. Only a
// bounded recent window is ever fetched, not the complete history.
type LedgerEntry struct {
	Symbol       string `json:"symbol"`
	BusinessType string `json:"businessType"` // free-text label, vocabulary not fully known upstream
	Amount       string `json:"amount"`       // signed
	CTime        string `json:"cTime"`        // epoch milliseconds, may be absent
}

// Side reports the position side as a normalized constant.
func (p PositionRecord) Side() PositionSide {
	switch upper(p.HoldSide) {
	case "LONG":
		return SideLong
	case "SHORT":
		return SideShort
	default:
		return SideUnknown
	}
}

// Notional approximates the position value as margin × leverage. This is
// not the exchange's authoritative notional.
func (p PositionRecord) Notional() float64 {
	return Float(p.MarginSize) * Float(p.Leverage)
}

// PositionSide is the direction of a single position.
type PositionSide string

const (
	SideLong    PositionSide = "LONG"
	SideShort   PositionSide = "SHORT"
	SideUnknown PositionSide = "UNKNOWN"
)
