package analytics

import (
	"strings"

	"fundboard/internal/domain"
)

// isFundingType reports whether a ledger business-type label looks like a
// funding settlement. The upstream vocabulary is not fully enumerated, so
// this is a deliberately liberal substring match rather than a closed
// enum: a false positive is preferred over silently dropping a real
// funding entry. Tighten here, nowhere else.
func isFundingType(businessType string) bool {
	label := strings.ToLower(businessType)
	return strings.Contains(label, "settle_fee") || strings.Contains(label, "funding")
}

// ReconcileFunding folds a window of raw ledger entries into per-instrument
// funding totals. Symbols are normalized so contract-suffix variants of the
// same instrument merge into one row. Entries that are not funding-related,
// or that carry no symbol, are skipped; unparseable amounts count as zero.
// Never fails. Pure function.
func ReconcileFunding(entries []domain.LedgerEntry) domain.FundingTable {
	table := make(domain.FundingTable)

	for _, e := range entries {
		if !isFundingType(e.BusinessType) {
			continue
		}
		symbol := domain.NormalizeSymbol(e.Symbol)
		if symbol == "" {
			continue // cannot be attributed to an instrument
		}

		amount := domain.Float(e.Amount)
		stat, seen := table[symbol]
		stat.Cumulative += amount

		ts, hasTime := domain.EpochMillis(e.CTime)
		switch {
		case !seen:
			// first entry for the symbol sets Last even without a timestamp
			stat.Last = amount
			if hasTime {
				stat.LastTime = ts
			}
		case hasTime && ts >= stat.LastTime:
			stat.Last = amount
			stat.LastTime = ts
		}
		// a later entry without a timestamp never overwrites Last

		table[symbol] = stat
	}

	return table
}
