package domain

import (
	"strconv"
	"strings"
)

// Float parses an exchange-supplied decimal string. Malformed, empty or
// missing values coerce to 0.0; this helper never fails. All numeric
// fields on raw records go through here so the "never raises on bad
// input" contract is enforced in one place.
func Float(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0.0
	}
	return f
}

// EpochMillis parses an epoch-milliseconds timestamp string. The second
// return value is false when the field is absent or unparseable.
func EpochMillis(v string) (int64, bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// NormalizeSymbol collapses exchange contract-suffix variants onto one
// logical instrument key: the prefix before the first "_", upper-cased.
// Idempotent: normalizing a normalized symbol returns it unchanged.
func NormalizeSymbol(symbol string) string {
	if i := strings.IndexByte(symbol, '_'); i >= 0 {
		symbol = symbol[:i]
	}
	return strings.ToUpper(symbol)
}
