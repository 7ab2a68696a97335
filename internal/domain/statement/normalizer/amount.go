package normalizer

import (
	"strconv"
	"strings"
)

// currencyMarkers are stripped before numeric parsing. Longer markers come
// first so "Rs." is removed before "Rs" would match its prefix.
var currencyMarkers = []string{"Rs.", "Rs", "INR", "USD", "₹", "$", "€", "£"}

// NormalizeAmount converts a raw amount token into a signed value.
//
// A trailing Cr/CR suffix forces a positive magnitude and Dr/DR a negative
// one; without a suffix the literal keeps its own sign. Unparseable text
// yields 0 — the pipeline filters zero-amount rows after normalization, so
// garbage cells degrade to a dropped row instead of an aborted import.
func NormalizeAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	suffix := ""
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "CR"):
		suffix = "CR"
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "DR"):
		suffix = "DR"
		s = s[:len(s)-2]
	}

	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	switch suffix {
	case "CR":
		if value < 0 {
			value = -value
		}
	case "DR":
		if value > 0 {
			value = -value
		}
	}
	return value
}

// HasCreditDebitSuffix reports whether a raw amount token carries a trailing
// Cr/Dr marker. Assembly uses this to tell marker-bearing amounts (sign
// means credit/debit) apart from bare generic amounts (positive means money
// out).
func HasCreditDebitSuffix(raw string) bool {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	return strings.HasSuffix(upper, "CR") || strings.HasSuffix(upper, "DR")
}

// CleanDescription trims a narration and collapses runs of whitespace.
func CleanDescription(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
