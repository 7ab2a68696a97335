// Package normalizer converts the loosely-structured date, amount, and
// narration text found in bank exports into canonical values.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// nowFunc is swapped in tests to pin the current-date fallback.
var nowFunc = time.Now

// datePatterns are tried in declared order. The first two are day-first; the
// third is already ISO; the last takes a 2-digit year. Order matters because
// the separators overlap between patterns.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),
	regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`),
	regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`),
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`),
}

// textualLayouts is the fallback for dates written out in calendar text,
// e.g. "15 Mar 2024" or "Mar 15, 2024".
var textualLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	time.RFC3339,
}

// NormalizeDate converts a raw date token into ISO YYYY-MM-DD form.
//
// A matched leading group that looks like a 19xx/20xx year means the token is
// already year-first; otherwise components are reordered as day/month/year,
// expanding 2-digit years with a "20" prefix. Tokens no pattern or textual
// layout can place default to today's date rather than failing the row.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)

	for _, pat := range datePatterns {
		groups := pat.FindStringSubmatch(s)
		if groups == nil {
			continue
		}
		first, second, third := groups[1], groups[2], groups[3]

		if len(first) == 4 && (strings.HasPrefix(first, "19") || strings.HasPrefix(first, "20")) {
			return isoDate(first, second, third)
		}

		year := third
		if len(year) == 2 {
			year = "20" + year
		}
		return isoDate(year, second, first)
	}

	for _, layout := range textualLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return nowFunc().Format("2006-01-02")
}

func isoDate(year, month, day string) string {
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", year, month, day)
}
