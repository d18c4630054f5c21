package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field coercers: string in, canonical value out, never an error. The
// second return reports that the documented fallback was applied.

var textualDateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
}

// CoerceDate parses ISO dates, slash dates, and textual "11 Jan 2025"
// dates. Slash dates are ambiguous between day-first and month-first;
// a first component above 12 must be a day, otherwise month-first is
// assumed. Two-digit years are expanded into the 2000s. Unparseable
// input falls back to today's date.
func CoerceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return today(), true
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, false
	}

	if t, ok := parseSlashDate(s); ok {
		return t, false
	}

	for _, layout := range textualDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false
		}
	}

	return today(), true
}

func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	a, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	b, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	// Month-first unless the first component can only be a day. Genuinely
	// ambiguous dates like 03/04/2025 resolve month-first; that matches
	// the legacy product the exports come from.
	month, day := a, b
	if a > 12 {
		month, day = b, a
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject overflow like 31 February, which time.Date normalizes away
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

// CoerceAmount strips everything that is not a digit, decimal point, or
// leading minus sign (currency symbols, thousands separators, stray
// quoting) and parses the remainder. Unparseable or empty input is zero.
func CoerceAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, true
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}

// CoerceBool maps yes/true/1 (any case) to true and everything else,
// including empty input, to false.
func CoerceBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// CoerceText trims the value; when the source used quoted CSV it also
// strips one layer of surrounding quote characters.
func CoerceText(s string, quoted bool) string {
	s = strings.TrimSpace(s)
	if quoted && len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
