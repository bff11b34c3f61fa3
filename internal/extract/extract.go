// Package extract contains the pure entity extractors used by the chat
// pipeline. Each function maps raw message text to an optional structured
// token; a miss is (zero value, false), never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	flightNumberRe = regexp.MustCompile(`\b([A-Z]{2}\d{2,4})\b`)

	modelFullRe = regexp.MustCompile(`(?i)\b(Airbus|Boeing|Embraer)\s+(A\d{3}[-\s]?\d{0,3}[A-Z]*|B?\d{3}[-\s]?\d{0,3}[A-Z]*)\b`)
	modelCodeRe = regexp.MustCompile(`(?i)\b(A\d{3}|B?\d{3})\b`)

	isoDateRe      = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	dayMonthRe     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\b`)
	tokenCompactRe = regexp.MustCompile(`[A-Za-z]{2,4}\s*-?\s*\d{1,4}`)
	tokenWordRe    = regexp.MustCompile(`[A-Za-z]+\s+\d{1,4}`)
	tokenDigitsRe  = regexp.MustCompile(`\b(\d{2,4})\b`)

	stripRe = regexp.MustCompile(`[\s-]+`)
)

var monthNames = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// FlightNumber extracts a flight number like AA101 or BA456, two letters
// followed by two to four digits, independent of input casing.
func FlightNumber(text string) (string, bool) {
	m := flightNumberRe.FindStringSubmatch(strings.ToUpper(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AircraftModel extracts an aircraft model. Tier 1 matches a full
// "<manufacturer> <code>" form and preserves the code verbatim. Tier 2
// matches a bare code and guesses the manufacturer: codes starting with A
// become Airbus, everything else Boeing. The bare-code guess has no Embraer
// fallback and can mis-tag codes; it mirrors the production behavior.
func AircraftModel(text string) (string, bool) {
	if m := modelFullRe.FindStringSubmatch(text); m != nil {
		return titleCase(m[1]) + " " + strings.TrimSpace(m[2]), true
	}
	if m := modelCodeRe.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if strings.HasPrefix(code, "A") {
			return "Airbus " + code, true
		}
		return "Boeing " + code, true
	}
	return "", false
}

// Date extracts a calendar date. ISO yyyy-mm-dd wins; otherwise a
// "15th October" style day plus English month name, with the year defaulted
// to the current UTC year. Calendar-invalid dates are a miss.
func Date(text string) (time.Time, bool) {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := validDate(year, time.Month(month), day); ok {
			return d, true
		}
	}
	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		day, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		if d, ok := validDate(time.Now().UTC().Year(), month, day); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// FlightToken extracts a loose flight-like token ("AI101", "BOEING343",
// "343") for the archival lookup flow. Patterns are tried in order and the
// first match wins, with no backtracking across tiers.
func FlightToken(text string) (string, bool) {
	if m := tokenCompactRe.FindString(text); m != "" {
		return strings.ToUpper(stripRe.ReplaceAllString(m, "")), true
	}
	if m := tokenWordRe.FindString(text); m != "" {
		return strings.ToUpper(strings.ReplaceAll(m, " ", "")), true
	}
	if m := tokenDigitsRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// TrailingToken returns the final whitespace-delimited token of the text.
// It is the parameter rule of the legacy QA flow, kept behind the extractor
// surface instead of inlined in dispatch.
func TrailingToken(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}
	return fields[len(fields)-1], true
}

func validDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
