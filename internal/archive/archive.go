// Package archive resolves flight tokens against a historical MySQL dump
// file when the live store has no matching record. The dump is scanned
// heuristically with the same loose substring philosophy as the tiered
// store lookup; it is deliberately not parsed as SQL.
package archive

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"
)

var (
	insertRe = regexp.MustCompile("(?is)INSERT INTO `flights`.*?VALUES\\s*(\\(.+?\\));")
	tupleRe  = regexp.MustCompile(`\),\s*\(`)
	// FlightNumber is the 2nd field and ScheduledDeparture the 5th in the
	// dump's column order.
	fieldsRe = regexp.MustCompile(`^\s*\d+\s*,\s*'([^']*)'\s*,\s*\d+\s*,\s*\d+\s*,\s*'([^']*)'`)
)

const departureLayout = "2006-01-02 15:04:05"

// Reader scans one dump file per lookup. The file is small enough that
// re-reading keeps the reader stateless.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a reader for the dump at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// FindDeparture returns the scheduled departure of the first archived flight
// whose number matches the token as a substring in either direction,
// case-insensitively. A non-zero date restricts the match to departures on
// that calendar day. A missing or unreadable dump is a miss, not an error.
func (r *Reader) FindDeparture(token string, date time.Time) (time.Time, bool) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Warn("archive dump unavailable", "path", r.path, "error", err)
		return time.Time{}, false
	}

	for _, tuple := range tuples(string(content)) {
		m := fieldsRe.FindStringSubmatch(tuple)
		if m == nil {
			continue
		}
		number, departure := m[1], m[2]

		if token != "" && !looseMatch(token, number) {
			continue
		}
		dep, err := time.Parse(departureLayout, departure)
		if err != nil {
			continue
		}
		if token == "" && date.IsZero() {
			continue
		}
		if !date.IsZero() && !sameDay(dep, date) {
			continue
		}
		return dep, true
	}
	return time.Time{}, false
}

func tuples(content string) []string {
	var out []string
	for _, ins := range insertRe.FindAllStringSubmatch(content, -1) {
		for _, part := range tupleRe.Split(strings.TrimSpace(ins[1]), -1) {
			part = strings.TrimSpace(part)
			part = strings.TrimPrefix(part, "(")
			part = strings.TrimSuffix(part, ")")
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func looseMatch(token, number string) bool {
	t := strings.ToUpper(token)
	n := strings.ToUpper(number)
	return strings.Contains(n, t) || strings.Contains(t, n)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// Describe renders a departure timestamp for replies.
func Describe(dep time.Time) string {
	return fmt.Sprintf("%s UTC", dep.Format("2006-01-02 15:04"))
}
