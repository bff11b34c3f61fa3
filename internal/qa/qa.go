// Package qa is the legacy pattern-table responder. Rules live in the
// ChatbotQA table: static rows answer with fixed text, dynamic rows run a
// stored query with the trailing token of the user's message as the single
// parameter. It predates the entity pipeline and only backs the fallback
// path.
package qa

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"AirportChat/internal/extract"
)

// Responder answers queries from the ChatbotQA rule table.
type Responder struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewResponder creates a responder over the given database handle.
func NewResponder(db *sql.DB, logger *slog.Logger) *Responder {
	return &Responder{db: db, logger: logger}
}

type rule struct {
	pattern string
	answer  string
	dynamic bool
	query   sql.NullString
}

// Reply scans the rule table for the first pattern contained in the lowered
// query and answers it. The second return is false when no rule matched or
// the table could not be read; the caller falls through to the static help.
func (r *Responder) Reply(ctx context.Context, query string) (string, bool) {
	lowered := strings.ToLower(query)

	rules, err := r.loadRules(ctx)
	if err != nil {
		r.logger.Error("failed to load QA rules", "error", err)
		return "", false
	}

	for _, rl := range rules {
		if !strings.Contains(lowered, rl.pattern) {
			continue
		}
		if !rl.dynamic {
			return rl.answer, true
		}
		return r.answerDynamic(ctx, rl, lowered), true
	}
	return "", false
}

func (r *Responder) loadRules(ctx context.Context) ([]rule, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT QuestionPattern, Answer, IsDynamic, DynamicQuery FROM ChatbotQA")
	if err != nil {
		return nil, fmt.Errorf("failed to query ChatbotQA: %w", err)
	}
	defer rows.Close()

	var rules []rule
	for rows.Next() {
		var rl rule
		if err := rows.Scan(&rl.pattern, &rl.answer, &rl.dynamic, &rl.query); err != nil {
			return nil, fmt.Errorf("failed to scan QA rule: %w", err)
		}
		rl.pattern = strings.ToLower(rl.pattern)
		rules = append(rules, rl)
	}
	return rules, rows.Err()
}

func (r *Responder) answerDynamic(ctx context.Context, rl rule, lowered string) string {
	param, ok := extract.TrailingToken(lowered)
	if !ok || !rl.query.Valid {
		return "Sorry, I couldn't find relevant data."
	}

	row, err := r.firstRow(ctx, rl.query.String, param)
	if err != nil {
		r.logger.Error("dynamic QA query failed", "pattern", rl.pattern, "error", err)
		return "Sorry, I couldn't find relevant data."
	}
	if row == "" {
		return "Sorry, I couldn't find relevant data."
	}
	return fmt.Sprintf("%s Result: %s", rl.answer, row)
}

// firstRow runs the stored query and renders the first result row as
// "column=value" pairs, since rule queries choose their own projections.
func (r *Responder) firstRow(ctx context.Context, query, param string) (string, error) {
	rows, err := r.db.QueryContext(ctx, query, param)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		return "", rows.Err()
	}

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return "", err
	}

	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s=%s", col, renderValue(values[i]))
	}
	return strings.Join(parts, ", "), nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
