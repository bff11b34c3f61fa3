package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AircraftRecord is a read-only snapshot of one aircraft row.
type AircraftRecord struct {
	Model              string
	RegistrationNumber string
	PassengerCapacity  int
	CargoCapacityKg    int
	Status             string
}

const aircraftColumns = "Model, RegistrationNumber, PassengerCapacity, CargoCapacityKg, Status"

// AircraftByModel looks up an aircraft with a degrading three-tier match:
// exact equality, then case-insensitive equality, then substring. The first
// tier that produces a row wins; a miss on every tier returns (nil, nil).
func (s *Store) AircraftByModel(ctx context.Context, term string) (*AircraftRecord, error) {
	queries := []struct {
		tier string
		sql  string
		arg  string
	}{
		{"exact", "SELECT " + aircraftColumns + " FROM Aircraft WHERE Model = ? LIMIT 1", term},
		{"case-insensitive", "SELECT " + aircraftColumns + " FROM Aircraft WHERE UPPER(Model) = UPPER(?) LIMIT 1", term},
		{"substring", "SELECT " + aircraftColumns + " FROM Aircraft WHERE Model LIKE ? LIMIT 1", "%" + term + "%"},
	}

	for _, q := range queries {
		rec, err := s.scanAircraft(s.db.QueryRowContext(ctx, q.sql, q.arg))
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("aircraft lookup failed: %w", err)
		}
		s.logger.Debug("aircraft matched", "term", term, "tier", q.tier, "model", rec.Model)
		return rec, nil
	}
	return nil, nil
}

// AircraftModels returns up to limit distinct models in ascending lexical
// order, used for the not-found suggestion list.
func (s *Store) AircraftModels(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT Model FROM Aircraft ORDER BY Model LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft models: %w", err)
	}
	defer rows.Close()

	var models []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// AircraftList returns the first limit aircraft rows for the debug endpoint.
func (s *Store) AircraftList(ctx context.Context, limit int) ([]AircraftRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+aircraftColumns+" FROM Aircraft LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}
	defer rows.Close()

	var records []AircraftRecord
	for rows.Next() {
		var rec AircraftRecord
		if err := rows.Scan(&rec.Model, &rec.RegistrationNumber, &rec.PassengerCapacity, &rec.CargoCapacityKg, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan aircraft: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) scanAircraft(row *sql.Row) (*AircraftRecord, error) {
	var rec AircraftRecord
	err := row.Scan(&rec.Model, &rec.RegistrationNumber, &rec.PassengerCapacity, &rec.CargoCapacityKg, &rec.Status)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
