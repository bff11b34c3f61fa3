// Package store is the read side of the airline record database plus the
// chat transcript log, backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the database handle. All record queries are read-only
// projections; the chat pipeline never mutates airline data.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the SQLite database and ensures the schema exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS Aircraft (
			AircraftID INTEGER PRIMARY KEY AUTOINCREMENT,
			Model TEXT NOT NULL,
			RegistrationNumber TEXT,
			PassengerCapacity INTEGER,
			CargoCapacityKg INTEGER,
			Status TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS Airports (
			AirportID INTEGER PRIMARY KEY AUTOINCREMENT,
			AirportCode TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS Flights (
			FlightID INTEGER PRIMARY KEY AUTOINCREMENT,
			FlightNumber TEXT NOT NULL,
			ScheduledDeparture DATETIME,
			ScheduledArrival DATETIME,
			OriginAirportID INTEGER,
			DestinationAirportID INTEGER,
			AircraftID INTEGER,
			Status TEXT,
			FOREIGN KEY(OriginAirportID) REFERENCES Airports(AirportID),
			FOREIGN KEY(DestinationAirportID) REFERENCES Airports(AirportID),
			FOREIGN KEY(AircraftID) REFERENCES Aircraft(AircraftID)
		);`,
		`CREATE TABLE IF NOT EXISTS ChatbotQA (
			QAID INTEGER PRIMARY KEY AUTOINCREMENT,
			QuestionPattern TEXT NOT NULL,
			Answer TEXT NOT NULL,
			IsDynamic INTEGER NOT NULL DEFAULT 0,
			DynamicQuery TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT,
			message TEXT,
			reply TEXT,
			created_at DATETIME
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db, logger: logger}, nil
}

// DB exposes the raw handle for collaborators that run their own queries,
// such as the legacy QA responder.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Turn is one logged request/response exchange.
type Turn struct {
	SessionID string
	Message   string
	Reply     string
	CreatedAt time.Time
}

// SaveTurn appends one exchange to the transcript log.
func (s *Store) SaveTurn(ctx context.Context, sessionID, message, reply string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO turns (session_id, message, reply, created_at) VALUES (?, ?, ?, ?)",
		sessionID, message, reply, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// RecentTurns returns the latest exchanges for a session, newest first.
func (s *Store) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT session_id, message, reply, created_at FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?",
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.SessionID, &t.Message, &t.Reply, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
