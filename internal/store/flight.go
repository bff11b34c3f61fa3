package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FlightRecord is a read-only snapshot of one flight joined with its
// airports and aircraft.
type FlightRecord struct {
	FlightNumber       string
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	Origin             string
	Destination        string
	Aircraft           string
	Capacity           int
	Status             string
}

// FlightByNumber looks up the most recent flight for an exact flight number.
// Flight numbers are expected to match exactly, so there is no tiering here;
// the join pulls airport codes and the operating aircraft in one query and
// the latest scheduled departure wins.
func (s *Store) FlightByNumber(ctx context.Context, number string) (*FlightRecord, error) {
	const query = `
		SELECT
			f.FlightNumber,
			f.ScheduledDeparture,
			f.ScheduledArrival,
			oa.AirportCode AS Origin,
			da.AirportCode AS Destination,
			a.Model AS Aircraft,
			a.PassengerCapacity AS Capacity,
			f.Status
		FROM Flights f
		JOIN Airports oa ON f.OriginAirportID = oa.AirportID
		JOIN Airports da ON f.DestinationAirportID = da.AirportID
		JOIN Aircraft a ON f.AircraftID = a.AircraftID
		WHERE f.FlightNumber = ?
		ORDER BY f.ScheduledDeparture DESC
		LIMIT 1`

	var rec FlightRecord
	err := s.db.QueryRowContext(ctx, query, number).Scan(
		&rec.FlightNumber,
		&rec.ScheduledDeparture,
		&rec.ScheduledArrival,
		&rec.Origin,
		&rec.Destination,
		&rec.Aircraft,
		&rec.Capacity,
		&rec.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("flight lookup failed: %w", err)
	}
	return &rec, nil
}
