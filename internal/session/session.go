// Package session remembers the last successfully resolved entity per
// conversation so follow-up phrasing ("what about that one") can re-reference
// it without a new lookup.
package session

import (
	"fmt"

	"AirportChat/internal/store"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind tags which record a ResolvedEntity carries.
type Kind string

const (
	KindFlight   Kind = "flight"
	KindAircraft Kind = "aircraft"
)

// ResolvedEntity is the most recent successfully looked-up record for a
// session, together with the token that resolved it. Exactly one of Flight
// or Aircraft is set, matching Kind.
type ResolvedEntity struct {
	Kind     Kind
	Token    string
	Flight   *store.FlightRecord
	Aircraft *store.AircraftRecord
}

// ContextStore maps session keys to their resolved entity. Capacity is
// fixed: least-recently-used sessions lose their follow-up context instead
// of the map growing without bound. Updates are unconditional overwrites;
// concurrent writers on one key are last-write-wins.
type ContextStore struct {
	entries *lru.Cache[string, ResolvedEntity]
}

// NewContextStore creates a context store holding at most size sessions.
func NewContextStore(size int) (*ContextStore, error) {
	entries, err := lru.New[string, ResolvedEntity](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create context store: %w", err)
	}
	return &ContextStore{entries: entries}, nil
}

// Resolve returns the current entity for a session, if any.
func (s *ContextStore) Resolve(key string) (ResolvedEntity, bool) {
	return s.entries.Get(key)
}

// Update replaces the session's entity. Callers only invoke this after a
// successful lookup, so a failed turn never clobbers earlier context.
func (s *ContextStore) Update(key string, entity ResolvedEntity) {
	s.entries.Add(key, entity)
}
