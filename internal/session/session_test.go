package session

import (
	"testing"

	"AirportChat/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAndUpdate(t *testing.T) {
	s, err := NewContextStore(8)
	require.NoError(t, err)

	_, ok := s.Resolve("sess1")
	assert.False(t, ok)

	s.Update("sess1", ResolvedEntity{
		Kind:     KindAircraft,
		Token:    "Airbus A320",
		Aircraft: &store.AircraftRecord{Model: "Airbus A320"},
	})

	got, ok := s.Resolve("sess1")
	require.True(t, ok)
	assert.Equal(t, KindAircraft, got.Kind)
	assert.Equal(t, "Airbus A320", got.Token)

	// Overwrite is unconditional.
	s.Update("sess1", ResolvedEntity{
		Kind:   KindFlight,
		Token:  "AA101",
		Flight: &store.FlightRecord{FlightNumber: "AA101"},
	})
	got, ok = s.Resolve("sess1")
	require.True(t, ok)
	assert.Equal(t, KindFlight, got.Kind)
}

func TestEvictionDropsOldestSession(t *testing.T) {
	s, err := NewContextStore(2)
	require.NoError(t, err)

	s.Update("a", ResolvedEntity{Kind: KindFlight, Token: "AA101"})
	s.Update("b", ResolvedEntity{Kind: KindFlight, Token: "BB202"})
	s.Update("c", ResolvedEntity{Kind: KindFlight, Token: "CC303"})

	_, ok := s.Resolve("a")
	assert.False(t, ok)
	_, ok = s.Resolve("c")
	assert.True(t, ok)
}
