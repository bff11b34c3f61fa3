package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"What is flight AA101?", "AA101", true},
		{"status of ba4567 please", "BA4567", true},
		{"flight aa12", "AA12", true},
		{"no flights here", "", false},
		{"A101 is not a flight number", "", false},
		{"AA1 too short", "", false},
	}
	for _, tt := range tests {
		got, ok := FlightNumber(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestAircraftModel(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"Boeing 737-800", "Boeing 737-800", true},
		{"tell me about the airbus A320", "Airbus A320", true},
		{"a320", "Airbus A320", true},
		{"737", "Boeing 737", true},
		{"b747", "Boeing B747", true},
		{"EMBRAER 190", "Embraer 190", true},
		{"nothing to see", "", false},
	}
	for _, tt := range tests {
		got, ok := AircraftModel(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestDateISO(t *testing.T) {
	d, ok := Date("departures on 2025-10-15 please")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestDateDayMonth(t *testing.T) {
	d, ok := Date("what leaves on the 15th October")
	require.True(t, ok)
	assert.Equal(t, time.October, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.Now().UTC().Year(), d.Year())

	d, ok = Date("3 march")
	require.True(t, ok)
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 3, d.Day())
}

func TestDateInvalid(t *testing.T) {
	_, ok := Date("invalid")
	assert.False(t, ok)

	// Day 31 does not exist in April.
	_, ok = Date("31st April")
	assert.False(t, ok)

	_, ok = Date("2025-02-30")
	assert.False(t, ok)
}

func TestFlightToken(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"AI101", "AI101", true},
		{"ai - 101", "AI101", true},
		// The compact pattern is unanchored and happily starts mid-word.
		{"flight 343", "IGHT343", true},
		{"go 343", "GO343", true},
		{"343", "343", true},
		{"no token", "", false},
	}
	for _, tt := range tests {
		got, ok := FlightToken(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestTrailingToken(t *testing.T) {
	got, ok := TrailingToken("what is the status of AA101")
	require.True(t, ok)
	assert.Equal(t, "AA101", got)

	_, ok = TrailingToken("   ")
	assert.False(t, ok)
}
