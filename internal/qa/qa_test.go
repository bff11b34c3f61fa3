package qa

import (
	"context"
	"log/slog"
	"testing"

	"AirportChat/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResponder(t *testing.T) *Responder {
	t.Helper()
	s, err := store.Open(":memory:", slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	db := s.DB()
	_, err = db.Exec(
		"INSERT INTO ChatbotQA (QuestionPattern, Answer, IsDynamic, DynamicQuery) VALUES (?, ?, 0, NULL)",
		"opening hours", "The information desk is open 05:00-23:00 daily.",
	)
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO ChatbotQA (QuestionPattern, Answer, IsDynamic, DynamicQuery) VALUES (?, ?, 1, ?)",
		"status of flight", "Here is what I found.",
		"SELECT FlightNumber, Status FROM Flights WHERE FlightNumber = UPPER(?)",
	)
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO Flights (FlightNumber, OriginAirportID, DestinationAirportID, AircraftID, Status) VALUES ('AA101', 1, 2, 1, 'Delayed')")
	require.NoError(t, err)

	return NewResponder(db, slog.Default())
}

func TestStaticRule(t *testing.T) {
	r := testResponder(t)
	reply, ok := r.Reply(context.Background(), "What are your opening hours?")
	require.True(t, ok)
	assert.Equal(t, "The information desk is open 05:00-23:00 daily.", reply)
}

func TestDynamicRuleUsesTrailingToken(t *testing.T) {
	r := testResponder(t)
	reply, ok := r.Reply(context.Background(), "what is the status of flight AA101")
	require.True(t, ok)
	assert.Contains(t, reply, "Here is what I found.")
	assert.Contains(t, reply, "FlightNumber=AA101")
	assert.Contains(t, reply, "Status=Delayed")
}

func TestDynamicRuleMiss(t *testing.T) {
	r := testResponder(t)
	reply, ok := r.Reply(context.Background(), "what is the status of flight ZZ999")
	require.True(t, ok)
	assert.Equal(t, "Sorry, I couldn't find relevant data.", reply)
}

func TestNoRuleMatches(t *testing.T) {
	r := testResponder(t)
	_, ok := r.Reply(context.Background(), "completely unrelated question")
	assert.False(t, ok)
}
