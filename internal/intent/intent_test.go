package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		hasAircraft bool
		hasFlight   bool
		hasContext  bool
		want        Intent
	}{
		{"extracted model wins", "a320", true, false, false, Aircraft},
		{"aircraft keyword alone", "what planes do you have", false, false, false, Aircraft},
		// A message with both an aircraft keyword and a flight number must
		// route to aircraft handling.
		{"aircraft beats flight", "boeing 737 flight AA101", true, true, false, Aircraft},
		{"flight number", "when does AA101 leave", false, true, false, Flight},
		{"follow-up with context", "what about that one", false, false, true, FollowUp},
		{"follow-up without context", "what about that one", false, false, false, Fallback},
		{"check phrase with context", "check it again", false, false, true, FollowUp},
		{"nothing matches", "hello there", false, false, false, Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.hasAircraft, tt.hasFlight, tt.hasContext)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "aircraft", Aircraft.String())
	assert.Equal(t, "flight", Flight.String())
	assert.Equal(t, "followup", FollowUp.String())
	assert.Equal(t, "fallback", Fallback.String())
}
