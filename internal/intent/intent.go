// Package intent decides how a turn is routed. Classification is a fixed
// precedence over the extraction results plus keyword heuristics; the order
// of the checks is part of the product behavior, not incidental.
package intent

import "strings"

// Intent is the routing decision for one turn.
type Intent int

const (
	Fallback Intent = iota
	Aircraft
	Flight
	FollowUp
)

func (i Intent) String() string {
	switch i {
	case Aircraft:
		return "aircraft"
	case Flight:
		return "flight"
	case FollowUp:
		return "followup"
	default:
		return "fallback"
	}
}

var aircraftKeywords = []string{
	"aircraft", "plane", "airplane", "model", "airbus", "boeing", "embraer",
}

var followUpPhrases = []string{
	"what about", "how about", "tell me about", "show me", "check",
}

// Classify picks the intent for a message. Aircraft is checked before
// Flight, so a message carrying both an aircraft keyword and a valid flight
// number always routes to aircraft handling. FollowUp only fires when the
// session already holds a resolved entity.
func Classify(text string, hasAircraft, hasFlight, hasContext bool) Intent {
	lower := strings.ToLower(text)

	if hasAircraft || containsAny(lower, aircraftKeywords) {
		return Aircraft
	}
	if hasFlight {
		return Flight
	}
	if hasContext && containsAny(lower, followUpPhrases) {
		return FollowUp
	}
	return Fallback
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
