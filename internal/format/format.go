// Package format renders records into the fixed reply templates. Every
// function is pure: the same record always yields byte-identical output.
package format

import (
	"fmt"
	"strings"

	"AirportChat/internal/store"
)

const timeLayout = "2006-01-02 15:04"

// FlightInfo renders a flight record.
func FlightInfo(rec *store.FlightRecord) string {
	return fmt.Sprintf(`✈️ Flight %s

🛫 Departure: %s from %s
🛬 Arrival: %s at %s
✈️ Aircraft: %s (Capacity: %d passengers)
📊 Status: %s`,
		rec.FlightNumber,
		rec.ScheduledDeparture.Format(timeLayout), rec.Origin,
		rec.ScheduledArrival.Format(timeLayout), rec.Destination,
		rec.Aircraft, rec.Capacity,
		rec.Status,
	)
}

// AircraftInfo renders an aircraft record.
func AircraftInfo(rec *store.AircraftRecord) string {
	return fmt.Sprintf(`✈️ Aircraft %s

🔢 Registration: %s
🧍 Passenger Capacity: %d
📦 Cargo Capacity: %d kg
📊 Status: %s`,
		rec.Model,
		rec.RegistrationNumber,
		rec.PassengerCapacity,
		rec.CargoCapacityKg,
		rec.Status,
	)
}

// AircraftNotFound renders the miss reply for an aircraft query, listing at
// most five known models as suggestions.
func AircraftNotFound(term string, models []string) string {
	if len(models) > 5 {
		models = models[:5]
	}
	var list strings.Builder
	for _, m := range models {
		fmt.Fprintf(&list, "  • %s\n", m)
	}
	return fmt.Sprintf(`Sorry, I couldn't find '%s'.

Available aircraft models:
%s
Try one of these!`, term, strings.TrimRight(list.String(), "\n"))
}

// FlightNotFound renders the miss reply for a flight query.
func FlightNotFound(number string) string {
	return fmt.Sprintf("Sorry, I couldn't find flight %s.", number)
}

// ArchivedFlight renders the archival-fallback reply when a flight is absent
// from the live schedule but present in the historical dump.
func ArchivedFlight(number string, departure string) string {
	return fmt.Sprintf("Flight %s is not in the current schedule. The archive shows its last scheduled departure as %s.", number, departure)
}

// Fallback is the static help reply when no intent matched.
func Fallback() string {
	return `I can help you with:
• Flight info - "What is flight AA101?"
• Aircraft details - "Tell me about Airbus A320"

What would you like to know?`
}

// Prompt is the reply for an empty or missing message.
func Prompt() string {
	return "Please send a message!"
}
