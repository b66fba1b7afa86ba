// README: Trip aggregate and status definitions.
package trip

import (
	"time"

	"ridelink/internal/modules/location"
	"ridelink/internal/modules/user"
	"ridelink/internal/types"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

// Fare model constants; distance is a fixed constant per trip.
const (
	BaseFare       = 15.0
	FuelCostPerKM  = 2.5
	TripDistanceKM = 10.0
)

// AllowedTransitions represents the trip state flow as code. Status only
// advances forward; Completed is terminal.
var AllowedTransitions = map[Status][]Status{
	StatusPending: {StatusActive},
	StatusActive:  {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Trip is one driver's offered ride. It holds the driver's ID only — the
// registry owns the driver record; operations that need seat capacity take
// the resolved capacity as an argument.
type Trip struct {
	ID            types.ID
	DriverID      types.ID
	Passengers    []*user.User // insertion order = join order
	Origin        location.Location
	Destination   location.Location
	DepartureTime time.Time
	DistanceKM    float64
	Status        Status
}

func New(id, driverID types.ID, origin, destination location.Location, departureTime time.Time) *Trip {
	return &Trip{
		ID:            id,
		DriverID:      driverID,
		Origin:        origin,
		Destination:   destination,
		DepartureTime: departureTime,
		DistanceKM:    TripDistanceKM,
		Status:        StatusPending,
	}
}

// Clone returns a deep copy, passengers included, detached from any
// mutation of the original.
func (t *Trip) Clone() *Trip {
	out := *t
	if len(t.Passengers) > 0 {
		out.Passengers = make([]*user.User, len(t.Passengers))
		for i, p := range t.Passengers {
			out.Passengers[i] = p.Clone()
		}
	}
	return &out
}

// SeatsLeft reports free passenger seats given the driver's car capacity;
// the driver occupies one seat.
func (t *Trip) SeatsLeft(capacity int) int {
	return capacity - 1 - len(t.Passengers)
}
