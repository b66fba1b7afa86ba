// README: Trip lifecycle operations: admission, start, completion, fare split.
package trip

import (
	"errors"

	"ridelink/internal/modules/user"
)

var (
	ErrTripFull          = errors.New("trip is full")
	ErrDuplicateRider    = errors.New("rider already joined this trip")
	ErrInvalidTransition = errors.New("invalid trip status transition")
)

// AdmitRider appends a rider while the trip is still Pending. Admission to a
// started or completed trip is lifecycle misuse, same as an out-of-order
// transition.
func (t *Trip) AdmitRider(capacity int, rider *user.User) error {
	if t.Status != StatusPending {
		return ErrInvalidTransition
	}
	if len(t.Passengers) >= capacity-1 {
		return ErrTripFull
	}
	for _, p := range t.Passengers {
		if p.ID == rider.ID {
			return ErrDuplicateRider
		}
	}
	t.Passengers = append(t.Passengers, rider)
	return nil
}

func (t *Trip) Start() error {
	if !CanTransition(t.Status, StatusActive) {
		return ErrInvalidTransition
	}
	t.Status = StatusActive
	return nil
}

// Complete moves the trip to its terminal state and settles rider accounting:
// each Rider passenger is credited the trip distance and the difference
// between a hypothetical solo ride and the shared fare. The positivity guard
// on savings lives in RiderInfo.UpdateSavings.
func (t *Trip) Complete(capacity int) error {
	if !CanTransition(t.Status, StatusCompleted) {
		return ErrInvalidTransition
	}

	farePerPerson := t.FarePerPerson(capacity)
	soloCost := t.DistanceKM*FuelCostPerKM + BaseFare

	for _, p := range t.Passengers {
		if p.Rider == nil {
			continue
		}
		p.Rider.AddDistanceCommuted(t.DistanceKM)
		p.Rider.UpdateSavings(soloCost - farePerPerson)
	}

	t.Status = StatusCompleted
	return nil
}

// FarePerPerson splits the total trip cost over current occupancy. With no
// passengers yet it is an optimistic full-car estimate over the whole
// capacity. Recomputed on every call.
func (t *Trip) FarePerPerson(capacity int) float64 {
	totalCost := BaseFare + t.DistanceKM*FuelCostPerKM
	if len(t.Passengers) == 0 {
		return totalCost / float64(capacity)
	}
	return totalCost / float64(len(t.Passengers))
}
