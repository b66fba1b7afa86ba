// README: Read-only system impact report and ID sequence helpers.
package registry

import (
	"fmt"

	"ridelink/internal/modules/trip"
	"ridelink/internal/modules/user"
	"ridelink/internal/types"
)

// ImpactReport aggregates the current state of the registry. Rendering is
// left to clients.
type ImpactReport struct {
	TotalUsers      int     `json:"total_users"`
	Drivers         int     `json:"drivers"`
	Riders          int     `json:"riders"`
	TotalTrips      int     `json:"total_trips"`
	PendingTrips    int     `json:"pending_trips"`
	ActiveTrips     int     `json:"active_trips"`
	CompletedTrips  int     `json:"completed_trips"`
	TotalMoneySaved float64 `json:"total_money_saved"`
}

// Report folds over users and trips without mutating anything.
func (r *Registry) Report() ImpactReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep := ImpactReport{
		TotalUsers: len(r.users),
		TotalTrips: len(r.trips),
	}
	for _, u := range r.users {
		switch u.Role {
		case user.RoleDriver:
			rep.Drivers++
		case user.RoleRider:
			rep.Riders++
			rep.TotalMoneySaved += u.Rider.TotalMoneySaved
		}
	}
	for _, t := range r.trips {
		switch t.Status {
		case trip.StatusPending:
			rep.PendingTrips++
		case trip.StatusActive:
			rep.ActiveTrips++
		case trip.StatusCompleted:
			rep.CompletedTrips++
		}
	}
	return rep
}

// NextUserID previews the next generated ID: a role prefix plus a zero-padded
// sequence over the total user count. RegisterUser assigns IDs itself; the
// preview is only stable while no registration happens in between.
func (r *Registry) NextUserID(role user.Role) types.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nextUserID(role)
}

func (r *Registry) NextTripID() types.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nextTripID()
}

// nextUserID and nextTripID require the mutex to be held.
func (r *Registry) nextUserID(role user.Role) types.ID {
	prefix := "RDR"
	if role == user.RoleDriver {
		prefix = "DRV"
	}
	return types.ID(fmt.Sprintf("%s%03d", prefix, len(r.users)+1))
}

func (r *Registry) nextTripID() types.ID {
	return types.ID(fmt.Sprintf("TRIP%03d", len(r.trips)+1))
}
