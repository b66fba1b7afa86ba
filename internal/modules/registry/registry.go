// README: In-memory owner of all users and trips; matching query and lifecycle orchestration.
package registry

import (
	"errors"
	"sync"
	"time"

	"ridelink/internal/modules/location"
	"ridelink/internal/modules/trip"
	"ridelink/internal/modules/user"
	"ridelink/internal/types"
	"ridelink/pkg/logger"
)

// MaxTimeDiffMinutes is the matching window around the desired departure,
// inclusive on both sides.
const MaxTimeDiffMinutes = 30

var (
	ErrDuplicateID = errors.New("user id already exists")
	ErrNotFound    = errors.New("not found")
	ErrNotADriver  = errors.New("user is not a driver")
)

// Registry is the sole owner of the user and trip collections. Both are
// append-only for the life of a session and iterate in insertion order. The
// domain operations themselves are synchronous; the mutex exists because the
// HTTP surface calls in concurrently. Read methods return deep copies so
// callers never touch an aggregate the registry may mutate under the lock.
type Registry struct {
	mu    sync.RWMutex
	log   logger.ILogger
	users []*user.User
	trips []*trip.Trip
}

func New(log logger.ILogger) *Registry {
	return &Registry{log: log}
}

// RegisterUser appends a user unless the ID is already taken. An empty ID is
// assigned from the sequence inside the same critical section, so concurrent
// no-ID registrations cannot mint the same ID. No other validation happens
// here; callers hand in fully-formed users.
func (r *Registry) RegisterUser(u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		u.ID = r.nextUserID(u.Role)
	}
	for _, existing := range r.users {
		if existing.ID == u.ID {
			return ErrDuplicateID
		}
	}
	r.users = append(r.users, u)
	r.log.Info("user registered",
		logger.String("user_id", string(u.ID)),
		logger.String("role", string(u.Role)))
	return nil
}

// PostTrip appends a trip unconditionally. An empty ID is assigned from the
// sequence inside the same critical section.
func (r *Registry) PostTrip(t *trip.Trip) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = r.nextTripID()
	}
	r.trips = append(r.trips, t)
	r.log.Info("trip posted",
		logger.String("trip_id", string(t.ID)),
		logger.String("driver_id", string(t.DriverID)),
		logger.String("route", t.Origin.String()+" -> "+t.Destination.String()))
}

// FindMatches returns copies, in insertion order, of every Pending trip with
// a free seat whose route matches both endpoints and whose departure lies
// within the time window. The gap is measured in whole minutes; a sub-minute
// remainder is ignored. No scoring: a trip is in or out.
func (r *Registry) FindMatches(riderOrigin, riderDestination location.Location, desiredTime time.Time) []*trip.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*trip.Trip
	for _, t := range r.trips {
		if t.Status != trip.StatusPending {
			continue
		}
		d := r.lookupUser(t.DriverID)
		if d == nil || d.Driver == nil || t.SeatsLeft(d.Driver.CarCapacity) < 1 {
			continue
		}
		if !location.Match(riderOrigin, t.Origin) || !location.Match(riderDestination, t.Destination) {
			continue
		}
		diff := desiredTime.Sub(t.DepartureTime)
		if diff < 0 {
			diff = -diff
		}
		if int(diff/time.Minute) <= MaxTimeDiffMinutes {
			matches = append(matches, t.Clone())
		}
	}
	r.log.Info("match query", logger.Int("matches", len(matches)))
	return matches
}

// AvailableTrips returns copies of every Pending trip with at least one free
// seat, regardless of route or time.
func (r *Registry) AvailableTrips() []*trip.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var available []*trip.Trip
	for _, t := range r.trips {
		if t.Status != trip.StatusPending {
			continue
		}
		d := r.lookupUser(t.DriverID)
		if d == nil || d.Driver == nil || t.SeatsLeft(d.Driver.CarCapacity) < 1 {
			continue
		}
		available = append(available, t.Clone())
	}
	return available
}

// UserByID returns a copy of the user; first match wins.
func (r *Registry) UserByID(id types.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.lookupUser(id); u != nil {
		return u.Clone(), nil
	}
	return nil, ErrNotFound
}

// TripByID returns a copy of the trip; first match wins.
func (r *Registry) TripByID(id types.ID) (*trip.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t := r.lookupTrip(id); t != nil {
		return t.Clone(), nil
	}
	return nil, ErrNotFound
}

func (r *Registry) AllUsers() []*user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*user.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out
}

func (r *Registry) AllTrips() []*trip.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*trip.Trip, len(r.trips))
	for i, t := range r.trips {
		out[i] = t.Clone()
	}
	return out
}

// AdmitRider resolves both parties and delegates to the trip state machine.
func (r *Registry) AdmitRider(tripID, riderID types.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.lookupTrip(tripID)
	if t == nil {
		return ErrNotFound
	}
	rider := r.lookupUser(riderID)
	if rider == nil {
		return ErrNotFound
	}
	d, err := r.driverFor(t)
	if err != nil {
		return err
	}
	if err := t.AdmitRider(d.Driver.CarCapacity, rider); err != nil {
		return err
	}
	r.log.Info("rider joined trip",
		logger.String("trip_id", string(t.ID)),
		logger.String("rider_id", string(rider.ID)),
		logger.Int("passengers", len(t.Passengers)))
	return nil
}

func (r *Registry) StartTrip(tripID types.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.lookupTrip(tripID)
	if t == nil {
		return ErrNotFound
	}
	if err := t.Start(); err != nil {
		return err
	}
	r.log.Info("trip started", logger.String("trip_id", string(t.ID)))
	return nil
}

func (r *Registry) CompleteTrip(tripID types.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.lookupTrip(tripID)
	if t == nil {
		return ErrNotFound
	}
	d, err := r.driverFor(t)
	if err != nil {
		return err
	}
	if err := t.Complete(d.Driver.CarCapacity); err != nil {
		return err
	}
	r.log.Info("trip completed",
		logger.String("trip_id", string(t.ID)),
		logger.Int("riders_settled", len(t.Passengers)))
	return nil
}

// TripFare computes the current per-person fare estimate for a trip.
func (r *Registry) TripFare(tripID types.ID) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := r.lookupTrip(tripID)
	if t == nil {
		return 0, ErrNotFound
	}
	d, err := r.driverFor(t)
	if err != nil {
		return 0, err
	}
	return t.FarePerPerson(d.Driver.CarCapacity), nil
}

// RateUser folds a score into a user's running rating.
func (r *Registry) RateUser(userID types.ID, score float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.lookupUser(userID)
	if u == nil {
		return ErrNotFound
	}
	return u.UpdateRating(score)
}

// lookupUser and lookupTrip scan in insertion order; first match wins.
// Callers must hold the mutex.
func (r *Registry) lookupUser(id types.ID) *user.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *Registry) lookupTrip(id types.ID) *trip.Trip {
	for _, t := range r.trips {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (r *Registry) driverFor(t *trip.Trip) (*user.User, error) {
	d := r.lookupUser(t.DriverID)
	if d == nil {
		return nil, ErrNotFound
	}
	if d.Driver == nil {
		return nil, ErrNotADriver
	}
	return d, nil
}
