// README: Registry registration, matching and reporting tests.
package registry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"ridelink/internal/modules/location"
	"ridelink/internal/modules/trip"
	"ridelink/internal/modules/user"
	"ridelink/internal/types"
	"ridelink/pkg/logger"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return New(logger.Nop())
}

func mustRegisterDriver(t *testing.T, r *Registry, id types.ID, capacity int) *user.User {
	t.Helper()
	d := user.NewDriver(id, "Driver "+string(id), "driver@example.com", 35, "M", user.DriverInfo{
		CarModel:       "Toyota Corolla",
		CarPlateNumber: "GR-1234-22",
		CarCapacity:    capacity,
	})
	if err := r.RegisterUser(d); err != nil {
		t.Fatalf("register driver %s: %v", id, err)
	}
	return d
}

func mustRegisterRider(t *testing.T, r *Registry, id types.ID) *user.User {
	t.Helper()
	rd := user.NewRider(id, "Rider "+string(id), "rider@example.com", 22, "F", "Mobile Money")
	if err := r.RegisterUser(rd); err != nil {
		t.Fatalf("register rider %s: %v", id, err)
	}
	return rd
}

func postTestTrip(r *Registry, id, driverID types.ID, departure time.Time) *trip.Trip {
	origin := location.New("Ashesi University", "Berekuso")
	dest := location.New("Accra Mall", "East Legon")
	tr := trip.New(id, driverID, origin, dest, departure)
	r.PostTrip(tr)
	return tr
}

func TestRegisterUserDuplicateID(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)

	dup := user.NewRider("DRV001", "Imposter", "x@example.com", 40, "M", "Cash")
	err := r.RegisterUser(dup)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	if len(r.AllUsers()) != 1 {
		t.Fatalf("duplicate registration mutated users: %d", len(r.AllUsers()))
	}
}

func TestFindMatchesTimeWindow(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	postTestTrip(r, "TRIP001", "DRV001", departure)

	// search endpoints share the areas but not the names
	origin := location.New("Berekuso Junction", "Berekuso")
	dest := location.New("Shoprite", "East Legon")

	within := departure.Add(20 * time.Minute) // 09:20, 20 min <= 30
	if got := r.FindMatches(origin, dest, within); len(got) != 1 {
		t.Fatalf("09:20 search: %d matches, want 1", len(got))
	}

	boundary := departure.Add(30 * time.Minute) // inclusive boundary
	if got := r.FindMatches(origin, dest, boundary); len(got) != 1 {
		t.Fatalf("09:30 search: %d matches, want 1", len(got))
	}

	outside := departure.Add(31 * time.Minute) // 09:31, 31 min > 30
	if got := r.FindMatches(origin, dest, outside); len(got) != 0 {
		t.Fatalf("09:31 search: %d matches, want 0", len(got))
	}

	// the gap counts whole minutes only, so 30m45s is still a 30 minute gap
	subMinute := departure.Add(30*time.Minute + 45*time.Second)
	if got := r.FindMatches(origin, dest, subMinute); len(got) != 1 {
		t.Fatalf("09:30:45 search: %d matches, want 1", len(got))
	}

	before := departure.Add(-25 * time.Minute) // window is symmetric
	if got := r.FindMatches(origin, dest, before); len(got) != 1 {
		t.Fatalf("08:35 search: %d matches, want 1", len(got))
	}
}

func TestFindMatchesRoutePredicate(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	postTestTrip(r, "TRIP001", "DRV001", departure)

	goodOrigin := location.New("Ashesi University", "Berekuso")
	goodDest := location.New("Accra Mall", "East Legon")
	wrongDest := location.New("Harbour", "Tema")

	// both endpoints must match; one is not enough
	if got := r.FindMatches(goodOrigin, wrongDest, departure); len(got) != 0 {
		t.Fatalf("wrong destination still matched: %d", len(got))
	}
	if got := r.FindMatches(goodOrigin, goodDest, departure); len(got) != 1 {
		t.Fatalf("exact route: %d matches, want 1", len(got))
	}
}

func TestFindMatchesSkipsNonPendingAndFull(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 2) // one passenger seat
	mustRegisterDriver(t, r, "DRV002", 5)
	mustRegisterRider(t, r, "RDR001")
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	full := postTestTrip(r, "TRIP001", "DRV001", departure)
	started := postTestTrip(r, "TRIP002", "DRV002", departure)
	open := postTestTrip(r, "TRIP003", "DRV002", departure)

	if err := r.AdmitRider(full.ID, "RDR001"); err != nil {
		t.Fatalf("fill TRIP001: %v", err)
	}
	if err := r.StartTrip(started.ID); err != nil {
		t.Fatalf("start TRIP002: %v", err)
	}

	got := r.FindMatches(open.Origin, open.Destination, departure)
	if len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("matches = %v, want just TRIP003", got)
	}
}

func TestFindMatchesInsertionOrder(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		postTestTrip(r, types.ID(fmt.Sprintf("TRIP%03d", i)), "DRV001", departure)
	}

	origin := location.New("Ashesi University", "Berekuso")
	dest := location.New("Accra Mall", "East Legon")
	got := r.FindMatches(origin, dest, departure)
	if len(got) != 3 {
		t.Fatalf("matches = %d, want 3", len(got))
	}
	for i, tr := range got {
		want := types.ID(fmt.Sprintf("TRIP%03d", i+1))
		if tr.ID != want {
			t.Fatalf("match %d = %s, want %s (insertion order)", i, tr.ID, want)
		}
	}
}

func TestAvailableTripsExcludesFullTrip(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 4) // 3 passenger seats
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	tr := postTestTrip(r, "TRIP001", "DRV001", departure)

	for i := 1; i <= 3; i++ {
		id := types.ID(fmt.Sprintf("RDR%03d", i))
		mustRegisterRider(t, r, id)
		if err := r.AdmitRider(tr.ID, id); err != nil {
			t.Fatalf("admit %s: %v", id, err)
		}
	}

	if got := r.AvailableTrips(); len(got) != 0 {
		t.Fatalf("full trip listed as available: %d", len(got))
	}

	mustRegisterRider(t, r, "RDR004")
	err := r.AdmitRider(tr.ID, "RDR004")
	if !errors.Is(err, trip.ErrTripFull) {
		t.Fatalf("err = %v, want ErrTripFull", err)
	}
}

func TestAdmitRiderResolution(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	mustRegisterRider(t, r, "RDR001")
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	tr := postTestTrip(r, "TRIP001", "DRV001", departure)

	if err := r.AdmitRider("TRIP999", "RDR001"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown trip: err = %v, want ErrNotFound", err)
	}
	if err := r.AdmitRider(tr.ID, "RDR999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown rider: err = %v, want ErrNotFound", err)
	}

	// a trip whose driver record is a rider cannot resolve a capacity
	ghost := trip.New("TRIP002", "RDR001", tr.Origin, tr.Destination, departure)
	r.PostTrip(ghost)
	if err := r.AdmitRider(ghost.ID, "RDR001"); !errors.Is(err, ErrNotADriver) {
		t.Fatalf("rider-owned trip: err = %v, want ErrNotADriver", err)
	}
}

func TestCompleteTripSettlesThroughRegistry(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	rider := mustRegisterRider(t, r, "RDR001")
	other := mustRegisterRider(t, r, "RDR002")
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	tr := postTestTrip(r, "TRIP001", "DRV001", departure)

	for _, id := range []types.ID{"RDR001", "RDR002"} {
		if err := r.AdmitRider(tr.ID, id); err != nil {
			t.Fatalf("admit %s: %v", id, err)
		}
	}

	fare, err := r.TripFare(tr.ID)
	if err != nil {
		t.Fatalf("fare: %v", err)
	}
	if fare != 20.0 {
		t.Fatalf("fare = %v, want 20.00", fare)
	}

	if err := r.StartTrip(tr.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.CompleteTrip(tr.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	for _, u := range []*user.User{rider, other} {
		if u.Rider.TotalMoneySaved != 20.0 {
			t.Fatalf("%s saved %v, want 20.00", u.ID, u.Rider.TotalMoneySaved)
		}
	}

	rep := r.Report()
	if rep.CompletedTrips != 1 || rep.TotalMoneySaved != 40.0 {
		t.Fatalf("report = %+v, want 1 completed trip and 40.00 saved", rep)
	}
}

func TestReportCounts(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	mustRegisterDriver(t, r, "DRV002", 4)
	mustRegisterRider(t, r, "RDR003")
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	postTestTrip(r, "TRIP001", "DRV001", departure)
	active := postTestTrip(r, "TRIP002", "DRV002", departure)
	if err := r.StartTrip(active.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	rep := r.Report()
	if rep.TotalUsers != 3 || rep.Drivers != 2 || rep.Riders != 1 {
		t.Fatalf("user counts wrong: %+v", rep)
	}
	if rep.TotalTrips != 2 || rep.PendingTrips != 1 || rep.ActiveTrips != 1 || rep.CompletedTrips != 0 {
		t.Fatalf("trip counts wrong: %+v", rep)
	}
}

func TestRateUserThroughRegistry(t *testing.T) {
	r := newTestRegistry(t)
	d := mustRegisterDriver(t, r, "DRV001", 5)

	if err := r.RateUser("DRV001", 4.0); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if d.Rating != 4.0 || d.RatingCount != 1 {
		t.Fatalf("rating = %v/%d, want 4.0/1", d.Rating, d.RatingCount)
	}

	if err := r.RateUser("DRV001", 6.0); !errors.Is(err, user.ErrInvalidRating) {
		t.Fatalf("err = %v, want ErrInvalidRating", err)
	}
	if err := r.RateUser("DRV999", 4.0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRegisterUserAssignsIDWhenEmpty(t *testing.T) {
	r := newTestRegistry(t)

	d := user.NewDriver("", "Kofi", "k@example.com", 34, "M", user.DriverInfo{CarCapacity: 5})
	if err := r.RegisterUser(d); err != nil {
		t.Fatalf("register driver: %v", err)
	}
	if d.ID != "DRV001" {
		t.Fatalf("driver id = %s, want DRV001", d.ID)
	}

	rd := user.NewRider("", "Ama", "a@example.com", 22, "F", "Cash")
	if err := r.RegisterUser(rd); err != nil {
		t.Fatalf("register rider: %v", err)
	}
	if rd.ID != "RDR002" {
		t.Fatalf("rider id = %s, want RDR002", rd.ID)
	}

	tr := trip.New("", "DRV001",
		location.New("Ashesi University", "Berekuso"),
		location.New("Accra Mall", "East Legon"),
		time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC))
	r.PostTrip(tr)
	if tr.ID != "TRIP001" {
		t.Fatalf("trip id = %s, want TRIP001", tr.ID)
	}
}

func TestReadsReturnDetachedCopies(t *testing.T) {
	r := newTestRegistry(t)
	mustRegisterDriver(t, r, "DRV001", 5)
	mustRegisterRider(t, r, "RDR001")
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	tr := postTestTrip(r, "TRIP001", "DRV001", departure)

	tripSnap, err := r.TripByID(tr.ID)
	if err != nil {
		t.Fatalf("trip: %v", err)
	}
	userSnap, err := r.UserByID("RDR001")
	if err != nil {
		t.Fatalf("user: %v", err)
	}

	if err := r.AdmitRider(tr.ID, "RDR001"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := r.RateUser("RDR001", 3.0); err != nil {
		t.Fatalf("rate: %v", err)
	}

	if len(tripSnap.Passengers) != 0 {
		t.Fatalf("earlier trip copy gained passengers: %d", len(tripSnap.Passengers))
	}
	if userSnap.Rating != 5.0 || userSnap.RatingCount != 0 {
		t.Fatalf("earlier user copy changed: %v/%d", userSnap.Rating, userSnap.RatingCount)
	}

	fresh, err := r.TripByID(tr.ID)
	if err != nil {
		t.Fatalf("re-fetch trip: %v", err)
	}
	if len(fresh.Passengers) != 1 {
		t.Fatalf("fresh copy passengers = %d, want 1", len(fresh.Passengers))
	}
}

func TestIDSequences(t *testing.T) {
	r := newTestRegistry(t)

	if got := r.NextUserID(user.RoleDriver); got != "DRV001" {
		t.Fatalf("first driver id = %s, want DRV001", got)
	}
	mustRegisterDriver(t, r, r.NextUserID(user.RoleDriver), 5)
	if got := r.NextUserID(user.RoleRider); got != "RDR002" {
		t.Fatalf("second user id = %s, want RDR002", got)
	}

	if got := r.NextTripID(); got != "TRIP001" {
		t.Fatalf("first trip id = %s, want TRIP001", got)
	}
	postTestTrip(r, r.NextTripID(), "DRV001", time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC))
	if got := r.NextTripID(); got != "TRIP002" {
		t.Fatalf("second trip id = %s, want TRIP002", got)
	}
}
