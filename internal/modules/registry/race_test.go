// README: Concurrency tests for registry access (run with -race).
package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"ridelink/internal/modules/user"
	"ridelink/internal/types"
	"ridelink/pkg/logger"
)

func TestConcurrentJoinVsRead(t *testing.T) {
	r := New(logger.Nop())
	mustRegisterDriver(t, r, "DRV001", 40)
	departure := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	tr := postTestTrip(r, "TRIP001", "DRV001", departure)

	const riders = 16
	for i := 1; i <= riders; i++ {
		mustRegisterRider(t, r, types.ID(fmt.Sprintf("RDR%03d", i)))
	}

	var wg sync.WaitGroup
	for i := 1; i <= riders; i++ {
		riderID := types.ID(fmt.Sprintf("RDR%03d", i))

		wg.Add(1)
		go func(id types.ID) {
			defer wg.Done()
			if err := r.AdmitRider(tr.ID, id); err != nil {
				t.Errorf("admit %s: %v", id, err)
			}
		}(riderID)

		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.TripByID(tr.ID)
			if err != nil {
				t.Errorf("get trip: %v", err)
				return
			}
			for _, p := range got.Passengers {
				_ = p.ID
			}
		}()
	}
	wg.Wait()

	final, err := r.TripByID(tr.ID)
	if err != nil {
		t.Fatalf("final get: %v", err)
	}
	if len(final.Passengers) != riders {
		t.Fatalf("passengers = %d, want %d", len(final.Passengers), riders)
	}
}

func TestConcurrentRegistrationMintsUniqueIDs(t *testing.T) {
	r := New(logger.Nop())

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.RegisterUser(user.NewRider("", "Rider", "rider@example.com", 22, "F", "Cash"))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	seen := map[types.ID]bool{}
	for _, u := range r.AllUsers() {
		if seen[u.ID] {
			t.Fatalf("duplicate generated id %s", u.ID)
		}
		seen[u.ID] = true
	}
	if len(seen) != attempts {
		t.Fatalf("users = %d, want %d", len(seen), attempts)
	}
}
