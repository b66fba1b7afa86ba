// README: Flat tabular records for the import/export boundary, plus registry conversions.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridelink/internal/modules/location"
	"ridelink/internal/modules/registry"
	"ridelink/internal/modules/trip"
	"ridelink/internal/modules/user"
	"ridelink/internal/types"
)

// TimeLayout is the departure-time format used in trip records.
const TimeLayout = "2006-01-02 15:04"

var (
	ErrUnknownRole   = errors.New("unknown user role in record")
	ErrUnknownStatus = errors.New("unknown trip status in record")
)

// UserRecord is one row per user; role-irrelevant columns stay zero-valued.
type UserRecord struct {
	ID          string
	Role        string
	Name        string
	ContactInfo string
	Age         int
	Gender      string
	Rating      float64
	RatingCount int

	// driver columns
	CarModel        string
	CarPlate        string
	CarCapacity     int
	YearsExperience int

	// rider columns
	PaymentMethod    string
	MoneySaved       float64
	DistanceCommuted float64
}

// TripRecord is one row per trip. It records the passenger count but not the
// membership itself, so restored trips always start with zero passengers.
type TripRecord struct {
	TripID         string
	DriverID       string
	OriginName     string
	OriginArea     string
	DestName       string
	DestArea       string
	DepartureTime  string // TimeLayout
	Status         string
	PassengerCount int
}

// Store moves whole record sets across the persistence boundary. A load from
// an empty or absent source yields empty slices, not an error.
type Store interface {
	SaveUsers(ctx context.Context, records []UserRecord) error
	LoadUsers(ctx context.Context) ([]UserRecord, error)
	SaveTrips(ctx context.Context, records []TripRecord) error
	LoadTrips(ctx context.Context) ([]TripRecord, error)
}

func userToRecord(u *user.User) UserRecord {
	rec := UserRecord{
		ID:          string(u.ID),
		Role:        string(u.Role),
		Name:        u.Name,
		ContactInfo: u.ContactInfo,
		Age:         u.Age,
		Gender:      u.Gender,
		Rating:      u.Rating,
		RatingCount: u.RatingCount,
	}
	if u.Driver != nil {
		rec.CarModel = u.Driver.CarModel
		rec.CarPlate = u.Driver.CarPlateNumber
		rec.CarCapacity = u.Driver.CarCapacity
		rec.YearsExperience = u.Driver.YearsExperience
	}
	if u.Rider != nil {
		rec.PaymentMethod = u.Rider.PreferredPaymentMethod
		rec.MoneySaved = u.Rider.TotalMoneySaved
		rec.DistanceCommuted = u.Rider.TotalDistanceCommuted
	}
	return rec
}

func recordToUser(rec UserRecord) (*user.User, error) {
	switch user.Role(rec.Role) {
	case user.RoleDriver:
		u := user.NewDriver(types.ID(rec.ID), rec.Name, rec.ContactInfo, rec.Age, rec.Gender, user.DriverInfo{
			CarModel:        rec.CarModel,
			CarPlateNumber:  rec.CarPlate,
			CarCapacity:     rec.CarCapacity,
			YearsExperience: rec.YearsExperience,
		})
		u.Rating = rec.Rating
		u.RatingCount = rec.RatingCount
		return u, nil
	case user.RoleRider:
		u := user.NewRider(types.ID(rec.ID), rec.Name, rec.ContactInfo, rec.Age, rec.Gender, rec.PaymentMethod)
		u.Rating = rec.Rating
		u.RatingCount = rec.RatingCount
		u.Rider.UpdateSavings(rec.MoneySaved)
		u.Rider.AddDistanceCommuted(rec.DistanceCommuted)
		return u, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, rec.Role)
	}
}

func tripToRecord(t *trip.Trip) TripRecord {
	return TripRecord{
		TripID:         string(t.ID),
		DriverID:       string(t.DriverID),
		OriginName:     t.Origin.Name,
		OriginArea:     t.Origin.Area,
		DestName:       t.Destination.Name,
		DestArea:       t.Destination.Area,
		DepartureTime:  t.DepartureTime.Format(TimeLayout),
		Status:         string(t.Status),
		PassengerCount: len(t.Passengers),
	}
}

func recordToTrip(rec TripRecord) (*trip.Trip, error) {
	departure, err := time.Parse(TimeLayout, rec.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("parse departure time %q: %w", rec.DepartureTime, err)
	}
	status := trip.Status(rec.Status)
	switch status {
	case trip.StatusPending, trip.StatusActive, trip.StatusCompleted:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, rec.Status)
	}

	t := trip.New(
		types.ID(rec.TripID),
		types.ID(rec.DriverID),
		location.New(rec.OriginName, rec.OriginArea),
		location.New(rec.DestName, rec.DestArea),
		departure,
	)
	t.Status = status
	return t, nil
}

// Save exports the whole registry through the store.
func Save(ctx context.Context, st Store, reg *registry.Registry) error {
	users := reg.AllUsers()
	userRecs := make([]UserRecord, 0, len(users))
	for _, u := range users {
		userRecs = append(userRecs, userToRecord(u))
	}
	if err := st.SaveUsers(ctx, userRecs); err != nil {
		return err
	}

	trips := reg.AllTrips()
	tripRecs := make([]TripRecord, 0, len(trips))
	for _, t := range trips {
		tripRecs = append(tripRecs, tripToRecord(t))
	}
	return st.SaveTrips(ctx, tripRecs)
}

// Load restores records into the registry. Users come first so that trips can
// resolve their drivers; trips referencing an unknown driver are dropped.
func Load(ctx context.Context, st Store, reg *registry.Registry) error {
	userRecs, err := st.LoadUsers(ctx)
	if err != nil {
		return err
	}
	for _, rec := range userRecs {
		u, err := recordToUser(rec)
		if err != nil {
			return err
		}
		if err := reg.RegisterUser(u); err != nil {
			return err
		}
	}

	tripRecs, err := st.LoadTrips(ctx)
	if err != nil {
		return err
	}
	for _, rec := range tripRecs {
		t, err := recordToTrip(rec)
		if err != nil {
			return err
		}
		d, err := reg.UserByID(t.DriverID)
		if err != nil || d.Driver == nil {
			continue
		}
		reg.PostTrip(t)
	}
	return nil
}
