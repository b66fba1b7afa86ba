// README: User identity record with Driver/Rider payload variants and rating logic.
package user

import (
	"errors"

	"ridelink/internal/types"
)

type Role string

const (
	RoleDriver Role = "Driver"
	RoleRider  Role = "Rider"
)

// Every user starts with a perfect score and no submissions.
const (
	DefaultRating = 5.0
	MinRating     = 0.0
	MaxRating     = 5.0
)

var ErrInvalidRating = errors.New("rating must be between 0.0 and 5.0")

// DriverInfo is the Driver-only payload.
type DriverInfo struct {
	CarModel        string
	CarPlateNumber  string
	CarCapacity     int // seats including the driver's own
	YearsExperience int
}

// RiderInfo is the Rider-only payload. The two totals only ever grow.
type RiderInfo struct {
	PreferredPaymentMethod string
	TotalMoneySaved        float64
	TotalDistanceCommuted  float64
}

// User is a tagged variant: exactly one of Driver/Rider is non-nil,
// matching Role.
type User struct {
	ID          types.ID
	Role        Role
	Name        string
	ContactInfo string
	Age         int
	Gender      string
	Rating      float64
	RatingCount int

	Driver *DriverInfo
	Rider  *RiderInfo
}

func NewDriver(id types.ID, name, contactInfo string, age int, gender string, info DriverInfo) *User {
	u := newUser(id, RoleDriver, name, contactInfo, age, gender)
	u.Driver = &info
	return u
}

func NewRider(id types.ID, name, contactInfo string, age int, gender, preferredPaymentMethod string) *User {
	u := newUser(id, RoleRider, name, contactInfo, age, gender)
	u.Rider = &RiderInfo{PreferredPaymentMethod: preferredPaymentMethod}
	return u
}

func newUser(id types.ID, role Role, name, contactInfo string, age int, gender string) *User {
	return &User{
		ID:          id,
		Role:        role,
		Name:        name,
		ContactInfo: contactInfo,
		Age:         age,
		Gender:      gender,
		Rating:      DefaultRating,
		RatingCount: 0,
	}
}

// Clone returns a deep copy with its own payload, detached from any
// mutation of the original.
func (u *User) Clone() *User {
	out := *u
	if u.Driver != nil {
		d := *u.Driver
		out.Driver = &d
	}
	if u.Rider != nil {
		ri := *u.Rider
		out.Rider = &ri
	}
	return &out
}

// UpdateRating folds a new score into the running mean, weighted by the
// pre-update count. Out-of-range scores leave rating and count untouched.
func (u *User) UpdateRating(score float64) error {
	if score < MinRating || score > MaxRating {
		return ErrInvalidRating
	}
	u.Rating = (u.Rating*float64(u.RatingCount) + score) / float64(u.RatingCount+1)
	u.RatingCount++
	return nil
}

// UpdateSavings accrues money saved; non-positive amounts are dropped silently.
func (r *RiderInfo) UpdateSavings(amount float64) {
	if amount > 0 {
		r.TotalMoneySaved += amount
	}
}

// AddDistanceCommuted accrues distance; non-positive distances are dropped silently.
func (r *RiderInfo) AddDistanceCommuted(distance float64) {
	if distance > 0 {
		r.TotalDistanceCommuted += distance
	}
}
