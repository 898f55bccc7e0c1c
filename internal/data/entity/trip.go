package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusPending   TripStatus = "PENDING"
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusPending: {TripStatusOngoing, TripStatusCancelled},
	TripStatusOngoing: {TripStatusCompleted, TripStatusCancelled},
}

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusPending, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Tourism amenities a trip may advertise.
const (
	FeatureLunch         = "lunch"
	FeaturePhotographing = "photographing"
	FeatureSunsetView    = "sunsetView"
	FeatureTourGuide     = "tourGuide"
	FeatureCulturalVisit = "culturalVisit"
)

var knownFeatures = map[string]struct{}{
	FeatureLunch:         {},
	FeaturePhotographing: {},
	FeatureSunsetView:    {},
	FeatureTourGuide:     {},
	FeatureCulturalVisit: {},
}

type TourismFeatures map[string]bool

// Unknown returns the keys that are not recognised amenities, sorted.
func (f TourismFeatures) Unknown() []string {
	var out []string
	for k := range f {
		if _, ok := knownFeatures[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

type Trip struct {
	BaseNoDelete
	UserID          uuid.UUID       `db:"user_id"`
	Origin          string          `db:"origin"`
	Destination     string          `db:"destination"`
	Date            time.Time       `db:"trip_date"`
	Time            string          `db:"trip_time"`
	Price           float64         `db:"price"`
	TotalSeats      int             `db:"total_seats"`
	AvailableSeats  int             `db:"available_seats"`
	Status          TripStatus      `db:"status"`
	IsTourism       bool            `db:"is_tourism"`
	TourismFeatures TourismFeatures `db:"tourism_features"`
	IsDeleted       bool            `db:"is_deleted"`
}

// Bookable reports whether travelers may open new bookings on the trip.
func (t *Trip) Bookable() bool {
	return t != nil && !t.IsDeleted && t.Status == TripStatusPending
}

func (t *Trip) IsOwnedBy(userID uuid.UUID) bool {
	return t != nil && t.UserID == userID
}
