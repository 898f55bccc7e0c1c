package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired},
	BookingStatusConfirmed: {BookingStatusCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired:
		return true
	}
	return false
}

// IsActive reports whether the booking still counts against the one-booking-per-trip rule.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

const PaymentMethodEVCPlus = "evcplus"

type Booking struct {
	ID              uuid.UUID     `db:"id"`
	TripID          uuid.UUID     `db:"trip_id"`
	UserID          uuid.UUID     `db:"user_id"`
	SeatsBooked     int           `db:"seats_booked"`
	Status          BookingStatus `db:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	PaymentVerified bool          `db:"payment_verified"`
	PaymentMethod   *string       `db:"payment_method"`
	TransactionID   *string       `db:"transaction_id"`
	AmountPaid      float64       `db:"amount_paid"`
	BookingTime     time.Time     `db:"booking_time"`
	ConfirmedAt     *time.Time    `db:"confirmed_at"`
	IsDeleted       bool          `db:"is_deleted"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// PaymentDetails is what a confirmation records on the booking.
type PaymentDetails struct {
	TransactionID string
	Method        string
	ConfirmedAt   time.Time
}

type TripSummary struct {
	ID          uuid.UUID  `db:"trip_id"`
	OwnerID     uuid.UUID  `db:"owner_id"`
	Origin      string     `db:"origin"`
	Destination string     `db:"destination"`
	Date        time.Time  `db:"trip_date"`
	Time        string     `db:"trip_time"`
	Price       float64    `db:"price"`
	Status      TripStatus `db:"trip_status"`
}

type TravelerSummary struct {
	ID    uuid.UUID `db:"user_id"`
	Name  string    `db:"name"`
	Phone string    `db:"phone"`
}

// BookingWithTrip is a booking joined with its trip and, for owner and admin
// views, the traveler.
type BookingWithTrip struct {
	Booking
	Trip     TripSummary
	Traveler TravelerSummary
}

type OwnerEarnings struct {
	TotalEarnings float64 `db:"total_earnings"`
	TotalBookings int64   `db:"total_bookings"`
}
