// Package event publishes booking lifecycle events for downstream consumers
// (notifications, analytics) so they never have to query the booking tables.
package event

import (
	"context"
	"time"

	"trip-booking/internal/data/entity"
)

type Type string

const (
	TypeBookingConfirmed Type = "booking.confirmed"
	TypeBookingCancelled Type = "booking.cancelled"
	TypeBookingExpired   Type = "booking.expired"
)

type BookingEvent struct {
	Type          Type      `json:"type"`
	BookingID     string    `json:"bookingId"`
	TripID        string    `json:"tripId"`
	UserID        string    `json:"userId"`
	SeatsBooked   int       `json:"seatsBooked"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	AmountPaid    float64   `json:"amountPaid"`
	TransactionID string    `json:"transactionId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewBookingEvent(t Type, b *entity.Booking, at time.Time) BookingEvent {
	ev := BookingEvent{
		Type:          t,
		BookingID:     b.ID.String(),
		TripID:        b.TripID.String(),
		UserID:        b.UserID.String(),
		SeatsBooked:   b.SeatsBooked,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		AmountPaid:    b.AmountPaid,
		OccurredAt:    at.UTC(),
	}
	if b.TransactionID != nil {
		ev.TransactionID = *b.TransactionID
	}
	return ev
}

type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
