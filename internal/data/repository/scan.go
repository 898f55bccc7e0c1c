package repository

import (
	"trip-booking/internal/data/entity"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const bookingColumns = `id, trip_id, user_id, seats_booked, status, payment_status, payment_verified,
		payment_method, transaction_id, amount_paid, booking_time, confirmed_at, is_deleted, updated_at`

// same columns, qualified with the "b" alias
const bookingColumnsB = `b.id, b.trip_id, b.user_id, b.seats_booked, b.status, b.payment_status, b.payment_verified,
		b.payment_method, b.transaction_id, b.amount_paid, b.booking_time, b.confirmed_at, b.is_deleted, b.updated_at`

const bookingDetailColumns = bookingColumnsB + `,
		t.id, t.user_id, t.origin, t.destination, t.trip_date, t.trip_time, t.price, t.status,
		COALESCE(u.name, ''), COALESCE(u.phone, '')`

const tripColumns = `id, user_id, origin, destination, trip_date, trip_time, price, total_seats, available_seats,
		status, is_tourism, tourism_features, is_deleted, created_at, updated_at`

func bookingDest(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.TripID,
		&b.UserID,
		&b.SeatsBooked,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentVerified,
		&b.PaymentMethod,
		&b.TransactionID,
		&b.AmountPaid,
		&b.BookingTime,
		&b.ConfirmedAt,
		&b.IsDeleted,
		&b.UpdatedAt,
	}
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	if err := row.Scan(bookingDest(&b)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookingDetail(row rowScanner) (*entity.BookingWithTrip, error) {
	var d entity.BookingWithTrip
	dest := append(bookingDest(&d.Booking),
		&d.Trip.ID,
		&d.Trip.OwnerID,
		&d.Trip.Origin,
		&d.Trip.Destination,
		&d.Trip.Date,
		&d.Trip.Time,
		&d.Trip.Price,
		&d.Trip.Status,
		&d.Traveler.Name,
		&d.Traveler.Phone,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	d.Traveler.ID = d.UserID
	return &d, nil
}

func scanTrip(row rowScanner) (*entity.Trip, error) {
	var t entity.Trip
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Origin,
		&t.Destination,
		&t.Date,
		&t.Time,
		&t.Price,
		&t.TotalSeats,
		&t.AvailableSeats,
		&t.Status,
		&t.IsTourism,
		&t.TourismFeatures,
		&t.IsDeleted,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.TourismFeatures == nil {
		t.TourismFeatures = entity.TourismFeatures{}
	}
	return &t, nil
}
