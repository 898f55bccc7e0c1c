package repository

import (
	"testing"
	"time"

	"trip-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var bookingCols = []string{
	"id", "trip_id", "user_id", "seats_booked", "status", "payment_status", "payment_verified",
	"payment_method", "transaction_id", "amount_paid", "booking_time", "confirmed_at", "is_deleted", "updated_at",
}

var detailCols = append(append([]string{}, bookingCols...),
	"trip_id", "owner_id", "origin", "destination", "trip_date", "trip_time", "price", "trip_status",
	"name", "phone",
)

var tripCols = []string{
	"id", "user_id", "origin", "destination", "trip_date", "trip_time", "price", "total_seats", "available_seats",
	"status", "is_tourism", "tourism_features", "is_deleted", "created_at", "updated_at",
}

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func testRepository(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := newMockDB(t)
	return NewRepository(mock, zaptest.NewLogger(t)), mock
}

func bookingValues(b *entity.Booking) []any {
	return []any{
		b.ID, b.TripID, b.UserID, b.SeatsBooked, b.Status, b.PaymentStatus, b.PaymentVerified,
		b.PaymentMethod, b.TransactionID, b.AmountPaid, b.BookingTime, b.ConfirmedAt, b.IsDeleted, b.UpdatedAt,
	}
}

func bookingRows(bookings ...*entity.Booking) *pgxmock.Rows {
	rows := pgxmock.NewRows(bookingCols)
	for _, b := range bookings {
		rows.AddRow(bookingValues(b)...)
	}
	return rows
}

func detailRows(details ...*entity.BookingWithTrip) *pgxmock.Rows {
	rows := pgxmock.NewRows(detailCols)
	for _, d := range details {
		values := append(bookingValues(&d.Booking),
			d.Trip.ID, d.Trip.OwnerID, d.Trip.Origin, d.Trip.Destination, d.Trip.Date, d.Trip.Time,
			d.Trip.Price, d.Trip.Status, d.Traveler.Name, d.Traveler.Phone,
		)
		rows.AddRow(values...)
	}
	return rows
}

func tripRows(trips ...*entity.Trip) *pgxmock.Rows {
	rows := pgxmock.NewRows(tripCols)
	for _, t := range trips {
		rows.AddRow(
			t.ID, t.UserID, t.Origin, t.Destination, t.Date, t.Time, t.Price, t.TotalSeats, t.AvailableSeats,
			t.Status, t.IsTourism, t.TourismFeatures, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
		)
	}
	return rows
}

func pendingBooking(seats int) *entity.Booking {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &entity.Booking{
		ID:            uuid.New(),
		TripID:        uuid.New(),
		UserID:        uuid.New(),
		SeatsBooked:   seats,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
		PaymentMethod: (*string)(nil),
		TransactionID: (*string)(nil),
		BookingTime:   now,
		ConfirmedAt:   (*time.Time)(nil),
		UpdatedAt:     now,
	}
}

func sampleTrip(total, available int) *entity.Trip {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &entity.Trip{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          uuid.New(),
		Origin:          "Mogadishu",
		Destination:     "Kismayo",
		Date:            time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Time:            "08:30",
		Price:           25,
		TotalSeats:      total,
		AvailableSeats:  available,
		Status:          entity.TripStatusPending,
		TourismFeatures: entity.TourismFeatures{entity.FeatureLunch: true},
	}
}
