package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts pending booking", func(t *testing.T) {
		repo, mock := testRepository(t)
		b := pendingBooking(2)

		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(b.ID, b.TripID, b.UserID, 2, entity.BookingStatusPending, entity.PaymentStatusUnpaid,
				false, 0.0, b.BookingTime, b.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Booking.Create(ctx, b))
	})

	t.Run("active duplicate is a conflict", func(t *testing.T) {
		repo, mock := testRepository(t)
		b := pendingBooking(1)

		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: sqlStateUniqueViolation, ConstraintName: constraintActiveBooking})

		err := repo.Booking.Create(ctx, b)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, MsgAlreadyBooked, apperr.As(err).Message)
	})

	t.Run("other unique violations are not conflicts", func(t *testing.T) {
		repo, mock := testRepository(t)
		b := pendingBooking(1)

		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: sqlStateUniqueViolation, ConstraintName: "bookings_pkey"})

		err := repo.Booking.Create(ctx, b)
		require.Error(t, err)
		assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	})
}

func TestBookingFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := testRepository(t)
		b := pendingBooking(3)

		mock.ExpectQuery(`FROM bookings`).WithArgs(b.ID).WillReturnRows(bookingRows(b))

		got, err := repo.Booking.FindByID(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, b.TripID, got.TripID)
		assert.Equal(t, 3, got.SeatsBooked)
		assert.Nil(t, got.TransactionID)
	})

	t.Run("not found returns nil", func(t *testing.T) {
		repo, mock := testRepository(t)
		id := uuid.New()

		mock.ExpectQuery(`FROM bookings`).WithArgs(id).WillReturnRows(pgxmock.NewRows(bookingCols))

		got, err := repo.Booking.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := testRepository(t)
		id := uuid.New()

		mock.ExpectQuery(`FROM bookings`).WithArgs(id).WillReturnError(errors.New("timeout"))

		_, err := repo.Booking.FindByID(ctx, id)
		assert.Error(t, err)
	})
}

func TestBookingFindByOwnerID(t *testing.T) {
	repo, mock := testRepository(t)
	owner := uuid.New()

	paid := confirmedCopy(pendingBooking(2), 30, "EVC-9")
	detail := &entity.BookingWithTrip{
		Booking: *paid,
		Trip: entity.TripSummary{
			ID:          paid.TripID,
			OwnerID:     owner,
			Origin:      "Hargeisa",
			Destination: "Berbera",
			Date:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			Time:        "07:00",
			Price:       30,
			Status:      entity.TripStatusPending,
		},
		Traveler: entity.TravelerSummary{Name: "Amina", Phone: "+252610000000"},
	}

	mock.ExpectQuery(`WHERE t.user_id = \$1`).WithArgs(owner).WillReturnRows(detailRows(detail))

	got, err := repo.Booking.FindByOwnerID(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Hargeisa", got[0].Trip.Origin)
	assert.Equal(t, "Amina", got[0].Traveler.Name)
	assert.Equal(t, paid.UserID, got[0].Traveler.ID)
	assert.Equal(t, 60.0, got[0].AmountPaid)
}

func TestBookingSumOwnerEarnings(t *testing.T) {
	repo, mock := testRepository(t)
	owner := uuid.New()

	mock.ExpectQuery(`SUM\(b.amount_paid\)`).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"total_earnings", "total_bookings"}).AddRow(175.5, int64(4)))

	got, err := repo.Booking.SumOwnerEarnings(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 175.5, got.TotalEarnings)
	assert.Equal(t, int64(4), got.TotalBookings)
}

func TestBookingUpdateSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking updated", func(t *testing.T) {
		repo, mock := testRepository(t)
		b := pendingBooking(1)
		updated := *b
		updated.SeatsBooked = 3

		mock.ExpectQuery(`SET seats_booked = \$2`).WithArgs(b.ID, 3).WillReturnRows(bookingRows(&updated))

		got, err := repo.Booking.UpdateSeats(ctx, b.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got.SeatsBooked)
	})

	t.Run("no longer pending", func(t *testing.T) {
		repo, mock := testRepository(t)
		id := uuid.New()

		mock.ExpectQuery(`SET seats_booked = \$2`).WithArgs(id, 3).WillReturnRows(pgxmock.NewRows(bookingCols))

		got, err := repo.Booking.UpdateSeats(ctx, id, 3)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestBookingExpirePending(t *testing.T) {
	repo, mock := testRepository(t)
	cutoff := time.Now().Add(-24 * time.Hour)

	a := pendingBooking(1)
	a.Status = entity.BookingStatusExpired
	b := pendingBooking(2)
	b.Status = entity.BookingStatusExpired

	mock.ExpectQuery(`SET status = 'EXPIRED'`).WithArgs(cutoff).WillReturnRows(bookingRows(a, b))

	got, err := repo.Booking.ExpirePending(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.BookingStatusExpired, got[1].Status)
}

func TestBookingFindByUserIDPaginates(t *testing.T) {
	repo, mock := testRepository(t)
	user := uuid.New()

	mock.ExpectQuery(`ORDER BY b.booking_time DESC`).
		WithArgs(user, 10, 20).
		WillReturnRows(pgxmock.NewRows(detailCols))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(user).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(20)))

	got, err := repo.Booking.FindByUserID(context.Background(), user, 10, 20)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	total, err := repo.Booking.CountByUserID(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)
}
