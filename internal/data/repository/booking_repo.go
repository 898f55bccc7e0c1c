package repository

import (
	"context"
	"fmt"
	"time"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MsgAlreadyBooked is returned when the traveler already holds an active booking on the trip.
const MsgAlreadyBooked = "You already booked this trip"

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingWithTrip, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithTrip, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingWithTrip, error)
	CountAll(ctx context.Context) (int64, error)

	// Business queries
	FindActiveByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*entity.Booking, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.BookingWithTrip, error)
	SumOwnerEarnings(ctx context.Context, ownerID uuid.UUID) (*entity.OwnerEarnings, error)
	UpdateSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Booking, error)
	ExpirePending(ctx context.Context, olderThan time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// Create inserts a PENDING booking. The partial unique index on (trip_id, user_id)
// is the final word on duplicates: a violation comes back as a Conflict.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, trip_id, user_id, seats_booked, status, payment_status, payment_verified,
		                      amount_paid, booking_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TripID,
		booking.UserID,
		booking.SeatsBooked,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentVerified,
		booking.AmountPaid,
		booking.BookingTime,
		booking.UpdatedAt,
	)

	if violates(err, sqlStateUniqueViolation, constraintActiveBooking) {
		r.log.Warn("Duplicate active booking rejected",
			zap.String("trip_id", booking.TripID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return apperr.Wrap(apperr.Conflict, MsgAlreadyBooked, err)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("trip_id", booking.TripID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking for trip %s: %w", booking.TripID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1 AND NOT is_deleted
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingWithTrip, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = $1 AND NOT b.is_deleted
	`

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking detail",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking detail %s: %w", id.String(), err)
	}

	return detail, nil
}

// FindByUserID lists a traveler's bookings, newest first, hiding deleted
// bookings and bookings on deleted trips.
func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithTrip, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1 AND NOT b.is_deleted AND NOT t.is_deleted
		ORDER BY b.booking_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.collectDetails(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE b.user_id = $1 AND NOT b.is_deleted AND NOT t.is_deleted
	`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingWithTrip, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE NOT b.is_deleted
		ORDER BY b.booking_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings: %w", err)
	}
	defer rows.Close()

	return r.collectDetails(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE NOT is_deleted`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindActiveByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE trip_id = $1 AND user_id = $2
		  AND status IN ('PENDING', 'CONFIRMED') AND NOT is_deleted
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, tripID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find active booking for trip %s: %w", tripID.String(), err)
	}

	return booking, nil
}

// FindByOwnerID lists every booking on the owner's live trips with the traveler's contact.
func (r *bookingRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.BookingWithTrip, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE t.user_id = $1 AND NOT t.is_deleted AND NOT b.is_deleted
		ORDER BY b.booking_time DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find bookings by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find bookings by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return r.collectDetails(rows)
}

// SumOwnerEarnings aggregates paid and verified bookings in one statement.
func (r *bookingRepository) SumOwnerEarnings(ctx context.Context, ownerID uuid.UUID) (*entity.OwnerEarnings, error) {
	query := `
		SELECT COALESCE(SUM(b.amount_paid), 0)::float8, COUNT(b.id)
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE t.user_id = $1 AND NOT t.is_deleted AND NOT b.is_deleted
		  AND b.payment_status = 'paid' AND b.payment_verified
	`

	var earnings entity.OwnerEarnings
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&earnings.TotalEarnings, &earnings.TotalBookings)
	if err != nil {
		r.log.Error("Failed to sum owner earnings",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("sum earnings for owner %s: %w", ownerID.String(), err)
	}

	return &earnings, nil
}

// UpdateSeats changes the seat count of a PENDING booking. It returns nil, nil
// when the booking left PENDING in the meantime.
func (r *bookingRepository) UpdateSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET seats_booked = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND NOT is_deleted
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, seats))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking seats",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.Int("seats", seats),
		)
		return nil, fmt.Errorf("update booking %s seats: %w", id.String(), err)
	}

	return booking, nil
}

// ExpirePending moves unpaid PENDING bookings created before olderThan to
// EXPIRED. Pending bookings hold no seats, so trips are left untouched.
func (r *bookingRepository) ExpirePending(ctx context.Context, olderThan time.Time) ([]*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE status = 'PENDING' AND payment_status = 'unpaid'
		  AND NOT is_deleted AND booking_time < $1
		RETURNING ` + bookingColumns

	rows, err := r.db.Query(ctx, query, olderThan)
	if err != nil {
		r.log.Error("Failed to expire pending bookings",
			zap.Error(err),
			zap.Time("older_than", olderThan),
		)
		return nil, fmt.Errorf("expire pending bookings: %w", err)
	}
	defer rows.Close()

	var expired []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		expired = append(expired, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired bookings: %w", err)
	}

	return expired, nil
}

func (r *bookingRepository) collectDetails(rows pgx.Rows) ([]*entity.BookingWithTrip, error) {
	bookings := make([]*entity.BookingWithTrip, 0)
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}
