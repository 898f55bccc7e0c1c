package repository

import (
	"context"
	"fmt"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Messages surfaced to clients by the reservation engine.
const (
	MsgNotEnoughSeats     = "Not enough seats available"
	MsgConcurrentUpdate   = "Booking was modified concurrently"
	MsgTransactionUsed    = "Transaction ID has already been used"
	MsgSeatLedgerMismatch = "seat release would exceed trip capacity"
	MsgAlreadyPaid        = "Payment already marked as paid"
	MsgBookingGone        = "Booking not found"
)

// ReservationRepository is the only writer of trips.available_seats. Every
// method runs in a single transaction, touching the booking row first and
// the trip row second.
type ReservationRepository interface {
	// Confirm marks a PENDING unpaid booking CONFIRMED and paid, and takes
	// seats from the trip. Nothing changes when the trip has too few seats.
	Confirm(ctx context.Context, bookingID uuid.UUID, seats int, payment entity.PaymentDetails) (*entity.Booking, error)
	// Cancel moves the booking from status from to CANCELLED, returning its
	// seats to the trip when from is CONFIRMED.
	Cancel(ctx context.Context, bookingID uuid.UUID, from entity.BookingStatus) (*entity.Booking, error)
	// Delete removes the booking, returning its seats when it was CONFIRMED.
	Delete(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Confirm(ctx context.Context, bookingID uuid.UUID, seats int, payment entity.PaymentDetails) (*entity.Booking, error) {
	confirmQuery := `
		UPDATE bookings b
		SET status = 'CONFIRMED', seats_booked = $2, payment_status = 'paid', payment_verified = TRUE,
		    payment_method = $3, transaction_id = $4, amount_paid = t.price * $2,
		    confirmed_at = $5, updated_at = NOW()
		FROM trips t
		WHERE b.id = $1 AND t.id = b.trip_id
		  AND b.status = 'PENDING' AND b.payment_status = 'unpaid' AND NOT b.is_deleted
		RETURNING ` + bookingColumnsB

	var method, transactionID *string
	if payment.Method != "" {
		method = &payment.Method
	}
	if payment.TransactionID != "" {
		transactionID = &payment.TransactionID
	}

	var booking *entity.Booking
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		booking, err = scanBooking(tx.QueryRow(ctx, confirmQuery,
			bookingID, seats, method, transactionID, payment.ConfirmedAt))
		if err == pgx.ErrNoRows {
			return r.unconfirmable(ctx, tx, bookingID)
		}
		if violates(err, sqlStateUniqueViolation, constraintTransactionID) {
			return apperr.Wrap(apperr.Conflict, MsgTransactionUsed, err)
		}
		if err != nil {
			return fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
		}

		return r.takeSeats(ctx, tx, booking.TripID, booking.SeatsBooked)
	})
	if err != nil {
		r.logFailure("confirm", bookingID, err)
		return nil, err
	}

	r.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("trip_id", booking.TripID.String()),
		zap.Int("seats", booking.SeatsBooked),
		zap.Float64("amount_paid", booking.AmountPaid),
	)
	return booking, nil
}

func (r *reservationRepository) Cancel(ctx context.Context, bookingID uuid.UUID, from entity.BookingStatus) (*entity.Booking, error) {
	cancelQuery := `
		UPDATE bookings
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1 AND status = $2 AND NOT is_deleted
		RETURNING ` + bookingColumns

	var booking *entity.Booking
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		booking, err = scanBooking(tx.QueryRow(ctx, cancelQuery, bookingID, from))
		if err == pgx.ErrNoRows {
			return apperr.NewConflict(MsgConcurrentUpdate)
		}
		if err != nil {
			return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
		}

		if from != entity.BookingStatusConfirmed {
			return nil
		}
		return r.releaseSeats(ctx, tx, booking.TripID, booking.SeatsBooked)
	})
	if err != nil {
		r.logFailure("cancel", bookingID, err)
		return nil, err
	}

	r.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(from)),
	)
	return booking, nil
}

func (r *reservationRepository) Delete(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	deleteQuery := `DELETE FROM bookings WHERE id = $1 RETURNING ` + bookingColumns

	var booking *entity.Booking
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		booking, err = scanBooking(tx.QueryRow(ctx, deleteQuery, bookingID))
		if err == pgx.ErrNoRows {
			return apperr.NewNotFound(MsgBookingGone)
		}
		if err != nil {
			return fmt.Errorf("delete booking %s: %w", bookingID.String(), err)
		}

		if booking.Status != entity.BookingStatusConfirmed {
			return nil
		}
		return r.releaseSeats(ctx, tx, booking.TripID, booking.SeatsBooked)
	})
	if err != nil {
		r.logFailure("delete", bookingID, err)
		return nil, err
	}

	r.log.Info("Booking deleted",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)
	return booking, nil
}

// unconfirmable explains why the guarded confirm matched no row. A booking
// paid by a concurrent confirm reports AlreadyPaid.
func (r *reservationRepository) unconfirmable(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	query := `SELECT status, payment_status FROM bookings WHERE id = $1 AND NOT is_deleted`

	var status entity.BookingStatus
	var paymentStatus entity.PaymentStatus
	err := tx.QueryRow(ctx, query, bookingID).Scan(&status, &paymentStatus)
	if err == pgx.ErrNoRows {
		return apperr.NewNotFound(MsgBookingGone)
	}
	if err != nil {
		return fmt.Errorf("recheck booking %s: %w", bookingID.String(), err)
	}

	if paymentStatus == entity.PaymentStatusPaid {
		return apperr.New(apperr.AlreadyPaid, MsgAlreadyPaid)
	}
	return apperr.NewConflict(MsgConcurrentUpdate)
}

func (r *reservationRepository) takeSeats(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, seats int) error {
	query := `
		UPDATE trips
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1 AND available_seats >= $2 AND NOT is_deleted
	`

	result, err := tx.Exec(ctx, query, tripID, seats)
	if violates(err, sqlStateCheckViolation, constraintAvailableSeats) {
		return apperr.Wrap(apperr.InsufficientSeats, MsgNotEnoughSeats, err)
	}
	if err != nil {
		return fmt.Errorf("take %d seats from trip %s: %w", seats, tripID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperr.New(apperr.InsufficientSeats, MsgNotEnoughSeats)
	}

	return nil
}

func (r *reservationRepository) releaseSeats(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, seats int) error {
	query := `
		UPDATE trips
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1 AND available_seats + $2 <= total_seats
	`

	result, err := tx.Exec(ctx, query, tripID, seats)
	if err != nil {
		return fmt.Errorf("release %d seats to trip %s: %w", seats, tripID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NewInternal(fmt.Errorf("trip %s: %s", tripID.String(), MsgSeatLedgerMismatch))
	}

	return nil
}

func (r *reservationRepository) logFailure(op string, bookingID uuid.UUID, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("booking_id", bookingID.String()),
		zap.String("operation", op),
	}

	switch apperr.KindOf(err) {
	case apperr.Internal:
		r.log.Error("Reservation failed", fields...)
	default:
		r.log.Warn("Reservation rejected", fields...)
	}
}
