package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
)

// Constraint names created by the init migration.
const (
	constraintActiveBooking  = "uq_bookings_active_trip_user"
	constraintTransactionID  = "uq_bookings_transaction_id"
	constraintAvailableSeats = "chk_trips_available_seats"
)

// violates reports whether err is a postgres error with the given SQLSTATE on constraint.
func violates(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code && pgErr.ConstraintName == constraint
}
