package repository

import (
	"trip-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Trip        TripRepository
	Booking     BookingRepository
	Reservation ReservationRepository
	Payment     PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Trip:        NewTripRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
	}
}
