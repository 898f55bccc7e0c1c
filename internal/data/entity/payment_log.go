package entity

import (
	"github.com/google/uuid"
)

type PaymentOutcome string

const (
	PaymentOutcomeConfirmed         PaymentOutcome = "confirmed"
	PaymentOutcomeInsufficientSeats PaymentOutcome = "insufficient_seats"
	PaymentOutcomeRejected          PaymentOutcome = "rejected"
)

// PaymentLog records one payment confirmation attempt.
type PaymentLog struct {
	BaseSimple
	BookingID     uuid.UUID      `db:"booking_id"`
	TransactionID string         `db:"transaction_id"`
	Amount        float64        `db:"amount"`
	Outcome       PaymentOutcome `db:"outcome"`
}
