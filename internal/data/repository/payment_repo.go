package repository

import (
	"context"
	"fmt"

	"trip-booking/internal/data/entity"
	"trip-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, log *entity.PaymentLog) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentLog, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, entry *entity.PaymentLog) error {
	query := `
		INSERT INTO payment_logs (id, booking_id, transaction_id, amount, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.BookingID,
		entry.TransactionID,
		entry.Amount,
		entry.Outcome,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment log",
			zap.Error(err),
			zap.String("booking_id", entry.BookingID.String()),
			zap.String("outcome", string(entry.Outcome)),
		)
		return fmt.Errorf("create payment log for booking %s: %w", entry.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentLog, error) {
	query := `
		SELECT id, booking_id, transaction_id, amount, outcome, created_at
		FROM payment_logs
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payment logs",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment logs for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	logs := make([]*entity.PaymentLog, 0)
	for rows.Next() {
		var entry entity.PaymentLog
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.TransactionID,
			&entry.Amount,
			&entry.Outcome,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment log row", zap.Error(err))
			return nil, fmt.Errorf("scan payment log row: %w", err)
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment log rows: %w", err)
	}

	return logs, nil
}
