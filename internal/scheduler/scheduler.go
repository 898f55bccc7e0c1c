package scheduler

import (
	"context"
	"time"

	"trip-booking/internal/data/entity"

	"go.uber.org/zap"
)

type bookingExpirer interface {
	ExpirePendingBookings(ctx context.Context) ([]*entity.Booking, error)
}

// Scheduler periodically expires unpaid PENDING bookings.
type Scheduler struct {
	bookings bookingExpirer
	interval time.Duration
	log      *zap.Logger
}

func New(bookings bookingExpirer, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		interval: interval,
		log:      log.With(zap.String("component", "scheduler")),
	}
}

// Start blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Scheduler started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.bookings.ExpirePendingBookings(ctx)
	if err != nil {
		s.log.Error("Failed to expire pending bookings", zap.Error(err))
		return
	}

	for _, b := range expired {
		s.log.Info("Booking expired",
			zap.String("booking_id", b.ID.String()),
			zap.String("user_id", b.UserID.String()),
			zap.String("trip_id", b.TripID.String()),
		)
	}
}
