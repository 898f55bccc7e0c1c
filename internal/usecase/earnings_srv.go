package usecase

import (
	"context"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/data/repository"
	"trip-booking/internal/dto/response"

	"go.uber.org/zap"
)

type EarningsService interface {
	OwnerBookings(ctx context.Context, actor Actor) (*response.OwnerBookingsResponse, error)
	OwnerEarnings(ctx context.Context, actor Actor) (*response.OwnerEarningsResponse, error)
}

type earningsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEarningsService(repo *repository.Repository, log *zap.Logger) EarningsService {
	return &earningsService{
		repo: repo,
		log:  log.With(zap.String("service", "earnings")),
	}
}

// OwnerBookings lists every booking on the owner's trips. Balance only counts
// money that was actually collected on confirmed bookings.
func (s *earningsService) OwnerBookings(ctx context.Context, actor Actor) (*response.OwnerBookingsResponse, error) {
	bookings, err := s.repo.Booking.FindByOwnerID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	resp := &response.OwnerBookingsResponse{
		Bookings: make([]response.BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, response.BookingWithTripToResponse(b, true))
		if b.Status == entity.BookingStatusConfirmed && b.IsPaid() {
			resp.Balance += b.AmountPaid
		}
	}

	return resp, nil
}

func (s *earningsService) OwnerEarnings(ctx context.Context, actor Actor) (*response.OwnerEarningsResponse, error) {
	earnings, err := s.repo.Booking.SumOwnerEarnings(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	s.log.Debug("Owner earnings computed",
		zap.String("owner_id", actor.UserID.String()),
		zap.Float64("total", earnings.TotalEarnings),
		zap.Int64("bookings", earnings.TotalBookings),
	)

	return &response.OwnerEarningsResponse{
		TotalEarnings: earnings.TotalEarnings,
		TotalBookings: earnings.TotalBookings,
	}, nil
}
