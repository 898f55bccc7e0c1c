package usecase

import (
	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/data/repository"
	"trip-booking/internal/event"
	"trip-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Booking  BookingService
	Trip     TripService
	Earnings EarningsService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher event.Publisher, log *zap.Logger) *Service {
	return &Service{
		Booking:  NewBookingService(repo, config.Booking, publisher, log),
		Trip:     NewTripService(repo, log),
		Earnings: NewEarningsService(repo, log),
	}
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// validate runs the struct tags on req and turns failures into a Validation error.
func validate(log *zap.Logger, op string, req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn(op+" validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return apperr.NewValidation("Validation failed", errs)
	}
	return nil
}

// parseID treats a malformed id like a missing record.
func parseID(value, notFound string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(value)
	if err != nil {
		return uuid.Nil, apperr.NewNotFound(notFound)
	}
	return id, nil
}
