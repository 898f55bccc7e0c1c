package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/data/repository"
	"trip-booking/internal/dto/request"
	"trip-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgTripNotFound     = "Trip not found"
	MsgTripNotEditable  = "Only PENDING trips can be edited"
	MsgSeatsAlreadySold = "Total seats cannot drop below the seats already sold"
)

type TripService interface {
	CreateTrip(ctx context.Context, actor Actor, req *request.CreateTripRequest) (*response.TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error)
	GetBookableTrips(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TripResponse], error)
	GetOwnerTrips(ctx context.Context, actor Actor) ([]response.TripResponse, error)

	// Owner endpoints
	UpdateTrip(ctx context.Context, actor Actor, tripID string, req *request.UpdateTripRequest) (*response.TripResponse, error)
	UpdateTripStatus(ctx context.Context, actor Actor, tripID string, req *request.UpdateTripStatusRequest) (*response.TripResponse, error)
	DeleteTrip(ctx context.Context, actor Actor, tripID string) error
}

type tripService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewTripService(repo *repository.Repository, log *zap.Logger) TripService {
	return &tripService{
		repo: repo,
		log:  log.With(zap.String("service", "trip")),
		now:  time.Now,
	}
}

func (s *tripService) CreateTrip(ctx context.Context, actor Actor, req *request.CreateTripRequest) (*response.TripResponse, error) {
	if err := validate(s.log, "Create trip", req); err != nil {
		return nil, err
	}

	date, err := time.Parse(response.DateLayout, req.Date)
	if err != nil {
		return nil, apperr.NewValidation("Validation failed", map[string]string{"date": "must be a date in YYYY-MM-DD format"})
	}

	features, err := normalizeFeatures(req.IsTourism, req.TourismFeatures)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	trip := &entity.Trip{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          actor.UserID,
		Origin:          strings.TrimSpace(req.Origin),
		Destination:     strings.TrimSpace(req.Destination),
		Date:            date,
		Time:            req.Time,
		Price:           req.Price,
		TotalSeats:      req.TotalSeats,
		AvailableSeats:  req.TotalSeats,
		Status:          entity.TripStatusPending,
		IsTourism:       req.IsTourism,
		TourismFeatures: features,
	}

	if err := s.repo.Trip.Create(ctx, trip); err != nil {
		return nil, apperr.As(err)
	}

	s.log.Info("Trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("owner_id", actor.UserID.String()),
		zap.Int("seats", trip.TotalSeats),
	)

	resp := response.TripToResponse(trip)
	return &resp, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error) {
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	resp := response.TripToResponse(trip)
	return &resp, nil
}

func (s *tripService) GetBookableTrips(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TripResponse], error) {
	trips, err := s.repo.Trip.FindBookable(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	total, err := s.repo.Trip.CountBookable(ctx)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	return response.NewPaginatedResponse(toTripResponses(trips), req.Page, req.Limit(), total), nil
}

func (s *tripService) GetOwnerTrips(ctx context.Context, actor Actor) ([]response.TripResponse, error) {
	trips, err := s.repo.Trip.FindByOwnerID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	return toTripResponses(trips), nil
}

func (s *tripService) UpdateTrip(ctx context.Context, actor Actor, tripID string, req *request.UpdateTripRequest) (*response.TripResponse, error) {
	if err := validate(s.log, "Update trip", req); err != nil {
		return nil, err
	}

	trip, err := s.ownedTrip(ctx, actor, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != entity.TripStatusPending {
		return nil, apperr.NewValidation(MsgTripNotEditable, nil)
	}

	next := *trip
	if req.Origin != nil {
		next.Origin = strings.TrimSpace(*req.Origin)
	}
	if req.Destination != nil {
		next.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.Date != nil {
		date, err := time.Parse(response.DateLayout, *req.Date)
		if err != nil {
			return nil, apperr.NewValidation("Validation failed", map[string]string{"date": "must be a date in YYYY-MM-DD format"})
		}
		next.Date = date
	}
	if req.Time != nil {
		next.Time = *req.Time
	}
	if req.Price != nil {
		next.Price = *req.Price
	}
	if req.TotalSeats != nil {
		next.TotalSeats = *req.TotalSeats
	}
	if req.IsTourism != nil {
		next.IsTourism = *req.IsTourism
	}
	features := map[string]bool(trip.TourismFeatures)
	if req.TourismFeatures != nil {
		features = *req.TourismFeatures
	}
	if next.TourismFeatures, err = normalizeFeatures(next.IsTourism, features); err != nil {
		return nil, err
	}

	updated, err := s.repo.Trip.Update(ctx, &next)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if updated == nil {
		return nil, s.refusedUpdate(ctx, tripID)
	}

	s.log.Info("Trip updated",
		zap.String("trip_id", updated.ID.String()),
		zap.Int("total_seats", updated.TotalSeats),
		zap.Int("available_seats", updated.AvailableSeats),
	)

	resp := response.TripToResponse(updated)
	return &resp, nil
}

func (s *tripService) UpdateTripStatus(ctx context.Context, actor Actor, tripID string, req *request.UpdateTripStatusRequest) (*response.TripResponse, error) {
	if err := validate(s.log, "Update trip status", req); err != nil {
		return nil, err
	}

	trip, err := s.ownedTrip(ctx, actor, tripID)
	if err != nil {
		return nil, err
	}

	target := entity.TripStatus(req.Status)
	if !trip.Status.CanTransitionTo(target) {
		return nil, apperr.NewValidation(fmt.Sprintf("Cannot change trip from %s to %s", trip.Status, target), nil)
	}

	updated, err := s.repo.Trip.UpdateStatus(ctx, trip.ID, trip.Status, target)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if updated == nil {
		return nil, apperr.NewConflict("Trip was modified concurrently")
	}

	s.log.Info("Trip status changed",
		zap.String("trip_id", trip.ID.String()),
		zap.String("from", string(trip.Status)),
		zap.String("to", string(target)),
	)

	resp := response.TripToResponse(updated)
	return &resp, nil
}

// DeleteTrip soft deletes the trip. Its bookings stay as they are but drop out
// of traveler listings.
func (s *tripService) DeleteTrip(ctx context.Context, actor Actor, tripID string) error {
	trip, err := s.ownedTrip(ctx, actor, tripID)
	if err != nil {
		return err
	}

	if err := s.repo.Trip.SoftDelete(ctx, trip.ID); err != nil {
		return apperr.As(err)
	}

	return nil
}

func (s *tripService) findTrip(ctx context.Context, tripID string) (*entity.Trip, error) {
	id, err := parseID(tripID, MsgTripNotFound)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.Trip.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if trip == nil {
		return nil, apperr.NewNotFound(MsgTripNotFound)
	}

	return trip, nil
}

// refusedUpdate explains a guarded trip update that matched no row, from the
// trip's current state.
func (s *tripService) refusedUpdate(ctx context.Context, tripID string) error {
	current, err := s.findTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if current.Status != entity.TripStatusPending {
		return apperr.NewValidation(MsgTripNotEditable, nil)
	}

	sold := current.TotalSeats - current.AvailableSeats
	return apperr.NewValidation(MsgSeatsAlreadySold, map[string]string{
		"totalSeats": fmt.Sprintf("must be at least %d", sold),
	})
}

func (s *tripService) ownedTrip(ctx context.Context, actor Actor, tripID string) (*entity.Trip, error) {
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsOwnedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, apperr.NewForbidden("You do not own this trip")
	}
	return trip, nil
}

// normalizeFeatures drops amenities on non-tourism trips and rejects unknown keys.
func normalizeFeatures(isTourism bool, features map[string]bool) (entity.TourismFeatures, error) {
	if !isTourism || len(features) == 0 {
		return entity.TourismFeatures{}, nil
	}

	out := entity.TourismFeatures(features)
	if unknown := out.Unknown(); len(unknown) > 0 {
		return nil, apperr.NewValidation("Validation failed", map[string]string{
			"tourismFeatures": "unknown feature(s): " + strings.Join(unknown, ", "),
		})
	}

	return out, nil
}

func toTripResponses(trips []*entity.Trip) []response.TripResponse {
	out := make([]response.TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, response.TripToResponse(t))
	}
	return out
}
