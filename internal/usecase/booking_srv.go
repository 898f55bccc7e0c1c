package usecase

import (
	"context"
	"fmt"
	"time"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/data/repository"
	"trip-booking/internal/dto/request"
	"trip-booking/internal/dto/response"
	"trip-booking/internal/event"
	"trip-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgBookingNotFound    = "Booking not found"
	MsgTripNotBookable    = "Trip not bookable"
	MsgAlreadyPaid        = repository.MsgAlreadyPaid
	MsgPaymentSubmitted   = "Payment submitted successfully"
	MsgBookingDeleted     = "Booking deleted and seats adjusted."
	MsgSeatsExceedTrip    = "Seats exceed trip capacity"
	MsgNothingToUpdate    = "Status or seatsBooked is required"
	MsgSeatsLocked        = "Seats can only change while the booking is PENDING"
	MsgReceiptUnavailable = "Receipt is only available for paid bookings"
)

type BookingService interface {
	// Seat reservation
	CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, actor Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, actor Actor, bookingID string) error

	// Payment
	ConfirmPayment(ctx context.Context, actor Actor, req *request.ConfirmPaymentRequest) (*response.ConfirmPaymentResponse, error)
	GetReceipt(ctx context.Context, actor Actor, bookingID string) (*Receipt, error)

	// Reads
	GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingDetailResponse, error)
	GetUserBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Background
	ExpirePendingBookings(ctx context.Context) ([]*entity.Booking, error)
}

type bookingService struct {
	repo       *repository.Repository
	publisher  event.Publisher
	pendingTTL time.Duration
	log        *zap.Logger
	now        func() time.Time
}

func NewBookingService(repo *repository.Repository, config utils.BookingConfig, publisher event.Publisher, log *zap.Logger) BookingService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}

	return &bookingService{
		repo:       repo,
		publisher:  publisher,
		pendingTTL: config.PendingTTL,
		log:        log.With(zap.String("service", "booking")),
		now:        time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(s.log, "Create booking", req); err != nil {
		return nil, err
	}

	tripID, err := parseID(req.TripID, MsgTripNotBookable)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.Trip.FindByID(ctx, tripID)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if !trip.Bookable() {
		return nil, apperr.NewNotFound(MsgTripNotBookable)
	}

	if req.SeatsBooked > trip.TotalSeats {
		return nil, apperr.NewValidation(MsgSeatsExceedTrip, map[string]string{
			"seatsBooked": fmt.Sprintf("must be at most %d", trip.TotalSeats),
		})
	}

	// The unique index still decides races between two concurrent requests
	existing, err := s.repo.Booking.FindActiveByTripAndUser(ctx, tripID, actor.UserID)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if existing != nil {
		return nil, apperr.NewConflict(repository.MsgAlreadyBooked)
	}

	now := s.now().UTC()
	booking := &entity.Booking{
		ID:            uuid.New(),
		TripID:        tripID,
		UserID:        actor.UserID,
		SeatsBooked:   req.SeatsBooked,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
		BookingTime:   now,
		UpdatedAt:     now,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, apperr.As(err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("trip_id", tripID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.Int("seats", booking.SeatsBooked),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// UpdateBooking applies a status transition and/or a seat change. Travelers may
// cancel and resize their own PENDING booking; confirming without payment is
// reserved for the trip owner and admins.
func (s *bookingService) UpdateBooking(ctx context.Context, actor Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	id, err := parseID(bookingID, MsgBookingNotFound)
	if err != nil {
		return nil, err
	}

	if err := validate(s.log, "Update booking", req); err != nil {
		return nil, err
	}
	if req.Status == "" && req.SeatsBooked == nil {
		return nil, apperr.NewValidation(MsgNothingToUpdate, nil)
	}

	detail, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	current := &detail.Booking
	isTraveler := current.UserID == actor.UserID
	isOwner := detail.Trip.OwnerID == actor.UserID
	if !isTraveler && !isOwner && !actor.IsAdmin() {
		return nil, apperr.NewForbidden("You cannot modify this booking")
	}

	target := current.Status
	if req.Status != "" {
		target = entity.BookingStatus(req.Status)
	}

	seats := current.SeatsBooked
	seatChange := req.SeatsBooked != nil && *req.SeatsBooked != current.SeatsBooked
	if seatChange {
		seats = *req.SeatsBooked
		if err := s.checkSeatChange(ctx, actor, detail, target, seats); err != nil {
			return nil, err
		}
	}

	var (
		updated *entity.Booking
		evType  event.Type
	)

	switch {
	case target == current.Status:
		if current.Status != entity.BookingStatusPending {
			return nil, apperr.NewValidation(fmt.Sprintf("Booking is already %s", current.Status), nil)
		}
		if !seatChange {
			resp := response.BookingToResponse(current)
			return &resp, nil
		}

		updated, err = s.repo.Booking.UpdateSeats(ctx, id, seats)
		if err != nil {
			return nil, apperr.NewInternal(err)
		}
		if updated == nil {
			return nil, apperr.NewConflict(repository.MsgConcurrentUpdate)
		}

	case target == entity.BookingStatusExpired || !current.Status.CanTransitionTo(target):
		return nil, apperr.NewValidation(fmt.Sprintf("Cannot change booking from %s to %s", current.Status, target), nil)

	case target == entity.BookingStatusConfirmed:
		if !isOwner && !actor.IsAdmin() {
			return nil, apperr.NewForbidden("Only the trip owner can confirm a booking")
		}

		updated, err = s.repo.Reservation.Confirm(ctx, id, seats, entity.PaymentDetails{ConfirmedAt: s.now().UTC()})
		if err != nil {
			return nil, apperr.As(err)
		}
		evType = event.TypeBookingConfirmed

	case target == entity.BookingStatusCancelled:
		updated, err = s.repo.Reservation.Cancel(ctx, id, current.Status)
		if err != nil {
			return nil, apperr.As(err)
		}
		evType = event.TypeBookingCancelled
	}

	if evType != "" {
		s.publish(ctx, evType, updated)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", id.String()),
		zap.String("from", string(current.Status)),
		zap.String("to", string(updated.Status)),
		zap.Int("seats", updated.SeatsBooked),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

func (s *bookingService) checkSeatChange(ctx context.Context, actor Actor, detail *entity.BookingWithTrip, target entity.BookingStatus, seats int) error {
	if detail.Status != entity.BookingStatusPending || target == entity.BookingStatusCancelled {
		return apperr.NewValidation(MsgSeatsLocked, nil)
	}
	if detail.UserID != actor.UserID && !actor.IsAdmin() {
		return apperr.NewForbidden("Only the traveler can change the seat count")
	}

	trip, err := s.repo.Trip.FindByID(ctx, detail.TripID)
	if err != nil {
		return apperr.NewInternal(err)
	}
	if trip == nil {
		return apperr.NewNotFound(MsgTripNotBookable)
	}
	if seats > trip.TotalSeats {
		return apperr.NewValidation(MsgSeatsExceedTrip, map[string]string{
			"seatsBooked": fmt.Sprintf("must be at most %d", trip.TotalSeats),
		})
	}

	return nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor Actor, bookingID string) error {
	id, err := parseID(bookingID, MsgBookingNotFound)
	if err != nil {
		return err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return apperr.NewInternal(err)
	}
	if booking == nil {
		return apperr.NewNotFound(MsgBookingNotFound)
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return apperr.NewForbidden("You can only delete your own bookings")
	}

	if _, err := s.repo.Reservation.Delete(ctx, id); err != nil {
		return apperr.As(err)
	}

	return nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, actor Actor, req *request.ConfirmPaymentRequest) (*response.ConfirmPaymentResponse, error) {
	if err := validate(s.log, "Confirm payment", req); err != nil {
		return nil, err
	}

	id, err := parseID(req.BookingID, MsgBookingNotFound)
	if err != nil {
		return nil, err
	}

	detail, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	booking := &detail.Booking
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, apperr.NewForbidden("You can only pay for your own bookings")
	}
	if booking.IsPaid() {
		return nil, apperr.New(apperr.AlreadyPaid, MsgAlreadyPaid)
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, apperr.NewValidation(fmt.Sprintf("Booking is %s and cannot be paid", booking.Status), nil)
	}

	method := req.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodEVCPlus
	}

	confirmed, err := s.repo.Reservation.Confirm(ctx, id, booking.SeatsBooked, entity.PaymentDetails{
		TransactionID: req.TransactionID,
		Method:        method,
		ConfirmedAt:   s.now().UTC(),
	})
	if err != nil {
		appErr := apperr.As(err)
		amount := detail.Trip.Price * float64(booking.SeatsBooked)
		switch appErr.Kind {
		case apperr.InsufficientSeats:
			s.recordPayment(ctx, id, req.TransactionID, amount, entity.PaymentOutcomeInsufficientSeats)
		case apperr.Conflict:
			s.recordPayment(ctx, id, req.TransactionID, amount, entity.PaymentOutcomeRejected)
		}
		return nil, appErr
	}

	s.recordPayment(ctx, id, req.TransactionID, confirmed.AmountPaid, entity.PaymentOutcomeConfirmed)
	s.publish(ctx, event.TypeBookingConfirmed, confirmed)

	return &response.ConfirmPaymentResponse{
		Message: MsgPaymentSubmitted,
		Booking: response.BookingToResponse(confirmed),
	}, nil
}

func (s *bookingService) GetReceipt(ctx context.Context, actor Actor, bookingID string) (*Receipt, error) {
	id, err := parseID(bookingID, MsgBookingNotFound)
	if err != nil {
		return nil, err
	}

	detail, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, detail) {
		return nil, apperr.NewForbidden("You cannot view this booking")
	}
	if !detail.IsPaid() {
		return nil, apperr.NewValidation(MsgReceiptUnavailable, nil)
	}

	receipt, err := buildReceiptPDF(detail, s.now())
	if err != nil {
		s.log.Error("Failed to render receipt", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, apperr.NewInternal(err)
	}

	return receipt, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := parseID(bookingID, MsgBookingNotFound)
	if err != nil {
		return nil, err
	}

	detail, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, detail) {
		return nil, apperr.NewForbidden("You cannot view this booking")
	}

	logs, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	payments := make([]response.PaymentLogResponse, 0, len(logs))
	for _, l := range logs {
		payments = append(payments, response.PaymentLogToResponse(l))
	}

	withTraveler := detail.Trip.OwnerID == actor.UserID || actor.IsAdmin()
	return &response.BookingDetailResponse{
		BookingResponse: response.BookingWithTripToResponse(detail, withTraveler),
		Payments:        payments,
	}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, actor.UserID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingWithTripToResponse(b, false))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingWithTripToResponse(b, true))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// ExpirePendingBookings moves unpaid PENDING bookings older than the pending
// TTL to EXPIRED and announces each one.
func (s *bookingService) ExpirePendingBookings(ctx context.Context) ([]*entity.Booking, error) {
	cutoff := s.now().Add(-s.pendingTTL)

	expired, err := s.repo.Booking.ExpirePending(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	for _, b := range expired {
		s.publish(ctx, event.TypeBookingExpired, b)
	}

	return expired, nil
}

func (s *bookingService) findDetail(ctx context.Context, id uuid.UUID) (*entity.BookingWithTrip, error) {
	detail, err := s.repo.Booking.FindDetailByID(ctx, id)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}
	if detail == nil {
		return nil, apperr.NewNotFound(MsgBookingNotFound)
	}
	return detail, nil
}

func canView(actor Actor, detail *entity.BookingWithTrip) bool {
	return actor.IsAdmin() || detail.UserID == actor.UserID || detail.Trip.OwnerID == actor.UserID
}

// recordPayment is best effort: the booking outcome stands even if the log write fails.
func (s *bookingService) recordPayment(ctx context.Context, bookingID uuid.UUID, transactionID string, amount float64, outcome entity.PaymentOutcome) {
	entry := &entity.PaymentLog{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now().UTC()},
		BookingID:     bookingID,
		TransactionID: transactionID,
		Amount:        amount,
		Outcome:       outcome,
	}

	if err := s.repo.Payment.Create(ctx, entry); err != nil {
		s.log.Error("Failed to record payment attempt",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("outcome", string(outcome)),
		)
	}
}

func (s *bookingService) publish(ctx context.Context, t event.Type, b *entity.Booking) {
	if err := s.publisher.Publish(ctx, event.NewBookingEvent(t, b, s.now())); err != nil {
		s.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(t)),
			zap.String("booking_id", b.ID.String()),
		)
	}
}
