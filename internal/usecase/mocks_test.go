package usecase

import (
	"context"
	"time"

	"trip-booking/internal/data/entity"
	"trip-booking/internal/data/repository"
	"trip-booking/internal/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockTripRepo struct{ mock.Mock }

func (m *mockTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	return m.Called(ctx, trip).Error(0)
}

func (m *mockTripRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	args := m.Called(ctx, id)
	trip, _ := args.Get(0).(*entity.Trip)
	return trip, args.Error(1)
}

func (m *mockTripRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Trip, error) {
	args := m.Called(ctx, ownerID)
	trips, _ := args.Get(0).([]*entity.Trip)
	return trips, args.Error(1)
}

func (m *mockTripRepo) FindBookable(ctx context.Context, limit, offset int) ([]*entity.Trip, error) {
	args := m.Called(ctx, limit, offset)
	trips, _ := args.Get(0).([]*entity.Trip)
	return trips, args.Error(1)
}

func (m *mockTripRepo) CountBookable(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTripRepo) Update(ctx context.Context, trip *entity.Trip) (*entity.Trip, error) {
	args := m.Called(ctx, trip)
	updated, _ := args.Get(0).(*entity.Trip)
	return updated, args.Error(1)
}

func (m *mockTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (*entity.Trip, error) {
	args := m.Called(ctx, id, from, to)
	trip, _ := args.Get(0).(*entity.Trip)
	return trip, args.Error(1)
}

func (m *mockTripRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingWithTrip, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*entity.BookingWithTrip)
	return d, args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithTrip, error) {
	args := m.Called(ctx, userID, limit, offset)
	out, _ := args.Get(0).([]*entity.BookingWithTrip)
	return out, args.Error(1)
}

func (m *mockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingWithTrip, error) {
	args := m.Called(ctx, limit, offset)
	out, _ := args.Get(0).([]*entity.BookingWithTrip)
	return out, args.Error(1)
}

func (m *mockBookingRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindActiveByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, tripID, userID)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.BookingWithTrip, error) {
	args := m.Called(ctx, ownerID)
	out, _ := args.Get(0).([]*entity.BookingWithTrip)
	return out, args.Error(1)
}

func (m *mockBookingRepo) SumOwnerEarnings(ctx context.Context, ownerID uuid.UUID) (*entity.OwnerEarnings, error) {
	args := m.Called(ctx, ownerID)
	e, _ := args.Get(0).(*entity.OwnerEarnings)
	return e, args.Error(1)
}

func (m *mockBookingRepo) UpdateSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Booking, error) {
	args := m.Called(ctx, id, seats)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) ExpirePending(ctx context.Context, olderThan time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, olderThan)
	out, _ := args.Get(0).([]*entity.Booking)
	return out, args.Error(1)
}

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) Confirm(ctx context.Context, bookingID uuid.UUID, seats int, payment entity.PaymentDetails) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID, seats, payment)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockReservationRepo) Cancel(ctx context.Context, bookingID uuid.UUID, from entity.BookingStatus) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID, from)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockReservationRepo) Delete(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, entry *entity.PaymentLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentLog, error) {
	args := m.Called(ctx, bookingID)
	out, _ := args.Get(0).([]*entity.PaymentLog)
	return out, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, ev event.BookingEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type mocks struct {
	trips        *mockTripRepo
	bookings     *mockBookingRepo
	reservations *mockReservationRepo
	payments     *mockPaymentRepo
	publisher    *mockPublisher
}

func newMocks() *mocks {
	return &mocks{
		trips:        &mockTripRepo{},
		bookings:     &mockBookingRepo{},
		reservations: &mockReservationRepo{},
		payments:     &mockPaymentRepo{},
		publisher:    &mockPublisher{},
	}
}

func (m *mocks) repository() *repository.Repository {
	return &repository.Repository{
		Trip:        m.trips,
		Booking:     m.bookings,
		Reservation: m.reservations,
		Payment:     m.payments,
	}
}

func (m *mocks) assertExpectations(t mock.TestingT) {
	m.trips.AssertExpectations(t)
	m.bookings.AssertExpectations(t)
	m.reservations.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}
