package adaptor

import (
	"context"

	"trip-booking/internal/data/entity"
	"trip-booking/internal/dto/request"
	"trip-booking/internal/dto/response"
	"trip-booking/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, actor usecase.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) UpdateBooking(ctx context.Context, actor usecase.Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, bookingID, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) DeleteBooking(ctx context.Context, actor usecase.Actor, bookingID string) error {
	return m.Called(ctx, actor, bookingID).Error(0)
}

func (m *mockBookingService) ConfirmPayment(ctx context.Context, actor usecase.Actor, req *request.ConfirmPaymentRequest) (*response.ConfirmPaymentResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*response.ConfirmPaymentResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetReceipt(ctx context.Context, actor usecase.Actor, bookingID string) (*usecase.Receipt, error) {
	args := m.Called(ctx, actor, bookingID)
	resp, _ := args.Get(0).(*usecase.Receipt)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, actor usecase.Actor, bookingID string) (*response.BookingDetailResponse, error) {
	args := m.Called(ctx, actor, bookingID)
	resp, _ := args.Get(0).(*response.BookingDetailResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetUserBookings(ctx context.Context, actor usecase.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return resp, args.Error(1)
}

func (m *mockBookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return resp, args.Error(1)
}

func (m *mockBookingService) ExpirePendingBookings(ctx context.Context) ([]*entity.Booking, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]*entity.Booking)
	return out, args.Error(1)
}

type mockEarningsService struct{ mock.Mock }

func (m *mockEarningsService) OwnerBookings(ctx context.Context, actor usecase.Actor) (*response.OwnerBookingsResponse, error) {
	args := m.Called(ctx, actor)
	resp, _ := args.Get(0).(*response.OwnerBookingsResponse)
	return resp, args.Error(1)
}

func (m *mockEarningsService) OwnerEarnings(ctx context.Context, actor usecase.Actor) (*response.OwnerEarningsResponse, error) {
	args := m.Called(ctx, actor)
	resp, _ := args.Get(0).(*response.OwnerEarningsResponse)
	return resp, args.Error(1)
}

type mockTripService struct{ mock.Mock }

func (m *mockTripService) CreateTrip(ctx context.Context, actor usecase.Actor, req *request.CreateTripRequest) (*response.TripResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*response.TripResponse)
	return resp, args.Error(1)
}

func (m *mockTripService) GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error) {
	args := m.Called(ctx, tripID)
	resp, _ := args.Get(0).(*response.TripResponse)
	return resp, args.Error(1)
}

func (m *mockTripService) GetBookableTrips(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TripResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.TripResponse])
	return resp, args.Error(1)
}

func (m *mockTripService) GetOwnerTrips(ctx context.Context, actor usecase.Actor) ([]response.TripResponse, error) {
	args := m.Called(ctx, actor)
	out, _ := args.Get(0).([]response.TripResponse)
	return out, args.Error(1)
}

func (m *mockTripService) UpdateTrip(ctx context.Context, actor usecase.Actor, tripID string, req *request.UpdateTripRequest) (*response.TripResponse, error) {
	args := m.Called(ctx, actor, tripID, req)
	resp, _ := args.Get(0).(*response.TripResponse)
	return resp, args.Error(1)
}

func (m *mockTripService) UpdateTripStatus(ctx context.Context, actor usecase.Actor, tripID string, req *request.UpdateTripStatusRequest) (*response.TripResponse, error) {
	args := m.Called(ctx, actor, tripID, req)
	resp, _ := args.Get(0).(*response.TripResponse)
	return resp, args.Error(1)
}

func (m *mockTripService) DeleteTrip(ctx context.Context, actor usecase.Actor, tripID string) error {
	return m.Called(ctx, actor, tripID).Error(0)
}
