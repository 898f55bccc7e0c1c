package usecase

import (
	"context"
	"testing"
	"time"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestTripService(t *testing.T, m *mocks) *tripService {
	t.Helper()
	svc := NewTripService(m.repository(), zaptest.NewLogger(t)).(*tripService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestTripService_CreateTrip(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	owner := uuid.New()

	m.trips.On("Create", mock.Anything, mock.MatchedBy(func(trip *entity.Trip) bool {
		return trip.UserID == owner && trip.TotalSeats == 12 && trip.AvailableSeats == 12 &&
			trip.Status == entity.TripStatusPending && trip.TourismFeatures[entity.FeatureLunch]
	})).Return(nil)

	resp, err := svc.CreateTrip(context.Background(), Actor{UserID: owner, Role: entity.RoleOwner}, &request.CreateTripRequest{
		Origin:          " Hargeisa ",
		Destination:     "Berbera",
		Date:            "2026-05-02",
		Time:            "07:45",
		Price:           15.5,
		TotalSeats:      12,
		IsTourism:       true,
		TourismFeatures: map[string]bool{entity.FeatureLunch: true, entity.FeatureSunsetView: false},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hargeisa", resp.Origin)
	assert.Equal(t, "2026-05-02", resp.Date)
	assert.Equal(t, 12, resp.AvailableSeats)
	m.assertExpectations(t)
}

func TestTripService_CreateTrip_RejectsBadInput(t *testing.T) {
	cases := map[string]request.CreateTripRequest{
		"bad clock": {Origin: "A", Destination: "B", Date: "2026-05-02", Time: "7pm", TotalSeats: 4},
		"bad date":  {Origin: "A", Destination: "B", Date: "02/05/2026", Time: "07:00", TotalSeats: 4},
		"no seats":  {Origin: "A", Destination: "B", Date: "2026-05-02", Time: "07:00"},
		"unknown feature": {Origin: "A", Destination: "B", Date: "2026-05-02", Time: "07:00", TotalSeats: 4,
			IsTourism: true, TourismFeatures: map[string]bool{"jacuzzi": true}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			m := newMocks()
			svc := newTestTripService(t, m)

			_, err := svc.CreateTrip(context.Background(), Actor{UserID: uuid.New()}, &req)

			assert.ErrorIs(t, err, apperr.ErrValidation)
			m.trips.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTripService_UpdateTrip_ShrinksCapacity(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	owner := uuid.New()
	trip := bookableTrip(owner, 10, 6)
	updated := *trip
	updated.TotalSeats, updated.AvailableSeats = 8, 4
	seats := 8

	m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
	m.trips.On("Update", mock.Anything, mock.MatchedBy(func(next *entity.Trip) bool {
		return next.TotalSeats == 8 && next.Origin == trip.Origin
	})).Return(&updated, nil)

	resp, err := svc.UpdateTrip(context.Background(), Actor{UserID: owner}, trip.ID.String(),
		&request.UpdateTripRequest{TotalSeats: &seats})

	require.NoError(t, err)
	assert.Equal(t, 8, resp.TotalSeats)
	assert.Equal(t, 4, resp.AvailableSeats)
}

func TestTripService_UpdateTrip_BelowSoldSeats(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	owner := uuid.New()
	trip := bookableTrip(owner, 10, 2)
	seats := 5

	m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
	m.trips.On("Update", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.UpdateTrip(context.Background(), Actor{UserID: owner}, trip.ID.String(),
		&request.UpdateTripRequest{TotalSeats: &seats})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "must be at least 8", apperr.As(err).Details["totalSeats"])
}

func TestTripService_UpdateTrip_StartedMeanwhile(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	owner := uuid.New()
	trip := bookableTrip(owner, 10, 10)
	started := *trip
	started.Status = entity.TripStatusOngoing
	price := 30.0

	m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil).Once()
	m.trips.On("Update", mock.Anything, mock.Anything).Return(nil, nil)
	m.trips.On("FindByID", mock.Anything, trip.ID).Return(&started, nil).Once()

	_, err := svc.UpdateTrip(context.Background(), Actor{UserID: owner}, trip.ID.String(),
		&request.UpdateTripRequest{Price: &price})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, MsgTripNotEditable, apperr.As(err).Message)
	m.assertExpectations(t)
}

func TestTripService_UpdateTrip_NotOwner(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	trip := bookableTrip(uuid.New(), 10, 10)
	price := 30.0

	m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)

	_, err := svc.UpdateTrip(context.Background(), Actor{UserID: uuid.New(), Role: entity.RoleOwner}, trip.ID.String(),
		&request.UpdateTripRequest{Price: &price})

	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestTripService_UpdateTrip_NotPending(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	owner := uuid.New()
	trip := bookableTrip(owner, 10, 10)
	trip.Status = entity.TripStatusOngoing
	price := 30.0

	m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)

	_, err := svc.UpdateTrip(context.Background(), Actor{UserID: owner}, trip.ID.String(),
		&request.UpdateTripRequest{Price: &price})

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTripService_UpdateTripStatus(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		m := newMocks()
		svc := newTestTripService(t, m)
		owner := uuid.New()
		trip := bookableTrip(owner, 10, 10)
		ongoing := *trip
		ongoing.Status = entity.TripStatusOngoing

		m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		m.trips.On("UpdateStatus", mock.Anything, trip.ID, entity.TripStatusPending, entity.TripStatusOngoing).
			Return(&ongoing, nil)

		resp, err := svc.UpdateTripStatus(context.Background(), Actor{UserID: owner}, trip.ID.String(),
			&request.UpdateTripStatusRequest{Status: "ONGOING"})

		require.NoError(t, err)
		assert.Equal(t, entity.TripStatusOngoing, resp.Status)
	})

	t.Run("skipping ahead", func(t *testing.T) {
		m := newMocks()
		svc := newTestTripService(t, m)
		owner := uuid.New()
		trip := bookableTrip(owner, 10, 10)

		m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)

		_, err := svc.UpdateTripStatus(context.Background(), Actor{UserID: owner}, trip.ID.String(),
			&request.UpdateTripStatusRequest{Status: "COMPLETED"})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("stale", func(t *testing.T) {
		m := newMocks()
		svc := newTestTripService(t, m)
		owner := uuid.New()
		trip := bookableTrip(owner, 10, 10)

		m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		m.trips.On("UpdateStatus", mock.Anything, trip.ID, entity.TripStatusPending, entity.TripStatusCancelled).
			Return(nil, nil)

		_, err := svc.UpdateTripStatus(context.Background(), Actor{UserID: owner}, trip.ID.String(),
			&request.UpdateTripStatusRequest{Status: "CANCELLED"})

		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestTripService_DeleteTrip(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	trip := bookableTrip(uuid.New(), 10, 10)

	m.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
	m.trips.On("SoftDelete", mock.Anything, trip.ID).Return(nil)

	err := svc.DeleteTrip(context.Background(), Actor{UserID: uuid.New(), Role: entity.RoleAdmin}, trip.ID.String())

	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestTripService_GetTrip_NotFound(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	id := uuid.New()

	m.trips.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetTrip(context.Background(), id.String())

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, MsgTripNotFound, err.Error())
}

func TestTripService_GetBookableTrips(t *testing.T) {
	m := newMocks()
	svc := newTestTripService(t, m)
	trips := []*entity.Trip{bookableTrip(uuid.New(), 4, 4), bookableTrip(uuid.New(), 6, 1)}

	m.trips.On("FindBookable", mock.Anything, 10, 0).Return(trips, nil)
	m.trips.On("CountBookable", mock.Anything).Return(int64(2), nil)

	resp, err := svc.GetBookableTrips(context.Background(), &request.PaginatedRequest{Page: 1})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.NotNil(t, resp.Data[0].TourismFeatures)
}
