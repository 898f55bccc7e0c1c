package adaptor

import (
	"net/http"
	"testing"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/dto/request"
	"trip-booking/internal/dto/response"
	"trip-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateTrip(t *testing.T) {
	tr := newTestRouter(t)
	owner := &usecase.Actor{UserID: uuid.New(), Role: entity.RoleOwner}
	tr.trips.On("CreateTrip", mock.Anything, *owner, mock.MatchedBy(func(req *request.CreateTripRequest) bool {
		return req.Origin == "Garowe" && req.TotalSeats == 14 && req.TourismFeatures[entity.FeatureTourGuide]
	})).Return(&response.TripResponse{ID: "t1", Origin: "Garowe", TotalSeats: 14, AvailableSeats: 14}, nil)

	rec := tr.do(owner, http.MethodPost, "/trips",
		`{"origin":"Garowe","destination":"Bosaso","date":"2026-06-01","time":"06:30","price":20,"totalSeats":14,"isTourism":true,"tourismFeatures":{"tourGuide":true}}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"availableSeats":14`)
}

func TestUpdateTripStatus_IllegalTransition(t *testing.T) {
	tr := newTestRouter(t)
	id := uuid.NewString()
	tr.trips.On("UpdateTripStatus", mock.Anything, mock.Anything, id, &request.UpdateTripStatusRequest{Status: "COMPLETED"}).
		Return(nil, apperr.NewValidation("Cannot change trip from PENDING to COMPLETED", nil))

	rec := tr.do(&usecase.Actor{UserID: uuid.New(), Role: entity.RoleOwner}, http.MethodPatch, "/trips/"+id+"/status", `{"status":"COMPLETED"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Cannot change trip from PENDING to COMPLETED"}`, rec.Body.String())
}

func TestGetPublicTrips_Defaults(t *testing.T) {
	tr := newTestRouter(t)
	tr.trips.On("GetBookableTrips", mock.Anything, &request.PaginatedRequest{Page: 1, PerPage: 10}).
		Return(response.NewPaginatedResponse([]response.TripResponse{}, 1, 10, 0), nil)

	rec := tr.do(nil, http.MethodGet, "/trips/public?page=-2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
