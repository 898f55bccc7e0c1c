package adaptor

import (
	"net/http"

	"trip-booking/internal/dto/request"
	"trip-booking/internal/usecase"
	"trip-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TripHandler struct {
	service usecase.TripService
	log     *zap.Logger
}

func NewTripHandler(service usecase.TripService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		service: service,
		log:     log.With(zap.String("handler", "trip")),
	}
}

// CreateTrip handles POST /trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	trip, err := h.service.CreateTrip(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create trip")
		return
	}

	utils.ResponseCreated(w, trip)
}

// GetPublicTrips handles GET /trips/public
func (h *TripHandler) GetPublicTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.service.GetBookableTrips(r.Context(), parsePagination(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get bookable trips")
		return
	}

	utils.ResponseSuccess(w, trips)
}

// GetMyTrips handles GET /trips/mine
func (h *TripHandler) GetMyTrips(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	trips, err := h.service.GetOwnerTrips(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.log, err, "get owner trips")
		return
	}

	utils.ResponseSuccess(w, trips)
}

// GetTrip handles GET /trips/{id}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.service.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get trip")
		return
	}

	utils.ResponseSuccess(w, trip)
}

// UpdateTrip handles PUT /trips/{id}
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	trip, err := h.service.UpdateTrip(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update trip")
		return
	}

	utils.ResponseSuccess(w, trip)
}

// UpdateTripStatus handles PATCH /trips/{id}/status
func (h *TripHandler) UpdateTripStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateTripStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	trip, err := h.service.UpdateTripStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update trip status")
		return
	}

	utils.ResponseSuccess(w, trip)
}

// DeleteTrip handles DELETE /trips/{id}
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteTrip(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete trip")
		return
	}

	utils.ResponseMessage(w, "Trip deleted")
}
