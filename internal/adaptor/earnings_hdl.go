package adaptor

import (
	"net/http"

	"trip-booking/internal/usecase"
	"trip-booking/pkg/utils"

	"go.uber.org/zap"
)

type EarningsHandler struct {
	service usecase.EarningsService
	log     *zap.Logger
}

func NewEarningsHandler(service usecase.EarningsService, log *zap.Logger) *EarningsHandler {
	return &EarningsHandler{
		service: service,
		log:     log.With(zap.String("handler", "earnings")),
	}
}

// OwnerBookings handles GET /bookings/ownerBookings
func (h *EarningsHandler) OwnerBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.OwnerBookings(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.log, err, "get owner bookings")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// OwnerEarnings handles GET /bookings/ownerEarnings
func (h *EarningsHandler) OwnerEarnings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.OwnerEarnings(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.log, err, "get owner earnings")
		return
	}

	utils.ResponseSuccess(w, resp)
}
