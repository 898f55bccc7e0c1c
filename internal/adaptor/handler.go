package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/internal/dto/request"
	"trip-booking/internal/usecase"
	"trip-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking  *BookingHandler
	Trip     *TripHandler
	Earnings *EarningsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.Booking, log),
		Trip:     NewTripHandler(service.Trip, log),
		Earnings: NewEarningsHandler(service.Earnings, log),
	}
}

// actorFrom reads the caller set by the auth middleware.
func actorFrom(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Actor{UserID: userID, Role: entity.UserRole(role)}, true
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), 10),
	)
}

// writeServiceError maps use case errors to HTTP responses. Anything that is
// not a known kind is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	appErr := apperr.As(err)

	var details any
	if len(appErr.Details) > 0 {
		details = appErr.Details
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		utils.ResponseNotFound(w, appErr.Message)
	case errors.Is(err, apperr.ErrForbidden):
		utils.ResponseForbidden(w, appErr.Message)
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrInsufficientSeats),
		errors.Is(err, apperr.ErrAlreadyPaid),
		errors.Is(err, apperr.ErrValidation):
		utils.ResponseBadRequest(w, appErr.Message, details)
	default:
		log.Error("Failed to "+op, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
