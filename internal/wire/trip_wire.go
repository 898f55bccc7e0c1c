package wire

import (
	"net/http"

	"trip-booking/internal/adaptor"
	"trip-booking/internal/data/entity"
	"trip-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTrip(
	r chi.Router,
	trips *adaptor.TripHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/trips", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/public", trips.GetPublicTrips)
		r.Get("/{id}", trips.GetTrip)

		// ==================== OWNER ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Use(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin))

			r.Post("/", trips.CreateTrip)
			r.Get("/mine", trips.GetMyTrips)
			r.Put("/{id}", trips.UpdateTrip)
			r.Patch("/{id}/status", trips.UpdateTripStatus)
			r.Delete("/{id}", trips.DeleteTrip)
		})
	})
}
