package wire

import (
	"net/http"

	"trip-booking/internal/adaptor"
	"trip-booking/internal/data/entity"
	"trip-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	handler *adaptor.Handler,
	auth func(http.Handler) http.Handler,
	limit func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	bookings := handler.Booking
	ownerOnly := middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin)

	r.Route("/bookings", func(r chi.Router) {
		r.Use(auth)

		// Mutations are rate limited per caller and route
		r.With(limit).Post("/", bookings.CreateBooking)
		r.With(limit).Post("/confirmPayment", bookings.ConfirmPayment)
		r.With(limit).Put("/{id}", bookings.UpdateBooking)
		r.With(limit).Delete("/{id}", bookings.DeleteBooking)

		r.Get("/myBookings", bookings.GetMyBookings)
		r.With(ownerOnly).Get("/ownerBookings", handler.Earnings.OwnerBookings)
		r.With(ownerOnly).Get("/ownerEarnings", handler.Earnings.OwnerEarnings)

		r.Get("/{id}", bookings.GetBooking)
		r.Get("/{id}/receipt", bookings.GetReceipt)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/bookings", func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireRole(log, entity.RoleAdmin))

		r.Get("/", bookings.GetAllBookings)
		r.Get("/{id}", bookings.GetBooking)
	})
}
