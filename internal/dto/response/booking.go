package response

import (
	"time"

	"trip-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	TripID          string               `json:"tripId"`
	UserID          string               `json:"userId"`
	SeatsBooked     int                  `json:"seatsBooked"`
	Status          entity.BookingStatus `json:"status"`
	PaymentStatus   entity.PaymentStatus `json:"paymentStatus"`
	PaymentVerified bool                 `json:"paymentVerified"`
	PaymentMethod   *string              `json:"paymentMethod"`
	TransactionID   *string              `json:"transactionId"`
	AmountPaid      float64              `json:"amountPaid"`
	BookingTime     time.Time            `json:"bookingTime"`
	ConfirmedAt     *time.Time           `json:"confirmedAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Trip            *TripSummaryResponse `json:"trip,omitempty"`
	Traveler        *TravelerResponse    `json:"traveler,omitempty"`
}

type TripSummaryResponse struct {
	ID          string            `json:"id"`
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Price       float64           `json:"price"`
	Status      entity.TripStatus `json:"status"`
}

type TravelerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type PaymentLogResponse struct {
	ID            string                `json:"id"`
	TransactionID string                `json:"transactionId"`
	Amount        float64               `json:"amount"`
	Outcome       entity.PaymentOutcome `json:"outcome"`
	CreatedAt     time.Time             `json:"createdAt"`
}

type BookingDetailResponse struct {
	BookingResponse
	Payments []PaymentLogResponse `json:"payments"`
}

type ConfirmPaymentResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type OwnerBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Balance  float64           `json:"balance"`
}

type OwnerEarningsResponse struct {
	TotalEarnings float64 `json:"totalEarnings"`
	TotalBookings int64   `json:"totalBookings"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		TripID:          b.TripID.String(),
		UserID:          b.UserID.String(),
		SeatsBooked:     b.SeatsBooked,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		PaymentVerified: b.PaymentVerified,
		PaymentMethod:   b.PaymentMethod,
		TransactionID:   b.TransactionID,
		AmountPaid:      b.AmountPaid,
		BookingTime:     b.BookingTime,
		ConfirmedAt:     b.ConfirmedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BookingWithTripToResponse includes the traveler contact only when withTraveler is set.
func BookingWithTripToResponse(d *entity.BookingWithTrip, withTraveler bool) BookingResponse {
	resp := BookingToResponse(&d.Booking)
	resp.Trip = &TripSummaryResponse{
		ID:          d.Trip.ID.String(),
		Origin:      d.Trip.Origin,
		Destination: d.Trip.Destination,
		Date:        d.Trip.Date.Format(DateLayout),
		Time:        d.Trip.Time,
		Price:       d.Trip.Price,
		Status:      d.Trip.Status,
	}
	if withTraveler {
		resp.Traveler = &TravelerResponse{
			ID:    d.Traveler.ID.String(),
			Name:  d.Traveler.Name,
			Phone: d.Traveler.Phone,
		}
	}
	return resp
}

func PaymentLogToResponse(l *entity.PaymentLog) PaymentLogResponse {
	return PaymentLogResponse{
		ID:            l.ID.String(),
		TransactionID: l.TransactionID,
		Amount:        l.Amount,
		Outcome:       l.Outcome,
		CreatedAt:     l.CreatedAt,
	}
}
