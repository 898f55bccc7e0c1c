package request

type CreateBookingRequest struct {
	TripID      string `json:"tripId" validate:"required,uuid"`
	SeatsBooked int    `json:"seatsBooked" validate:"required,gt=0"`
}

// UpdateBookingRequest drives PUT /bookings/{id}. Status PENDING with a seat
// count edits a pending booking without changing its status.
type UpdateBookingRequest struct {
	Status      string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	SeatsBooked *int   `json:"seatsBooked,omitempty" validate:"omitempty,gt=0"`
}

type ConfirmPaymentRequest struct {
	BookingID     string `json:"bookingId" validate:"required,uuid"`
	TransactionID string `json:"transactionId" validate:"required,max=128"`
	PaymentMethod string `json:"paymentMethod,omitempty" validate:"omitempty,max=32"`
}
