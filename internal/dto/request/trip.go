package request

type CreateTripRequest struct {
	Origin          string          `json:"origin" validate:"required,max=120"`
	Destination     string          `json:"destination" validate:"required,max=120"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string          `json:"time" validate:"required,clock"`
	Price           float64         `json:"price" validate:"gte=0"`
	TotalSeats      int             `json:"totalSeats" validate:"required,gt=0,max=500"`
	IsTourism       bool            `json:"isTourism"`
	TourismFeatures map[string]bool `json:"tourismFeatures,omitempty"`
}

// UpdateTripRequest is a partial update; nil fields are left as they are.
type UpdateTripRequest struct {
	Origin          *string          `json:"origin,omitempty" validate:"omitempty,min=1,max=120"`
	Destination     *string          `json:"destination,omitempty" validate:"omitempty,min=1,max=120"`
	Date            *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time            *string          `json:"time,omitempty" validate:"omitempty,clock"`
	Price           *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	TotalSeats      *int             `json:"totalSeats,omitempty" validate:"omitempty,gt=0,max=500"`
	IsTourism       *bool            `json:"isTourism,omitempty"`
	TourismFeatures *map[string]bool `json:"tourismFeatures,omitempty"`
}

type UpdateTripStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ONGOING COMPLETED CANCELLED"`
}
