package response

import (
	"time"

	"trip-booking/internal/data/entity"
)

const DateLayout = "2006-01-02"

type TripResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Origin          string            `json:"origin"`
	Destination     string            `json:"destination"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Price           float64           `json:"price"`
	TotalSeats      int               `json:"totalSeats"`
	AvailableSeats  int               `json:"availableSeats"`
	Status          entity.TripStatus `json:"status"`
	IsTourism       bool              `json:"isTourism"`
	TourismFeatures map[string]bool   `json:"tourismFeatures"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func TripToResponse(t *entity.Trip) TripResponse {
	features := map[string]bool(t.TourismFeatures)
	if features == nil {
		features = map[string]bool{}
	}

	return TripResponse{
		ID:              t.ID.String(),
		UserID:          t.UserID.String(),
		Origin:          t.Origin,
		Destination:     t.Destination,
		Date:            t.Date.Format(DateLayout),
		Time:            t.Time,
		Price:           t.Price,
		TotalSeats:      t.TotalSeats,
		AvailableSeats:  t.AvailableSeats,
		Status:          t.Status,
		IsTourism:       t.IsTourism,
		TourismFeatures: features,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
