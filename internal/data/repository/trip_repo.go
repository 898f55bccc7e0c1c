package repository

import (
	"context"
	"fmt"

	"trip-booking/internal/apperr"
	"trip-booking/internal/data/entity"
	"trip-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Trip, error)
	Update(ctx context.Context, trip *entity.Trip) (*entity.Trip, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Business queries
	FindBookable(ctx context.Context, limit, offset int) ([]*entity.Trip, error)
	CountBookable(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (*entity.Trip, error)
}

type tripRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTripRepository(db database.PgxIface, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	query := `
		INSERT INTO trips (id, user_id, origin, destination, trip_date, trip_time, price, total_seats,
		                   available_seats, status, is_tourism, tourism_features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		trip.ID,
		trip.UserID,
		trip.Origin,
		trip.Destination,
		trip.Date,
		trip.Time,
		trip.Price,
		trip.TotalSeats,
		trip.AvailableSeats,
		trip.Status,
		trip.IsTourism,
		trip.TourismFeatures,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create trip",
			zap.Error(err),
			zap.String("trip_id", trip.ID.String()),
			zap.String("owner_id", trip.UserID.String()),
		)
		return fmt.Errorf("create trip %s: %w", trip.ID.String(), err)
	}

	return nil
}

// FindByID returns nil, nil for unknown or soft deleted trips.
func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = $1 AND NOT is_deleted
	`

	trip, err := scanTrip(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip by ID",
			zap.Error(err),
			zap.String("trip_id", id.String()),
		)
		return nil, fmt.Errorf("find trip by ID %s: %w", id.String(), err)
	}

	return trip, nil
}

func (r *tripRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1 AND NOT is_deleted
		ORDER BY trip_date DESC, trip_time DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find trips by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find trips by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *tripRepository) FindBookable(ctx context.Context, limit, offset int) ([]*entity.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE status = 'PENDING' AND NOT is_deleted
		ORDER BY trip_date, trip_time
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookable trips",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookable trips: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *tripRepository) CountBookable(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM trips WHERE status = 'PENDING' AND NOT is_deleted`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count bookable trips", zap.Error(err))
		return 0, fmt.Errorf("count bookable trips: %w", err)
	}

	return count, nil
}

// Update rewrites the editable fields of a PENDING trip. A capacity change
// shifts available_seats by the same delta in the same statement and is
// refused when the result would drop below zero. Update returns nil, nil when
// the trip is gone, no longer PENDING, or too many seats are sold.
func (r *tripRepository) Update(ctx context.Context, trip *entity.Trip) (*entity.Trip, error) {
	query := `
		UPDATE trips
		SET origin = $2, destination = $3, trip_date = $4, trip_time = $5, price = $6,
		    is_tourism = $7, tourism_features = $8,
		    available_seats = available_seats + ($9 - total_seats),
		    total_seats = $9,
		    updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted AND status = 'PENDING'
		  AND available_seats + ($9 - total_seats) >= 0
		RETURNING ` + tripColumns

	updated, err := scanTrip(r.db.QueryRow(ctx, query,
		trip.ID,
		trip.Origin,
		trip.Destination,
		trip.Date,
		trip.Time,
		trip.Price,
		trip.IsTourism,
		trip.TourismFeatures,
		trip.TotalSeats,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update trip",
			zap.Error(err),
			zap.String("trip_id", trip.ID.String()),
		)
		return nil, fmt.Errorf("update trip %s: %w", trip.ID.String(), err)
	}

	return updated, nil
}

// UpdateStatus moves the trip from one status to another. It returns nil, nil
// when the trip is not in the expected status any more.
func (r *tripRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (*entity.Trip, error) {
	query := `
		UPDATE trips
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND NOT is_deleted
		RETURNING ` + tripColumns

	trip, err := scanTrip(r.db.QueryRow(ctx, query, id, from, to))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update trip status",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("update trip %s status to %s: %w", id.String(), to, err)
	}

	return trip, nil
}

func (r *tripRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE trips SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete trip",
			zap.Error(err),
			zap.String("trip_id", id.String()),
		)
		return fmt.Errorf("delete trip %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NewNotFound("Trip not found")
	}

	r.log.Info("Trip deleted", zap.String("trip_id", id.String()))
	return nil
}

func (r *tripRepository) collect(rows pgx.Rows) ([]*entity.Trip, error) {
	trips := make([]*entity.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			r.log.Error("Failed to scan trip row", zap.Error(err))
			return nil, fmt.Errorf("scan trip row: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trip rows: %w", err)
	}

	return trips, nil
}
