package ride

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/ride"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, rideEntity entities.Ride) (*entities.Ride, error) {
	rideModel := FromDomain(&rideEntity)

	query, args, err := qb.
		Insert("rides").
		SetMap(map[string]any{
			"id":                rideModel.ID,
			"customer_id":       rideModel.CustomerID,
			"customer_name":     rideModel.CustomerName,
			"customer_phone":    rideModel.CustomerPhone,
			"pickup_latitude":   rideModel.PickupLatitude,
			"pickup_longitude":  rideModel.PickupLongitude,
			"pickup_address":    rideModel.PickupAddress,
			"dropoff_latitude":  rideModel.DropoffLatitude,
			"dropoff_longitude": rideModel.DropoffLongitude,
			"dropoff_address":   rideModel.DropoffAddress,
			"stops":             rideModel.Stops,
			"distance_km":       rideModel.DistanceKm,
			"base_fare":         rideModel.BaseFare,
			"per_km_rate":       rideModel.PerKmRate,
			"estimated_fare":    rideModel.EstimatedFare,
			"actual_fare":       rideModel.ActualFare,
			"cancellation_fee":  rideModel.CancellationFee,
			"status":            rideModel.Status,
			"payment_method":    rideModel.PaymentMethod,
			"payment_status":    rideModel.PaymentStatus,
			"scheduled_time":    rideModel.ScheduledTime,
		}).
		Suffix("RETURNING " + rideColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected ride repository create error: %w", err)
	}

	var created RideDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(created.scanTargets()...)
	if err != nil {
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", ride.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected ride repository create error: %w", err)
	}

	return ToDomain(&created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	query := `SELECT ` + rideColumns + `
		FROM rides
		WHERE id = $1`

	var rideModel RideDB
	err := r.querier.QueryRow(ctx, query, id).Scan(rideModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ride.ErrRideNotFound
		}
		return nil, fmt.Errorf("unexpected ride repository getbyid error: %w", err)
	}

	return ToDomain(&rideModel), nil
}

func (r *Repository) Update(ctx context.Context, rideModifyEntity entities.RideModify) (*entities.Ride, error) {
	rideModifyModel := FromDomainModify(&rideModifyEntity)
	if rideModifyModel.ID == nil {
		return nil, fmt.Errorf("unexpected ride repository update error: ride id is required")
	}

	builder := qb.
		Update("rides")

	// опциональные поля
	if rideModifyModel.Status != nil {
		builder = builder.Set("status", rideModifyModel.Status)
	}
	if rideModifyModel.RiderID != nil {
		builder = builder.Set("rider_id", rideModifyModel.RiderID)
	}
	if rideModifyModel.RiderName != nil {
		builder = builder.Set("rider_name", rideModifyModel.RiderName)
	}
	if rideModifyModel.RiderPhone != nil {
		builder = builder.Set("rider_phone", rideModifyModel.RiderPhone)
	}
	if rideModifyModel.RiderVehicle != nil {
		builder = builder.Set("rider_vehicle", rideModifyModel.RiderVehicle)
	}
	if rideModifyModel.PaymentStatus != nil {
		builder = builder.Set("payment_status", rideModifyModel.PaymentStatus)
	}
	if rideModifyModel.PickedUpAt != nil {
		builder = builder.Set("picked_up_at", rideModifyModel.PickedUpAt)
	}
	if rideModifyModel.DroppedOffAt != nil {
		builder = builder.Set("dropped_off_at", rideModifyModel.DroppedOffAt)
	}
	if rideModifyModel.CancelledAt != nil {
		builder = builder.Set("cancelled_at", rideModifyModel.CancelledAt)
	}
	if rideModifyModel.CancellationReason != nil {
		builder = builder.Set("cancellation_reason", rideModifyModel.CancellationReason)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *rideModifyModel.ID}).
		Suffix("RETURNING " + rideColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected ride repository update error: %w", err)
	}

	var rideModel RideDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(rideModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ride.ErrRideNotFound
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", ride.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected ride repository update error: %w", err)
	}

	return ToDomain(&rideModel), nil
}

// ListPendingDue старые первыми, отложенные поездки попадают в выборку когда scheduled_time <= dueAt.
func (r *Repository) ListPendingDue(ctx context.Context, dueAt time.Time, limit uint64) ([]entities.Ride, error) {
	query, args, err := qb.
		Select(rideColumns).
		From("rides").
		Where(sq.Eq{
			"status":   entities.RidePending.String(),
			"rider_id": nil,
		}).
		Where(sq.Or{
			sq.Eq{"scheduled_time": nil},
			sq.LtOrEq{"scheduled_time": dueAt},
		}).
		OrderBy("created_at", "id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected ride repository listpendingdue error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected ride repository listpendingdue error: %w", err)
	}
	defer rows.Close()

	rideModels := make([]RideDB, 0, limit)
	for rows.Next() {
		var rideModel RideDB
		if err := rows.Scan(rideModel.scanTargets()...); err != nil {
			return nil, fmt.Errorf("unexpected ride repository listpendingdue error: %w", err)
		}
		rideModels = append(rideModels, rideModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected ride repository listpendingdue error: %w", err)
	}

	return ToDomainList(rideModels), nil
}
