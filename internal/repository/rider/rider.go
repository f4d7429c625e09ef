package rider

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/rider"
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

// CreateIfAbsent создает профиль, если у аккаунта его еще нет, иначе возвращает
// существующий. Второй результат true, если профиль создан этим вызовом.
// Вставка не падает на unique внутри транзакции, поэтому транзакция остается живой.
func (r *Repository) CreateIfAbsent(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, bool, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)
	if riderModifyModel.AccountID == nil {
		return nil, false, fmt.Errorf("unexpected rider repository create error: account id is required")
	}

	values := map[string]interface{}{
		"account_id": *riderModifyModel.AccountID,
	}
	// опциональные поля, остальное берет DEFAULT схемы
	if riderModifyModel.Name != nil {
		values["name"] = *riderModifyModel.Name
	}
	if riderModifyModel.Phone != nil {
		values["phone"] = *riderModifyModel.Phone
	}
	if riderModifyModel.VehicleType != nil {
		values["vehicle_type"] = *riderModifyModel.VehicleType
	}
	if riderModifyModel.Status != nil {
		values["status"] = *riderModifyModel.Status
	}
	if riderModifyModel.IsAvailable != nil {
		values["is_available"] = *riderModifyModel.IsAvailable
	}
	if riderModifyModel.ServiceMode != nil {
		values["service_mode"] = *riderModifyModel.ServiceMode
	}
	if riderModifyModel.Latitude != nil {
		values["latitude"] = *riderModifyModel.Latitude
		values["longitude"] = *riderModifyModel.Longitude
		values["address"] = *riderModifyModel.Address
	}

	query, args, err := qb.
		Insert("riders").
		SetMap(values).
		Suffix("ON CONFLICT (account_id) DO NOTHING RETURNING " + riderColumns).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("unexpected rider repository create error: %w", err)
	}

	var riderModel RiderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, getErr := r.GetByAccountID(ctx, *riderModifyModel.AccountID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		if repository.IsConflict(err) {
			return nil, false, fmt.Errorf("%w: %w", rider.ErrConflict, err)
		}
		return nil, false, fmt.Errorf("unexpected rider repository create error: %w", err)
	}

	return ToDomain(&riderModel), true, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Rider, error) {
	query := `SELECT ` + riderColumns + `
		FROM riders
		WHERE id = $1`

	var riderModel RiderDB
	err := r.querier.QueryRow(ctx, query, id).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}
		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

func (r *Repository) GetByAccountID(ctx context.Context, accountID string) (*entities.Rider, error) {
	query := `SELECT ` + riderColumns + `
		FROM riders
		WHERE account_id = $1`

	var riderModel RiderDB
	err := r.querier.QueryRow(ctx, query, accountID).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}
		return nil, fmt.Errorf("unexpected rider repository getbyaccountid error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

func (r *Repository) Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)

	builder := qb.
		Update("riders")

	// опциональные поля
	if riderModifyModel.Name != nil {
		builder = builder.Set("name", riderModifyModel.Name)
	}
	if riderModifyModel.Phone != nil {
		builder = builder.Set("phone", riderModifyModel.Phone)
	}
	if riderModifyModel.VehicleType != nil {
		builder = builder.Set("vehicle_type", riderModifyModel.VehicleType)
	}
	if riderModifyModel.Status != nil {
		builder = builder.Set("status", riderModifyModel.Status)
	}
	if riderModifyModel.IsAvailable != nil {
		builder = builder.Set("is_available", riderModifyModel.IsAvailable)
	}
	if riderModifyModel.ServiceMode != nil {
		builder = builder.Set("service_mode", riderModifyModel.ServiceMode)
	}
	if riderModifyModel.Latitude != nil {
		builder = builder.
			Set("latitude", riderModifyModel.Latitude).
			Set("longitude", riderModifyModel.Longitude).
			Set("address", riderModifyModel.Address)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	switch {
	case riderModifyModel.ID != nil:
		builder = builder.Where(sq.Eq{"id": *riderModifyModel.ID})
	case riderModifyModel.AccountID != nil:
		builder = builder.Where(sq.Eq{"account_id": *riderModifyModel.AccountID})
	default:
		return nil, fmt.Errorf("unexpected rider repository update error: rider id is required")
	}

	query, args, err := builder.
		Suffix("RETURNING " + riderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	var riderModel RiderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", rider.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

// SetAvailability одним UPDATE: райдер с активной работой остается busy.
func (r *Repository) SetAvailability(ctx context.Context, id int64, accepting bool) (*entities.Rider, error) {
	query := `UPDATE riders
		SET is_available = $2::boolean,
			status = CASE
				WHEN current_order_id IS NOT NULL OR current_ride_id IS NOT NULL THEN 'busy'
				WHEN $2::boolean THEN 'available'
				ELSE 'offline'
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + riderColumns

	var riderModel RiderDB
	err := r.querier.QueryRow(ctx, query, id, accepting).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", rider.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected rider repository setavailability error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

// AssignJob compare-and-set: работа ставится только райдеру без текущей работы.
func (r *Repository) AssignJob(ctx context.Context, assignment entities.RiderAssignment) (*entities.Rider, error) {
	column, ok := jobColumn(assignment.Kind)
	if !ok {
		return nil, fmt.Errorf("unexpected rider repository assignjob error: unknown job kind %q", assignment.Kind)
	}

	builder := qb.
		Update("riders").
		Set("status", entities.RiderBusy.String()).
		Set(column, assignment.JobID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":               assignment.RiderID,
			"current_order_id": nil,
			"current_ride_id":  nil,
		})

	if assignment.RequireAvailable {
		builder = builder.Where(sq.Eq{
			"status":       entities.RiderAvailable.String(),
			"is_available": true,
		})
	}

	query, args, err := builder.
		Suffix("RETURNING " + riderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository assignjob error: %w", err)
	}

	var riderModel RiderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.assignFailure(ctx, assignment.RiderID)
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", rider.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected rider repository assignjob error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

// ReleaseJob снимает работу, только если у райдера именно она.
func (r *Repository) ReleaseJob(ctx context.Context, release entities.RiderRelease) (*entities.Rider, error) {
	column, ok := jobColumn(release.Kind)
	if !ok {
		return nil, fmt.Errorf("unexpected rider repository releasejob error: unknown job kind %q", release.Kind)
	}

	builder := qb.
		Update("riders").
		Set(column, nil).
		// ушедший в офлайн во время работы райдер после нее остается офлайн
		Set("status", sq.Expr("CASE WHEN is_available THEN ? ELSE ? END",
			entities.RiderAvailable.String(), entities.RiderOffline.String())).
		Set("updated_at", sq.Expr("NOW()"))

	if release.Completed {
		counter := counterColumn(release.Kind)
		builder = builder.Set(counter, sq.Expr(counter+" + 1"))
	}

	query, args, err := builder.
		Where(sq.Eq{
			"id":   release.RiderID,
			column: release.JobID,
		}).
		Suffix("RETURNING " + riderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository releasejob error: %w", err)
	}

	var riderModel RiderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(riderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, release.RiderID); getErr != nil {
				return nil, getErr
			}
			return nil, rider.ErrRiderNotAssigned
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", rider.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected rider repository releasejob error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

// ListDispatchCandidates свободные райдеры с локацией, для ride_service только в этом режиме.
func (r *Repository) ListDispatchCandidates(ctx context.Context, mode entities.ServiceModeType) ([]entities.Rider, error) {
	builder := qb.
		Select(riderColumns).
		From("riders").
		Where(sq.Eq{
			"status":           entities.RiderAvailable.String(),
			"is_available":     true,
			"current_order_id": nil,
			"current_ride_id":  nil,
		}).
		Where(sq.NotEq{
			"latitude":  nil,
			"longitude": nil,
		}).
		OrderBy("id")

	if mode == entities.ServiceModeRideService {
		builder = builder.Where(sq.Eq{"service_mode": mode.String()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository listdispatchcandidates error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository listdispatchcandidates error: %w", err)
	}
	defer rows.Close()

	riderModels := make([]RiderDB, 0, 16)
	for rows.Next() {
		var riderModel RiderDB
		if err := rows.Scan(riderModel.scanTargets()...); err != nil {
			return nil, fmt.Errorf("unexpected rider repository listdispatchcandidates error: %w", err)
		}
		riderModels = append(riderModels, riderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected rider repository listdispatchcandidates error: %w", err)
	}

	return ToDomainList(riderModels), nil
}

// assignFailure объясняет, почему CAS не сработал.
func (r *Repository) assignFailure(ctx context.Context, riderID int64) error {
	current, err := r.GetByID(ctx, riderID)
	if err != nil {
		return err
	}
	if current.HasActiveJob() {
		return rider.ErrRiderBusy
	}
	return rider.ErrRiderUnavailable
}
