package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/order"
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

func (r *Repository) Create(ctx context.Context, orderEntity entities.Order) (*entities.Order, error) {
	orderModel := FromDomain(&orderEntity)

	query, args, err := qb.
		Insert("orders").
		Columns(
			"id", "customer_id", "customer_name", "customer_phone",
			"restaurant_id", "restaurant_name", "restaurant_latitude", "restaurant_longitude", "restaurant_address",
			"items", "subtotal", "delivery_fee", "rider_fee", "app_fee", "total",
			"delivery_latitude", "delivery_longitude", "delivery_address",
			"status", "payment_method", "payment_status", "special_instructions",
		).
		Values(
			orderModel.ID, orderModel.CustomerID, orderModel.CustomerName, orderModel.CustomerPhone,
			orderModel.RestaurantID, orderModel.RestaurantName,
			orderModel.RestaurantLatitude, orderModel.RestaurantLongitude, orderModel.RestaurantAddress,
			orderModel.Items, orderModel.Subtotal, orderModel.DeliveryFee, orderModel.RiderFee, orderModel.AppFee, orderModel.Total,
			orderModel.DeliveryLatitude, orderModel.DeliveryLongitude, orderModel.DeliveryAddress,
			orderModel.Status, orderModel.PaymentMethod, orderModel.PaymentStatus, orderModel.SpecialInstructions,
		).
		Suffix("RETURNING " + orderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	var created OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(created.scanTargets()...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, order.ErrRestaurantNotFound
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", order.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(&created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	var orderModel OrderDB
	err := r.querier.QueryRow(ctx, query, id).Scan(orderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(&orderModel), nil
}

func (r *Repository) Update(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	orderModifyModel := FromDomainModify(&orderModifyEntity)
	if orderModifyModel.ID == nil {
		return nil, fmt.Errorf("unexpected order repository update error: order id is required")
	}

	builder := qb.
		Update("orders")

	// опциональные поля
	if orderModifyModel.Status != nil {
		builder = builder.Set("status", orderModifyModel.Status)
	}
	if orderModifyModel.RiderID != nil {
		builder = builder.Set("rider_id", orderModifyModel.RiderID)
	}
	if orderModifyModel.RiderName != nil {
		builder = builder.Set("rider_name", orderModifyModel.RiderName)
	}
	if orderModifyModel.RiderPhone != nil {
		builder = builder.Set("rider_phone", orderModifyModel.RiderPhone)
	}
	if orderModifyModel.PaymentStatus != nil {
		builder = builder.Set("payment_status", orderModifyModel.PaymentStatus)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *orderModifyModel.ID}).
		Suffix("RETURNING " + orderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var orderModel OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(orderModel.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", order.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(&orderModel), nil
}

// List заказы клиента, ресторанов владельца или райдера, новые первыми.
func (r *Repository) List(ctx context.Context, filter entities.OrderListFilter, limit uint64) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns).
		From("orders")

	switch {
	case filter.CustomerID != nil:
		builder = builder.Where(sq.Eq{"customer_id": *filter.CustomerID})
	case filter.RestaurantOwnerID != nil:
		builder = builder.Where(sq.Expr(
			"restaurant_id IN (SELECT id FROM restaurants WHERE owner_id = ?)", *filter.RestaurantOwnerID))
	case filter.RiderAccountID != nil:
		builder = builder.Where(sq.Expr(
			"rider_id IN (SELECT id FROM riders WHERE account_id = ?)", *filter.RiderAccountID))
	default:
		return nil, fmt.Errorf("unexpected order repository list error: empty filter")
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 16)
	for rows.Next() {
		var orderModel OrderDB
		if err := rows.Scan(orderModel.scanTargets()...); err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

func (r *Repository) ListUnassigned(
	ctx context.Context,
	statuses []entities.OrderStatusType,
	limit uint64,
) ([]entities.Order, error) {
	statusValues := make([]string, len(statuses))
	for i, status := range statuses {
		statusValues[i] = status.String()
	}

	query, args, err := qb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{
			"status":   statusValues,
			"rider_id": nil,
		}).
		OrderBy("created_at", "id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository listunassigned error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository listunassigned error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, limit)
	for rows.Next() {
		var orderModel OrderDB
		if err := rows.Scan(orderModel.scanTargets()...); err != nil {
			return nil, fmt.Errorf("unexpected order repository listunassigned error: %w", err)
		}
		orderModels = append(orderModels, orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository listunassigned error: %w", err)
	}

	return ToDomainList(orderModels), nil
}
