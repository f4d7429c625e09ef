package restaurant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/service/order"
)

type RestaurantDB struct {
	ID        string
	OwnerID   string
	Name      string
	Latitude  float64
	Longitude float64
	Address   string
	Phone     string
	IsOpen    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// GetByID рестораны ведет каталог, здесь только чтение.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	query := `SELECT id, owner_id, name, latitude, longitude, address, phone, is_open, created_at, updated_at
		FROM restaurants
		WHERE id = $1`

	var restaurantModel RestaurantDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&restaurantModel.ID,
			&restaurantModel.OwnerID,
			&restaurantModel.Name,
			&restaurantModel.Latitude,
			&restaurantModel.Longitude,
			&restaurantModel.Address,
			&restaurantModel.Phone,
			&restaurantModel.IsOpen,
			&restaurantModel.CreatedAt,
			&restaurantModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("unexpected restaurant repository getbyid error: %w", err)
	}

	return ToDomain(&restaurantModel), nil
}

func ToDomain(r *RestaurantDB) *entities.Restaurant {
	if r == nil {
		return nil
	}

	return &entities.Restaurant{
		ID:      r.ID,
		OwnerID: r.OwnerID,
		Name:    r.Name,
		Location: entities.Coordinate{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Address:   r.Address,
		},
		Phone:  r.Phone,
		IsOpen: r.IsOpen,
	}
}
