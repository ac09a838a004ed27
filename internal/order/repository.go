package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"yumexpress-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	// UpdateStatus only applies when the stored status still equals from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) (Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Accounts are joined with LEFT JOIN because order references may dangle.
const orderSelect = `
	SELECT o.id, o.user_id, o.restaurant_id, o.items, o.total, o.status, o.delivery_address,
		o.created_at, o.updated_at,
		r.name, u.name, u.email, u.contact, u.address
	FROM %s o
	LEFT JOIN restaurants r ON r.id = o.restaurant_id
	LEFT JOIN users u ON u.id = o.user_id`

var (
	selectOrders = fmt.Sprintf(orderSelect, "orders")

	updateStatusQuery = `
	WITH o AS (
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING *
	)` + fmt.Sprintf(orderSelect, "o")
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (Order, error) {
	var (
		o                                  Order
		restName, userName, email, contact sql.NullString
		address                            sql.NullString
	)

	err := s.Scan(
		&o.ID, &o.UserID, &o.RestaurantID, &o.Items, &o.Total, &o.Status, &o.DeliveryAddress,
		&o.CreatedAt, &o.UpdatedAt,
		&restName, &userName, &email, &contact, &address,
	)
	if err != nil {
		return Order{}, err
	}

	o.RestaurantName = deletedRestaurantName
	if restName.Valid {
		o.RestaurantName = restName.String
	}

	o.Requester = &Requester{ID: o.UserID, Name: unknownUserName}
	if userName.Valid {
		o.Requester.Name = userName.String
		o.Requester.Email = email.String
		o.Requester.Contact = contact.String
		o.Requester.Address = address.String
	}

	return o, nil
}

func (r *repository) Create(ctx context.Context, o Order) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", o.UserID.String()),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, restaurant_id, items, total, status, delivery_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		o.UserID, o.RestaurantID, o.Items, o.Total, string(o.Status), o.DeliveryAddress,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return Order{}, err
	}

	log.Info("order created", zap.String("order_id", o.ID.String()))
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+" WHERE o.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch order",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return Order{}, err
	}
	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to OrderStatus) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, updateStatusQuery, id, string(from), string(to)))
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("status changed concurrently", zap.String("expected", string(from)))
		return Order{}, ErrStatusChanged
	}
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return Order{}, err
	}

	log.Info("order status updated", zap.String("from", string(from)), zap.String("to", string(to)))
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return r.list(ctx, selectOrders+" WHERE o.user_id = $1 ORDER BY o.created_at DESC", userID)
}

func (r *repository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Order, error) {
	return r.list(ctx, selectOrders+" WHERE o.restaurant_id = $1 ORDER BY o.created_at DESC", restaurantID)
}

func (r *repository) list(ctx context.Context, query string, id uuid.UUID) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
