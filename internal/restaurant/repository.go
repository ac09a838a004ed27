package restaurant

import (
	"context"
	"database/sql"
	"errors"

	"yumexpress-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (Restaurant, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p UpdateProfileParams) error

	AddMenuItem(ctx context.Context, item MenuItem) (MenuItem, error)
	UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error)
	DeleteMenuItem(ctx context.Context, restaurantID, itemID uuid.UUID) error

	FindMenuItemsByTags(ctx context.Context, tags []string, limit int) ([]MenuItemMatch, error)
	ListMenuItems(ctx context.Context) ([]MenuItem, error)
	SetMenuItemTags(ctx context.Context, itemID uuid.UUID, mood string, tags []string) error
	ClearTags(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const restaurantColumns = "id, name, email, type, address, contact, photo, description, created_at, updated_at"

const menuItemColumns = "id, restaurant_id, position, name, price, category, description, mood, tags"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRestaurant(s scanner) (Restaurant, error) {
	var r Restaurant
	err := s.Scan(&r.ID, &r.Name, &r.Email, &r.Type, &r.Address, &r.Contact,
		&r.Photo, &r.Description, &r.CreatedAt, &r.UpdatedAt)
	r.Menu = []MenuItem{}
	return r, err
}

func scanMenuItem(s scanner) (MenuItem, error) {
	var m MenuItem
	var tags pq.StringArray
	err := s.Scan(&m.ID, &m.RestaurantID, &m.Position, &m.Name, &m.Price,
		&m.Category, &m.Description, &m.Mood, &tags)
	m.Tags = []string(tags)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m, err
}

func (r *repository) List(ctx context.Context) ([]Restaurant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants ORDER BY created_at DESC")
	if err != nil {
		log.Error("failed to query restaurants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	restaurants := []Restaurant{}
	index := map[uuid.UUID]int{}
	ids := []string{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			log.Error("failed to scan restaurant", zap.Error(err))
			return nil, err
		}
		index[rest.ID] = len(restaurants)
		ids = append(ids, rest.ID.String())
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return restaurants, nil
	}

	menuRows, err := r.db.QueryContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE restaurant_id = ANY($1::uuid[]) ORDER BY position",
		pq.Array(ids),
	)
	if err != nil {
		log.Error("failed to query menus", zap.Error(err))
		return nil, err
	}
	defer menuRows.Close()

	for menuRows.Next() {
		item, err := scanMenuItem(menuRows)
		if err != nil {
			log.Error("failed to scan menu item", zap.Error(err))
			return nil, err
		}
		if i, ok := index[item.RestaurantID]; ok {
			restaurants[i].Menu = append(restaurants[i].Menu, item)
		}
	}

	return restaurants, menuRows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Restaurant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.String("restaurant_id", id.String()),
	)

	rest, err := scanRestaurant(r.db.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Restaurant{}, ErrRestaurantNotFound
		}
		log.Error("failed to fetch restaurant", zap.Error(err))
		return Restaurant{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE restaurant_id = $1 ORDER BY position", id)
	if err != nil {
		log.Error("failed to query menu", zap.Error(err))
		return Restaurant{}, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return Restaurant{}, err
		}
		rest.Menu = append(rest.Menu, item)
	}

	return rest, rows.Err()
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, p UpdateProfileParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("restaurant_id", id.String()),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE restaurants
		SET name = COALESCE($2, name),
			type = COALESCE($3, type),
			address = COALESCE($4, address),
			contact = COALESCE($5, contact),
			photo = COALESCE($6, photo),
			description = COALESCE($7, description),
			updated_at = NOW()
		WHERE id = $1`,
		id, p.Name, p.Type, p.Address, p.Contact, p.Photo, p.Description,
	)
	if err != nil {
		log.Error("failed to update restaurant", zap.Error(err))
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// AddMenuItem appends the item after the restaurant's last position.
func (r *repository) AddMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddMenuItem"),
		zap.String("restaurant_id", item.RestaurantID.String()),
	)

	created, err := scanMenuItem(r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, position, name, price, category, description, mood, tags)
		SELECT $1, COALESCE(MAX(position) + 1, 0), $2, $3, $4, $5, $6, $7
		FROM menu_items WHERE restaurant_id = $1
		RETURNING `+menuItemColumns,
		item.RestaurantID, item.Name, item.Price, item.Category, item.Description, item.Mood, pq.Array(item.Tags),
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return MenuItem{}, ErrRestaurantNotFound
		}
		log.Error("failed to insert menu item", zap.Error(err))
		return MenuItem{}, err
	}

	log.Info("menu item created", zap.String("item_id", created.ID.String()))
	return created, nil
}

func (r *repository) UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateMenuItem"),
		zap.String("item_id", item.ID.String()),
	)

	updated, err := scanMenuItem(r.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name = $3, price = $4, category = $5, description = $6, mood = $7, tags = $8
		WHERE id = $1 AND restaurant_id = $2
		RETURNING `+menuItemColumns,
		item.ID, item.RestaurantID, item.Name, item.Price, item.Category, item.Description, item.Mood, pq.Array(item.Tags),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MenuItem{}, ErrMenuItemNotFound
		}
		log.Error("failed to update menu item", zap.Error(err))
		return MenuItem{}, err
	}

	return updated, nil
}

func (r *repository) DeleteMenuItem(ctx context.Context, restaurantID, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2", itemID, restaurantID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete menu item",
			zap.String("item_id", itemID.String()),
			zap.Error(err),
		)
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// FindMenuItemsByTags returns items sharing at least one tag with tags.
// Stored tags are already normalized so the overlap operator is enough.
func (r *repository) FindMenuItemsByTags(ctx context.Context, tags []string, limit int) ([]MenuItemMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.restaurant_id, m.position, m.name, m.price, m.category, m.description, m.mood, m.tags, r.name
		FROM menu_items m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.tags && $1
		ORDER BY m.name, m.id
		LIMIT $2`,
		pq.Array(tags), limit,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query menu items by tags", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []MenuItemMatch{}
	for rows.Next() {
		var m MenuItemMatch
		var itemTags pq.StringArray
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Position, &m.Name, &m.Price,
			&m.Category, &m.Description, &m.Mood, &itemTags, &m.RestaurantName); err != nil {
			return nil, err
		}
		m.Tags = []string(itemTags)
		items = append(items, m)
	}

	return items, rows.Err()
}

func (r *repository) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items ORDER BY restaurant_id, position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) SetMenuItemTags(ctx context.Context, itemID uuid.UUID, mood string, tags []string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE menu_items SET mood = $2, tags = $3 WHERE id = $1", itemID, mood, pq.Array(tags))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *repository) ClearTags(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE menu_items SET mood = '', tags = '{}'")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
