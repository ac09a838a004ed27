package restaurant

import (
	"context"
	"math"
	"strings"

	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache is the read-through store for public restaurant reads.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

const listCacheKey = "restaurants:all"

func restaurantCacheKey(id uuid.UUID) string {
	return "restaurants:" + id.String()
}

type Service interface {
	List(ctx context.Context) ([]Restaurant, error)
	Get(ctx context.Context, id string) (Restaurant, error)
	UpdateProfile(ctx context.Context, actorID string, p UpdateProfileParams) (Restaurant, error)
	AddMenuItem(ctx context.Context, actorID string, in MenuItemInput) (MenuItem, error)
	UpdateMenuItem(ctx context.Context, actorID, itemID string, in MenuItemInput) (MenuItem, error)
	DeleteMenuItem(ctx context.Context, actorID, itemID string) error
	// Invalidate drops cached reads after the restaurant account changed elsewhere.
	Invalidate(ctx context.Context, restaurantID string)
}

type service struct {
	repo  Repository
	cache Cache
}

// NewService accepts a nil cache, in which case every read hits the database.
func NewService(repo Repository, cache Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) List(ctx context.Context) ([]Restaurant, error) {
	var cached []Restaurant
	if s.readCache(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	restaurants, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, listCacheKey, restaurants)
	return restaurants, nil
}

func (s *service) Get(ctx context.Context, id string) (Restaurant, error) {
	restaurantID, err := uuid.Parse(id)
	if err != nil {
		return Restaurant{}, ErrRestaurantNotFound
	}

	var cached Restaurant
	if s.readCache(ctx, restaurantCacheKey(restaurantID), &cached) {
		return cached, nil
	}

	rest, err := s.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return Restaurant{}, err
	}

	s.writeCache(ctx, restaurantCacheKey(restaurantID), rest)
	return rest, nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID string, p UpdateProfileParams) (Restaurant, error) {
	restaurantID, err := uuid.Parse(actorID)
	if err != nil {
		return Restaurant{}, ErrRestaurantNotFound
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Restaurant{}, apperr.Validation("name cannot be empty")
		}
		p.Name = &name
	}

	if err := s.repo.UpdateProfile(ctx, restaurantID, p); err != nil {
		return Restaurant{}, err
	}
	s.invalidate(ctx, restaurantID)

	return s.repo.GetByID(ctx, restaurantID)
}

func validateMenuItem(in MenuItemInput) (MenuItemInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price == nil || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0) {
		return in, ErrInvalidMenuItem
	}
	if *in.Price < 0 {
		return in, ErrNegativePrice
	}
	if *in.Price > MaxPrice {
		return in, ErrPriceTooLarge
	}
	in.Category = strings.TrimSpace(in.Category)
	in.Mood = strings.ToLower(strings.TrimSpace(in.Mood))
	in.Tags = NormalizeTags(in.Tags)
	return in, nil
}

func (s *service) AddMenuItem(ctx context.Context, actorID string, in MenuItemInput) (MenuItem, error) {
	restaurantID, err := uuid.Parse(actorID)
	if err != nil {
		return MenuItem{}, ErrRestaurantNotFound
	}

	in, err = validateMenuItem(in)
	if err != nil {
		return MenuItem{}, err
	}

	item, err := s.repo.AddMenuItem(ctx, MenuItem{
		RestaurantID: restaurantID,
		Name:         in.Name,
		Price:        *in.Price,
		Category:     in.Category,
		Description:  in.Description,
		Mood:         in.Mood,
		Tags:         in.Tags,
	})
	if err != nil {
		return MenuItem{}, err
	}

	s.invalidate(ctx, restaurantID)
	return item, nil
}

func (s *service) UpdateMenuItem(ctx context.Context, actorID, itemID string, in MenuItemInput) (MenuItem, error) {
	restaurantID, err := uuid.Parse(actorID)
	if err != nil {
		return MenuItem{}, ErrRestaurantNotFound
	}
	menuItemID, err := uuid.Parse(itemID)
	if err != nil {
		return MenuItem{}, ErrMenuItemNotFound
	}

	in, err = validateMenuItem(in)
	if err != nil {
		return MenuItem{}, err
	}

	item, err := s.repo.UpdateMenuItem(ctx, MenuItem{
		ID:           menuItemID,
		RestaurantID: restaurantID,
		Name:         in.Name,
		Price:        *in.Price,
		Category:     in.Category,
		Description:  in.Description,
		Mood:         in.Mood,
		Tags:         in.Tags,
	})
	if err != nil {
		return MenuItem{}, err
	}

	s.invalidate(ctx, restaurantID)
	return item, nil
}

func (s *service) DeleteMenuItem(ctx context.Context, actorID, itemID string) error {
	restaurantID, err := uuid.Parse(actorID)
	if err != nil {
		return ErrRestaurantNotFound
	}
	menuItemID, err := uuid.Parse(itemID)
	if err != nil {
		return ErrMenuItemNotFound
	}

	if err := s.repo.DeleteMenuItem(ctx, restaurantID, menuItemID); err != nil {
		return err
	}

	s.invalidate(ctx, restaurantID)
	return nil
}

func (s *service) Invalidate(ctx context.Context, restaurantID string) {
	if id, err := uuid.Parse(restaurantID); err == nil {
		s.invalidate(ctx, id)
	}
}

// Cache failures never fail a request.

func (s *service) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.FromCtx(ctx).Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *service) writeCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v); err != nil {
		logger.FromCtx(ctx).Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context, restaurantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey, restaurantCacheKey(restaurantID)); err != nil {
		logger.FromCtx(ctx).Warn("cache invalidation failed",
			zap.String("restaurant_id", restaurantID.String()),
			zap.Error(err),
		)
	}
}
