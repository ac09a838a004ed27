package main

import (
	"context"
	"errors"
	"testing"

	"yumexpress-be/internal/restaurant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct{ mock.Mock }

func (m *MockStore) ListMenuItems(ctx context.Context) ([]restaurant.MenuItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]restaurant.MenuItem), args.Error(1)
}

func (m *MockStore) SetMenuItemTags(ctx context.Context, itemID uuid.UUID, mood string, tags []string) error {
	return m.Called(ctx, itemID, mood, tags).Error(0)
}

func (m *MockStore) ClearTags(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestAssign(t *testing.T) {
	t.Run("Tags every item", func(t *testing.T) {
		store := new(MockStore)
		ice := restaurant.MenuItem{ID: uuid.New(), Name: "Ice Cream Sundae", Category: "Dessert"}
		plain := restaurant.MenuItem{ID: uuid.New(), Name: "Water"}

		store.On("ListMenuItems", mock.Anything).Return([]restaurant.MenuItem{ice, plain}, nil)
		store.On("SetMenuItemTags", mock.Anything, ice.ID, "joy", mock.AnythingOfType("[]string")).Return(nil)
		store.On("SetMenuItemTags", mock.Anything, plain.ID, "neutral", []string{"regular"}).Return(nil)

		require.NoError(t, run(context.Background(), store, "assign"))
		store.AssertExpectations(t)
	})

	t.Run("Stops on first failure", func(t *testing.T) {
		store := new(MockStore)
		first := restaurant.MenuItem{ID: uuid.New(), Name: "Soup"}
		second := restaurant.MenuItem{ID: uuid.New(), Name: "Salad"}

		store.On("ListMenuItems", mock.Anything).Return([]restaurant.MenuItem{first, second}, nil)
		store.On("SetMenuItemTags", mock.Anything, first.ID, mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := run(context.Background(), store, "assign")

		assert.ErrorContains(t, err, "Soup")
		store.AssertNotCalled(t, "SetMenuItemTags", mock.Anything, second.ID, mock.Anything, mock.Anything)
	})
}

func TestClear(t *testing.T) {
	store := new(MockStore)
	store.On("ClearTags", mock.Anything).Return(int64(12), nil)

	require.NoError(t, run(context.Background(), store, "clear"))
	store.AssertExpectations(t)
}

func TestUnknownMode(t *testing.T) {
	err := run(context.Background(), new(MockStore), "shuffle")
	assert.ErrorContains(t, err, "unknown mode")
}
