package httpapi

import (
	"context"

	"yumexpress-be/internal/account"
	"yumexpress-be/internal/mood"
	"yumexpress-be/internal/order"
	"yumexpress-be/internal/restaurant"

	"github.com/stretchr/testify/mock"
)

type MockAccounts struct{ mock.Mock }

func (m *MockAccounts) Register(ctx context.Context, in account.RegisterInput) (account.Account, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccounts) Login(ctx context.Context, email, password string) (account.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(account.LoginResult), args.Error(1)
}

func (m *MockAccounts) Profile(ctx context.Context, role account.Role, id string) (account.Account, error) {
	args := m.Called(ctx, role, id)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccounts) UpdateProfile(ctx context.Context, role account.Role, id string, p account.UpdateProfileParams) (account.Account, error) {
	args := m.Called(ctx, role, id, p)
	return args.Get(0).(account.Account), args.Error(1)
}

type MockRestaurants struct{ mock.Mock }

func (m *MockRestaurants) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurants) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurants) UpdateProfile(ctx context.Context, actorID string, p restaurant.UpdateProfileParams) (restaurant.Restaurant, error) {
	args := m.Called(ctx, actorID, p)
	return args.Get(0).(restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurants) AddMenuItem(ctx context.Context, actorID string, in restaurant.MenuItemInput) (restaurant.MenuItem, error) {
	args := m.Called(ctx, actorID, in)
	return args.Get(0).(restaurant.MenuItem), args.Error(1)
}

func (m *MockRestaurants) UpdateMenuItem(ctx context.Context, actorID, itemID string, in restaurant.MenuItemInput) (restaurant.MenuItem, error) {
	args := m.Called(ctx, actorID, itemID, in)
	return args.Get(0).(restaurant.MenuItem), args.Error(1)
}

func (m *MockRestaurants) DeleteMenuItem(ctx context.Context, actorID, itemID string) error {
	return m.Called(ctx, actorID, itemID).Error(0)
}

func (m *MockRestaurants) Invalidate(ctx context.Context, restaurantID string) {
	m.Called(ctx, restaurantID)
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) Create(ctx context.Context, userID string, in order.CreateOrderInput) (order.Order, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrders) Transition(ctx context.Context, orderID, requested, actorRestaurantID string) (order.Order, error) {
	args := m.Called(ctx, orderID, requested, actorRestaurantID)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrders) ListForUser(ctx context.Context, userID string) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrders) ListForRestaurant(ctx context.Context, restaurantID string) ([]order.Order, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrders) Get(ctx context.Context, orderID string, actor order.Actor) (order.Order, error) {
	args := m.Called(ctx, orderID, actor)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrders) TrackingQRCode(ctx context.Context, orderID string, actor order.Actor) ([]byte, error) {
	args := m.Called(ctx, orderID, actor)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

type MockMatcher struct{ mock.Mock }

func (m *MockMatcher) Match(ctx context.Context, text string) (mood.Result, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(mood.Result), args.Error(1)
}
