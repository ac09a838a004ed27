// Package httpapi exposes the REST surface over gorilla/mux.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"yumexpress-be/internal/account"
	"yumexpress-be/internal/metrics"
	"yumexpress-be/internal/middleware"
	"yumexpress-be/internal/mood"
	"yumexpress-be/internal/order"
	"yumexpress-be/internal/restaurant"
	"yumexpress-be/internal/utils"

	"github.com/gorilla/mux"
)

type MoodMatcher interface {
	Match(ctx context.Context, text string) (mood.Result, error)
}

type Handler struct {
	Accounts    account.Service
	Restaurants restaurant.Service
	Orders      order.Service
	Mood        MoodMatcher

	Stats *metrics.Registry
}

func NewHandler(accounts account.Service, restaurants restaurant.Service, orders order.Service, matcher MoodMatcher) *Handler {
	return &Handler{
		Accounts:    accounts,
		Restaurants: restaurants,
		Orders:      orders,
		Mood:        matcher,
		Stats:       metrics.NewRegistry(),
	}
}

// RegisterRoutes wires every endpoint. Fixed paths are registered before
// their {id} siblings so mux matches them first.
func (h *Handler) RegisterRoutes(r *mux.Router, tokens middleware.TokenParser) {
	authed := middleware.Authenticate(tokens)
	withRole := func(role string, fn http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(role)(fn))
	}
	userOnly := func(fn http.HandlerFunc) http.Handler { return withRole(utils.RoleUser, fn) }
	restaurantOnly := func(fn http.HandlerFunc) http.Handler { return withRole(utils.RoleRestaurant, fn) }

	r.HandleFunc("/health", h.healthCheck).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	r.Handle("/profile", authed(http.HandlerFunc(h.getProfile))).Methods(http.MethodGet)
	r.Handle("/profile", authed(http.HandlerFunc(h.updateProfile))).Methods(http.MethodPut)
	r.Handle("/dashboard/user", userOnly(h.userDashboard)).Methods(http.MethodGet)
	r.Handle("/dashboard/restaurant", restaurantOnly(h.restaurantDashboard)).Methods(http.MethodGet)

	r.HandleFunc("/restaurants", h.listRestaurants).Methods(http.MethodGet)
	r.Handle("/restaurants/me", restaurantOnly(h.updateRestaurant)).Methods(http.MethodPut)
	r.Handle("/restaurants/me/menu", restaurantOnly(h.addMenuItem)).Methods(http.MethodPost)
	r.Handle("/restaurants/me/menu/{itemId}", restaurantOnly(h.updateMenuItem)).Methods(http.MethodPut)
	r.Handle("/restaurants/me/menu/{itemId}", restaurantOnly(h.deleteMenuItem)).Methods(http.MethodDelete)
	r.HandleFunc("/restaurants/{id}", h.getRestaurant).Methods(http.MethodGet)

	r.Handle("/orders", userOnly(h.createOrder)).Methods(http.MethodPost)
	r.Handle("/orders/user", userOnly(h.listUserOrders)).Methods(http.MethodGet)
	r.Handle("/orders/restaurant", restaurantOnly(h.listRestaurantOrders)).Methods(http.MethodGet)
	r.Handle("/orders/{id}", authed(http.HandlerFunc(h.getOrder))).Methods(http.MethodGet)
	r.Handle("/orders/{id}/qrcode", authed(http.HandlerFunc(h.getOrderQRCode))).Methods(http.MethodGet)
	r.Handle("/orders/{id}/status", restaurantOnly(h.updateOrderStatus)).Methods(http.MethodPut)

	r.HandleFunc("/ai/filter", h.moodFilter).Methods(http.MethodPost)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "OK", map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    h.Stats.Uptime().Round(time.Second).String(),
		"counters":  h.Stats.Snapshot(),
	})
}

// caller returns the identity stored by the auth gate.
func caller(r *http.Request) (id, role string) {
	id, _ = utils.GetUserIDFromContext(r.Context())
	return id, utils.GetUserRoleFromContext(r.Context())
}
