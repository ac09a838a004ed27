package httpapi

import (
	"net/http"
	"strconv"

	"yumexpress-be/internal/order"

	"github.com/gorilla/mux"
)

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)

	var in order.CreateOrderInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Stats.Counter("orders_created").Inc()
	writeData(w, http.StatusCreated, "Order placed successfully", o)
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)

	orders, err := h.Orders.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", orders)
}

func (h *Handler) listRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := caller(r)

	orders, err := h.Orders.ListForRestaurant(r.Context(), restaurantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, role := caller(r)

	o, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"], order.Actor{ID: id, Role: role})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", o)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, role := caller(r)

	png, err := h.Orders.TrackingQRCode(r.Context(), mux.Vars(r)["id"], order.Actor{ID: id, Role: role})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := caller(r)

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Transition(r.Context(), mux.Vars(r)["id"], req.Status, restaurantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Stats.Counter("order_status_changes").Inc()
	writeData(w, http.StatusOK, "Order status updated", o)
}
