package httpapi

import (
	"net/http"

	"yumexpress-be/internal/restaurant"

	"github.com/gorilla/mux"
)

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	list, err := h.Restaurants.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", list)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := caller(r)

	var params restaurant.UpdateProfileParams
	if err := decodeJSON(w, r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	rest, err := h.Restaurants.UpdateProfile(r.Context(), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Restaurant updated successfully", rest)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := caller(r)

	var in restaurant.MenuItemInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Restaurants.AddMenuItem(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Menu item added", item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := caller(r)

	var in restaurant.MenuItemInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Restaurants.UpdateMenuItem(r.Context(), id, mux.Vars(r)["itemId"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Menu item updated", item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := caller(r)

	if err := h.Restaurants.DeleteMenuItem(r.Context(), id, mux.Vars(r)["itemId"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Menu item deleted", nil)
}
