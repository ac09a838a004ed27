package httpapi

import (
	"fmt"
	"net/http"

	"yumexpress-be/internal/account"
	"yumexpress-be/internal/restaurant"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Location string `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	Role      account.Role    `json:"role"`
	AccountID string          `json:"accountId"`
	Account   account.Account `json:"account"`
}

type profileResponse struct {
	account.Account
	Menu []restaurant.MenuItem `json:"menu,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	address := req.Address
	if address == "" {
		address = req.Location
	}

	a, err := h.Accounts.Register(r.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Address:  address,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Stats.Counter("accounts_registered").Inc()
	writeData(w, http.StatusCreated, fmt.Sprintf("%s registered successfully", a.Role), a)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Stats.Counter("logins").Inc()
	writeData(w, http.StatusOK, "Login successful", loginResponse{
		Token:     res.Token,
		Role:      res.Account.Role,
		AccountID: res.Account.ID.String(),
		Account:   res.Account,
	})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, role := caller(r)

	a, err := h.Accounts.Profile(r.Context(), account.Role(role), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := profileResponse{Account: a}
	if a.Role == account.RoleRestaurant {
		rest, err := h.Restaurants.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Menu = rest.Menu
	}

	writeData(w, http.StatusOK, "", resp)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, role := caller(r)

	var params account.UpdateProfileParams
	if err := decodeJSON(w, r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.Accounts.UpdateProfile(r.Context(), account.Role(role), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if a.Role == account.RoleRestaurant {
		h.Restaurants.Invalidate(r.Context(), id)
	}

	writeData(w, http.StatusOK, "Profile updated successfully", a)
}

func (h *Handler) userDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := caller(r)
	writeData(w, http.StatusOK, "Welcome to the User Dashboard", map[string]string{"userId": id})
}

func (h *Handler) restaurantDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := caller(r)
	writeData(w, http.StatusOK, "Welcome to the Restaurant Dashboard", map[string]string{"restaurantId": id})
}
