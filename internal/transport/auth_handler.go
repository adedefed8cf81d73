package transport

import (
	"net/http"

	"warehouse-be/internal/auth"
	"warehouse-be/internal/user"
	"warehouse-be/internal/utils"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  user.Identity `json:"user"`
}

// register is public self-registration; new accounts are Customers.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Users.Register(r.Context(), in.Login, in.Password, user.RoleCustomer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, u)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.Users.Authenticate(r.Context(), in.Login, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.Users.IssueToken(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetAccessToken(w, token, h.TokenTTL, h.SecureCookies)
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: id})
}
