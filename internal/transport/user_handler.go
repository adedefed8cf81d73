package transport

import (
	"net/http"

	"warehouse-be/internal/user"
	"warehouse-be/internal/utils"
)

type createUserRequest struct {
	Login    string    `json:"login"`
	Password string    `json:"password"`
	Role     user.Role `json:"role"`
}

type updateRolesRequest struct {
	Roles map[int64]user.Role `json:"roles"`
}

type deleteUsersRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var in createUserRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Users.Register(r.Context(), in.Login, in.Password, in.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, u)
}

func (h *handler) updateRoles(w http.ResponseWriter, r *http.Request) {
	var in updateRolesRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Users.UpdateRoles(r.Context(), in.Roles); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteUsers(w http.ResponseWriter, r *http.Request) {
	var in deleteUsersRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.Users.Delete(r.Context(), in.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
