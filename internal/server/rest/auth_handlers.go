package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophcms/internal/common"
)

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type addUserRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	UserRole string `json:"user_role"`
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeRequest(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	pair, err := a.svc.Users.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			returnJson(w, http.StatusUnauthorized, nil, "invalid credentials")
			return
		}
		a.writeError(w, r, err)
		return
	}

	returnOK(w, pair, "login successful")
}

// Refresh takes the refresh token from the Authorization header.
func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	pair, err := a.svc.Users.Refresh(r.Context(), credential(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, pair, "token refreshed")
}

func (a *API) AddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := decodeRequest(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	u, err := a.svc.Users.AddUser(r.Context(), req.UserID, req.Password, req.UserRole)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, u, "user created")
}
