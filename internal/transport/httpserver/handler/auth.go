package handler

import (
	"errors"
	"net/http"

	"scorekeeper/internal/auth"
	userdomain "scorekeeper/internal/domain/user"
	"scorekeeper/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type meResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	log := h.logger(r)
	result, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			log.BusinessError("auth.login: invalid credentials", err)
			writeError(w, http.StatusBadRequest, "invalid_credentials", "invalid email or password")
			return
		}
		log.InternalError("auth.login: authenticate failed", err)
		writeInternalError(w)
		return
	}

	token, err := h.startSession(w, result.ID, result.Username)
	if err != nil {
		log.InternalError("auth.login: start session failed", err, "user_id", result.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Username: result.Username, Token: token})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	for _, cookie := range auth.ExpiredSessionCookies(h.secureCookies) {
		http.SetCookie(w, cookie)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Username: user.Username})
}

// startSession issues a token for the user and sets both session cookies.
func (h *Handlers) startSession(w http.ResponseWriter, userID uint, username string) (string, error) {
	token, err := h.Tokens.Issue(userID, username)
	if err != nil {
		return "", err
	}
	cookies, err := auth.SessionCookies(userID, token, h.secureCookies)
	if err != nil {
		return "", err
	}
	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
	}
	return token, nil
}
