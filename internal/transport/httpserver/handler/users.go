package handler

import (
	"errors"
	"net/http"

	userdomain "scorekeeper/internal/domain/user"
	"scorekeeper/pkg/logger"
)

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,max=72"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type userResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// RegisterUser creates the account and signs the new user in.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	log := h.logger(r)
	result, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		writeUserError(w, log, "users.register", err, 0)
		return
	}

	if _, err := h.startSession(w, result.ID, result.Username); err != nil {
		log.InternalError("users.register: start session failed", err, "user_id", result.ID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": toUserResponse(result)})
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeNotFound(w, "user_not_found", "user not found")
		return
	}

	result, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		writeUserError(w, h.logger(r), "users.get", err, userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserResponse(result)})
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeNotFound(w, "user_not_found", "user not found")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if fields := h.validate(req); fields != nil {
		writeValidationError(w, fields)
		return
	}

	result, err := h.Users.UpdateUser(r.Context(), userID, userdomain.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeUserError(w, h.logger(r), "users.update", err, userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserResponse(result)})
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeNotFound(w, "user_not_found", "user not found")
		return
	}

	if err := h.Users.DeleteUser(r.Context(), userID); err != nil {
		writeUserError(w, h.logger(r), "users.delete", err, userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeUserError(w http.ResponseWriter, log logger.Logger, op string, err error, userID uint) {
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound):
		log.BusinessError(op+": user not found", err, "user_id", userID)
		writeNotFound(w, "user_not_found", "user not found")
	case errors.Is(err, userdomain.ErrUsernameTaken):
		log.BusinessError(op+": username taken", err, "user_id", userID)
		writeError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, userdomain.ErrEmailTaken):
		log.BusinessError(op+": email taken", err, "user_id", userID)
		writeError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, userdomain.ErrUserExists):
		log.BusinessError(op+": user exists", err, "user_id", userID)
		writeError(w, http.StatusConflict, "user_exists", err.Error())
	default:
		log.InternalError(op+": failed", err, "user_id", userID)
		writeInternalError(w)
	}
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}
