package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"scorekeeper/internal/auth"
	"scorekeeper/pkg/logger"
)

type contextKey int

const (
	userKey contextKey = iota
)

// User is the identity carried by a validated session token.
type User struct {
	ID       uint
	Username string
}

type TokenAuth struct {
	tokens auth.TokenService
	log    logger.Logger
}

func NewTokenAuth(tokens auth.TokenService, log logger.Logger) *TokenAuth {
	return &TokenAuth{tokens: tokens, log: log}
}

// Middleware rejects requests without a valid token. The token is read from
// an Authorization: Bearer header first, then from the auth cookie.
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			token, ok = auth.TokenFromCookie(r)
		}
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err, "path", r.URL.Path)
			unauthorized(w)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), User{ID: userID, Username: claims.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == 0 {
		return User{}, false
	}
	return user, true
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
