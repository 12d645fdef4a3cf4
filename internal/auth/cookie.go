package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
)

const (
	AuthCookieName = "scorekeeper_auth"
	UserCookieName = "scorekeeper_user"
)

type authCookie struct {
	UserID uint   `json:"userID"`
	Token  string `json:"token"`
}

type userCookie struct {
	UserID uint `json:"userID"`
}

// SessionCookies returns the httpOnly auth cookie carrying the token and the
// script-readable user cookie carrying only the user id.
func SessionCookies(userID uint, token string, secure bool) ([]*http.Cookie, error) {
	authValue, err := encodeCookie(authCookie{UserID: userID, Token: token})
	if err != nil {
		return nil, err
	}
	userValue, err := encodeCookie(userCookie{UserID: userID})
	if err != nil {
		return nil, err
	}

	return []*http.Cookie{
		{
			Name:     AuthCookieName,
			Value:    authValue,
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
		{
			Name:     UserCookieName,
			Value:    userValue,
			Path:     "/",
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
	}, nil
}

// ExpiredSessionCookies deletes both session cookies on the client.
func ExpiredSessionCookies(secure bool) []*http.Cookie {
	cookies := make([]*http.Cookie, 0, 2)
	for _, name := range []string{AuthCookieName, UserCookieName} {
		cookies = append(cookies, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == AuthCookieName,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return cookies
}

// TokenFromCookie extracts the token stored in the auth cookie.
func TokenFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return "", false
	}

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", false
	}

	var payload authCookie
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Token == "" {
		return "", false
	}
	return payload.Token, true
}

// Cookie values cannot carry quotes or commas, so the JSON is URL-escaped.
func encodeCookie(payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(data)), nil
}
