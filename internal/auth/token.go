package auth

import (
	"net/http"
	"strings"
)

const CookieName = "access_token"

var headerSchemes = []string{"Bearer ", "Token "}

// ExtractAccessToken reads the token from the access_token cookie, falling
// back to an "Authorization: Bearer|Token <jwt>" header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	for _, scheme := range headerSchemes {
		if strings.HasPrefix(authHeader, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(authHeader, scheme))
		}
	}

	return ""
}
