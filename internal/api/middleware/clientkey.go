// Package middleware holds the request gates: the shared client key check,
// session authentication, the moderator role gate and login rate limiting.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// bearerToken extracts the credential from an Authorization header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// ClientKey requires every request to carry the shared application key as a
// bearer credential. It identifies the calling app, not a user, and is
// orthogonal to session auth.
func ClientKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := bearerToken(r.Header.Get("Authorization"))
			if supplied == "" {
				writeError(w, http.StatusUnauthorized, "Missing client credential")
				return
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				writeError(w, http.StatusUnauthorized, "Invalid client credential")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
