package httpapi

import (
	"crypto/subtle"
	"net/http"
)

const adminTokenHeader = "X-Admin-Token"

// adminOnly gates moderation endpoints behind a shared secret. This is
// the entire extent of authorization here: the core itself stays
// authorization-agnostic and trusts gated callers.
func adminOnly(token string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplied := r.Header.Get(adminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			writeErrorJSON(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}
