package server

import (
	"net/http"

	"github.com/Juanchoszs/StarWash/internal/store"
)

// RequireLoaded rejects requests until the startup load attempt has
// finished; operating on a half-hydrated store would silently lose
// entities on the next snapshot write.
func RequireLoaded(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !st.Loaded() {
				writeAuthError(w, http.StatusServiceUnavailable, "initial data load in progress")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
