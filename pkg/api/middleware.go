package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gisdevelope/mapdb/pkg/store"
)

// requireAPIKey rejects requests whose X-API-Key header does not match
// the configured key. The comparison is constant-time so the key
// cannot be probed byte by byte.
func requireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if got == "" {
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON emits the response envelope; every handler reply goes
// through here.
func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func sendSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, APIResponse{Success: false, Error: message})
}

// sendStoreError maps store failures onto HTTP statuses: void recids
// are 404, rollback on a memory-only store is a client error, a closed
// store is unavailable, anything else is a server-side failure.
func sendStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsVoid(err):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrRollbackUnsupported):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrClosed):
		sendError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		sendError(w, err.Error(), http.StatusInternalServerError)
	}
}
