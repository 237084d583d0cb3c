package handlers

import (
	"net/http"
)

// Health returns a liveness endpoint reporting the service name.
// It never touches the routing provider.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			writeError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": service,
		})
	}
}
