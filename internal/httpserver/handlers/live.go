package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
)

// Live serves the latest score of the watched log file
func Live(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.LiveEnabled() {
			writeError(w, http.StatusNotFound, "live scoring is disabled")
			return
		}

		result, ok := d.Index.Live()
		if !ok {
			w.Header().Set("Retry-After", "5")
			writeError(w, http.StatusServiceUnavailable, "log file not scored yet")
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		writeResult(w, result, r.URL.Query().Get("format"))
	}
}
