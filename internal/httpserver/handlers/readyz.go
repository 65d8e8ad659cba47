package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz is ready once the watched log (if any) has been scored at least once
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.LiveEnabled() {
			if _, ok := d.Index.Live(); !ok {
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
					Ready:  false,
					Reason: "waiting for first live score",
				})
				return
			}
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
