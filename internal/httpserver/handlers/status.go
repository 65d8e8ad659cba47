package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool     `json:"ok"`
	ResultsCached *int     `json:"results_cached,omitempty"`
	LastScore     string   `json:"last_score,omitempty"`
	LastUpdate    string   `json:"last_update,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	Impact        string   `json:"impact,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type statusResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Status reports the state of live scoring, the result cache and redis
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cached := d.Index.Count()

		components := map[string]componentStatus{
			"live":  checkLive(d),
			"redis": checkRedis(r.Context(), d),
			"cache": {
				OK:            true,
				ResultsCached: &cached,
			},
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Live scoring configured but never succeeded
	if live, exists := components["live"]; exists && !live.OK {
		return "critical"
	}

	// Redis down = degraded (results lost on restart)
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "operational"
}

func checkLive(d deps.Deps) componentStatus {
	if !d.LiveEnabled() {
		return componentStatus{OK: true, Mode: "disabled"}
	}

	result, ok := d.Index.Live()
	if !ok {
		return componentStatus{
			OK:    false,
			Mode:  "waiting",
			Error: "log file not scored yet",
		}
	}

	score := result.Report.Score
	return componentStatus{
		OK:         true,
		Mode:       "watching",
		LastScore:  result.ScoredAt.Format("2006-01-02 15:04:05"),
		LastUpdate: d.Index.GetLastLive().Format("2006-01-02 15:04:05"),
		Score:      &score,
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "results-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "results-not-persisted",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "results-persisted",
	}
}
