package report

import "time"

// Result is a scored report as it is cached and served.
type Result struct {
	Key      string    `json:"key"`
	ScoredAt time.Time `json:"scored_at"`
	Report   *Report   `json:"report"`
}
