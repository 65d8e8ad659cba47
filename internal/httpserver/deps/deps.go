package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/wfdscore/internal/index"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	redisstore "github.com/MrSnakeDoc/wfdscore/internal/store/redis"
)

type Deps struct {
	Logger              logger.Logger
	StartTime           time.Time
	Version             string
	Commit              string
	BuildDate           string
	GoVersion           string
	TimeNow             func() time.Time   // for testing, defaults to time.Now
	AllowedHosts        []string           // Host headers allowed to trigger a reload
	AllowedCIDRS        []string           // IPs allowed to trigger a reload / read status
	TrustProxy          bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient         *redis.Client      // Redis client connection (nil when redis is disabled)
	Store               *redisstore.Store  // Redis result store (nil when redis is disabled)
	Index               *index.ResultIndex // In-memory result index
	ResultTTL           time.Duration      // How long ad-hoc results stay cached
	MaxBodyBytes        int64              // Max size of a posted log
	RateBurst           int                // /score burst per client IP
	RateRefillPerMinute int                // /score refill per client IP
	LiveFile            string             // Path of the watched log (empty = live scoring disabled)
	ReloadTrigger       chan struct{}      // Channel to trigger a manual live re-score (nil when disabled)
}

// LiveEnabled reports whether a log file is being scored continuously.
func (d Deps) LiveEnabled() bool {
	return d.LiveFile != ""
}

// Now returns the injected clock, or time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
