package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Live scoring of a log file on disk (optional)
	LogFile        string        // path to the contest log (empty = live scoring disabled)
	Power          int           // declared output power in watts, required with LogFile
	Delimiter      string        // field delimiter (empty = any whitespace)
	SkipInvalid    bool          // skip unparseable lines instead of failing the whole log
	ReloadInterval time.Duration // interval to re-score LogFile (default: 1m)

	// Ad-hoc results posted to /score
	ResultTTL    time.Duration // how long cached results are kept (default: 24h)
	GCInterval   time.Duration // interval to prune expired results from memory (default: 1h)
	MaxBodyBytes int64         // max size of a posted log (default: 1 MiB)

	// Redis (optional)
	RedisAddr           string        // ex: "localhost:6379" (empty = redis disabled)
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Access restrictions
	AllowedHosts        []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS        []string // optional, restrict /reload, /readyz and /status to these IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy          bool     // true => trust X-Forwarded-For headers
	RateBurst           int      // /score burst per client IP
	RateRefillPerMinute int      // /score tokens refilled per client IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("WFD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("WFD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("WFD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WFD_PRETTY_LOG", true),

		// Live scoring
		LogFile:        getenv("WFD_LOG_FILE", ""),
		Delimiter:      os.Getenv("WFD_DELIMITER"),
		SkipInvalid:    mustBool("WFD_SKIP_INVALID", false),
		ReloadInterval: mustDuration("WFD_RELOAD_INTERVAL", time.Minute),

		// Ad-hoc results
		ResultTTL:    mustDuration("WFD_RESULT_TTL", 24*time.Hour),
		GCInterval:   mustDuration("WFD_GC_INTERVAL", time.Hour),
		MaxBodyBytes: int64(getenvInt("WFD_MAX_BODY_BYTES", 1<<20)),

		// Redis settings
		RedisAddr:           getenv("WFD_REDIS_ADDR", ""),
		RedisUser:           getenv("WFD_REDIS_USERNAME", ""),
		RedisPassword:       getenv("WFD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("WFD_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts:        splitAndTrim(getenv("WFD_ALLOWED_HOSTS", "")),
		AllowedCIDRS:        parseAllowedIPs(getenv("WFD_ALLOWED_CIDRS", "")),
		TrustProxy:          mustBool("WFD_TRUST_PROXY", false),
		RateBurst:           getenvInt("WFD_RATE_BURST", 20),
		RateRefillPerMinute: getenvInt("WFD_RATE_REFILL_PER_MIN", 60),
	}

	// Power is only meaningful (and then mandatory) when a log file is watched
	if cfg.LogFile != "" {
		cfg.Power = requireEnvInt("WFD_POWER")
		if cfg.Power < 0 {
			panic(fmt.Sprintf("❌ FATAL: WFD_POWER must be >= 0, got %d", cfg.Power))
		}
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether a redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// LiveEnabled reports whether a log file is scored continuously.
func (c *Config) LiveEnabled() bool {
	return c.LogFile != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := requireEnv(key)
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
