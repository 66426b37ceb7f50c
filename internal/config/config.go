package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	ListenPort      string        // ex: "127.0.0.1:8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend   string // "file" | "redis"
	StorePath      string // JSON file for the file backend
	StoreKey       string // Redis key for the redis backend
	SeedFile       string // optional YAML replacing the embedded sample listings
	MaxImportBytes int64  // upper bound for an uploaded import file

	ReloadInterval time.Duration // serve: re-read the slot this often (0 = only on POST /api/reload)

	// Redis (only used with StoreBackend=redis)
	RedisAddr           string        // ex: "localhost:6379"
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

	AllowedCIDRS []string // restrict the HTTP API to these client IPs/CIDRs (empty = no filter)
	AllowedHosts []string // Host headers accepted by the /api routes (empty = no filter)
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	WriteBurst  int // write requests a client can make at once (0 = no limit)
	WritePerMin int // write requests a client regains per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MARKET_LISTEN_PORT", "127.0.0.1:8080"),
		ShutdownTimeout: mustDuration("MARKET_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MARKET_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARKET_PRETTY_LOG", true),

		// Storage
		StoreBackend:   strings.ToLower(getenv("MARKET_STORE_BACKEND", BackendFile)),
		StorePath:      getenv("MARKET_STORE_PATH", defaultStorePath()),
		StoreKey:       getenv("MARKET_STORE_KEY", "marketboard:listings"),
		SeedFile:       getenv("MARKET_SEED_FILE", ""),
		MaxImportBytes: int64(getenvInt("MARKET_MAX_IMPORT_BYTES", 5<<20)),
		ReloadInterval: mustDuration("MARKET_RELOAD_INTERVAL", 30*time.Second),

		// Redis settings
		RedisUser:           getenv("MARKET_REDIS_USERNAME", ""),
		RedisPassword:       getenv("MARKET_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MARKET_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 4),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedCIDRS: splitAndTrim(getenv("MARKET_ALLOWED_CIDRS", "127.0.0.1/32,::1/128")),
		AllowedHosts: splitAndTrim(getenv("MARKET_ALLOWED_HOSTS", "")),
		TrustProxy:   mustBool("MARKET_TRUST_PROXY", false),
		WriteBurst:   getenvInt("MARKET_WRITE_BURST", 30),
		WritePerMin:  getenvInt("MARKET_WRITE_PER_MIN", 60),
	}

	switch cfg.StoreBackend {
	case BackendFile:
	case BackendRedis:
		cfg.RedisAddr = requireEnv("MARKET_REDIS_ADDR")
	default:
		panic(fmt.Sprintf("❌ FATAL: MARKET_STORE_BACKEND must be %q or %q, got %q",
			BackendFile, BackendRedis, cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// defaultStorePath is ~/.marketboard/listings.json, or a file in the working
// directory when there is no home.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "marketboard-listings.json"
	}
	return filepath.Join(home, ".marketboard", "listings.json")
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
