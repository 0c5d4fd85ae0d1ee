package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":5005"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget, must cover discovery

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DatabasePath string // sqlite database file

	DockerSocket   string        // docker daemon socket path
	AdapterTimeout time.Duration // per discovery adapter call
	SyncInterval   time.Duration // periodic discovery refresh (0 = disabled)

	// Redis snapshot cache (optional; empty addr = cache disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	CacheTTL            time.Duration
}

// Load builds the configuration. Precedence, highest first:
// environment variables, the optional YAML file named by
// FLARE_CONFIG_FILE, built-in defaults.
func Load() *Config {
	file := loadFile(os.Getenv("FLARE_CONFIG_FILE"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FLARE_LISTEN_PORT", fallback(file.ListenPort, ":5005")),
		ShutdownTimeout: mustDuration("FLARE_SHUTDOWN_TIMEOUT", fileDuration(file.ShutdownTimeout, 5*time.Second)),
		RequestTimeout:  mustDuration("FLARE_REQUEST_TIMEOUT", fileDuration(file.RequestTimeout, 15*time.Second)),

		// Logging
		LogLevel:  getenv("FLARE_LOG_LEVEL", fallback(file.LogLevel, "info")),
		PrettyLog: mustBool("FLARE_PRETTY_LOG", fileBool(file.PrettyLog, true)),

		// Storage
		DatabasePath: getenv("FLARE_DATABASE_PATH", fallback(file.DatabasePath, "flare.db")),

		// Discovery
		DockerSocket:   getenv("FLARE_DOCKER_SOCKET", fallback(file.DockerSocket, "/var/run/docker.sock")),
		AdapterTimeout: mustDuration("FLARE_ADAPTER_TIMEOUT", fileDuration(file.AdapterTimeout, 5*time.Second)),
		SyncInterval:   mustDuration("FLARE_SYNC_INTERVAL", fileDuration(file.SyncInterval, 0)),

		// Redis cache
		RedisAddr:           getenv("FLARE_REDIS_ADDR", file.Redis.Addr),
		RedisUser:           getenv("FLARE_REDIS_USERNAME", fallback(file.Redis.User, "default")),
		RedisPassword:       getenv("FLARE_REDIS_PASSWORD", file.Redis.Password),
		RedisDB:             getenvInt("FLARE_REDIS_DB", file.Redis.DB),
		RedisDialTimeout:    mustDuration("FLARE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("FLARE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("FLARE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("FLARE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("FLARE_REDIS_CONNECT_TIMEOUT", 15*time.Second),
		RedisRetryInterval:  mustDuration("FLARE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("FLARE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("FLARE_REDIS_PING_TIMEOUT", 5*time.Second),
		CacheTTL:            mustDuration("FLARE_CACHE_TTL", fileDuration(file.CacheTTL, 30*time.Second)),
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func fileBool(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func fileDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: invalid duration %q in config file", v))
	}
	return d
}
