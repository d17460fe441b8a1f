package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every knob the server reads from the environment.
type Config struct {
	Addr        string // listen address, e.g. ":6758"
	DatabaseURL string // postgres DSN
	SecretKey   string // session cookie signing key

	// Admin sessions get an extended lifetime once the elevated flag is
	// set via the admin login flow.
	AdminSessionLifetime time.Duration

	// RateLimit is the blanket request ceiling, e.g. "100/hour".
	RateLimit string

	// TemplatesDir holds the page templates.
	TemplatesDir string

	// Connection pool tuning, mirroring the store defaults we ran with
	// in production (recycle at 5 minutes, bounded pool).
	PoolMaxOpen     int
	PoolMaxIdle     int
	PoolMaxLifetime time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                 getenv("ADDR", ":6758"),
		DatabaseURL:          getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=openjobs port=5432 sslmode=disable"),
		SecretKey:            os.Getenv("SECRET_KEY"),
		AdminSessionLifetime: time.Duration(getenvInt("SESSION_LIFETIME_DAYS", 7)) * 24 * time.Hour,
		RateLimit:            getenv("RATE_LIMIT", "100/hour"),
		TemplatesDir:         getenv("TEMPLATES_DIR", "web/templates"),
		PoolMaxOpen:          getenvInt("DB_MAX_OPEN_CONNS", 20),
		PoolMaxIdle:          getenvInt("DB_MAX_IDLE_CONNS", 5),
		PoolMaxLifetime:      time.Duration(getenvInt("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("config: SECRET_KEY must be set")
	}
	return cfg, nil
}

// ParseRate turns a ceiling like "100/hour" into requests-per-second plus
// the bucket capacity.
func ParseRate(s string) (float64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("config: malformed rate %q, want <count>/<unit>", s)
	}
	count, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || count <= 0 {
		return 0, 0, fmt.Errorf("config: malformed rate count %q", parts[0])
	}
	var per time.Duration
	switch strings.TrimSpace(parts[1]) {
	case "second":
		per = time.Second
	case "minute":
		per = time.Minute
	case "hour":
		per = time.Hour
	case "day":
		per = 24 * time.Hour
	default:
		return 0, 0, fmt.Errorf("config: unknown rate unit %q", parts[1])
	}
	return float64(count) / per.Seconds(), count, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
