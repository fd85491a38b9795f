package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	LogLevel     string
	HTTPAddr     string
	HTTPTimeout  time.Duration
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	PropertyFile string

	AdvisorBase    string
	AdvisorKey     string
	AdvisorModel   string
	AdvisorTimeout time.Duration
	AdvisorRPS     int

	IngestFile string
	Workers    int
	BatchSize  int

	CacheTTL  time.Duration
	LedgerTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		LogLevel:     env("LOG_LEVEL", "info"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		HTTPTimeout:  time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		MetricsAddr:  env("METRICS_ADDR", ""), // empty disables the side listener
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/balancer?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoi("REDIS_DB", 0),
		RedisPass:    env("REDIS_PASSWORD", ""),
		PropertyFile: env("PROPERTY_FILE", ""),

		AdvisorBase:    env("ADVISOR_BASE_URL", "https://api.anthropic.com/v1"),
		AdvisorKey:     env("ADVISOR_API_KEY", ""),
		AdvisorModel:   env("ADVISOR_MODEL", "claude-sonnet-4-20250514"),
		AdvisorTimeout: time.Duration(atoi("ADVISOR_TIMEOUT_SECONDS", 20)) * time.Second,
		AdvisorRPS:     atoi("ADVISOR_RPS", 2),

		IngestFile: env("INGEST_FILE", "reservations.json"),
		Workers:    atoi("INGEST_WORKERS", 8),
		BatchSize:  atoi("INGEST_BATCH", 200),

		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		LedgerTTL: time.Duration(atoi("LEDGER_TTL_HOURS", 72)) * time.Hour,
	}
	// the advisory fallback has to be answered inside the request deadline
	if c.HTTPTimeout <= c.AdvisorTimeout {
		bumped := c.AdvisorTimeout + 5*time.Second
		log.Warn().
			Dur("http_timeout", c.HTTPTimeout).
			Dur("advisor_timeout", c.AdvisorTimeout).
			Dur("using", bumped).
			Msg("HTTP_TIMEOUT_SECONDS must exceed ADVISOR_TIMEOUT_SECONDS")
		c.HTTPTimeout = bumped
	}
	if c.AdvisorKey == "" {
		log.Warn().Msg("ADVISOR_API_KEY is empty; recommendations use the local heuristic")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
