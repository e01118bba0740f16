package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Default values used when the corresponding environment variable is unset.
const (
	DefaultBaseURL         = "https://mzigoego.com/api"
	DefaultTimeout         = 30 * time.Second
	DefaultStoragePrefix   = "mzigoego_"
	DefaultAccessTokenKey  = "access_token"
	DefaultRefreshTokenKey = "refresh_token"
)

// Config holds the runtime configuration for the client, sourced from
// environment variables. Every option has a default, so a zero-setup run
// works against the production API.
type Config struct {
	// API
	BaseURL string
	Timeout time.Duration

	// Storage
	StoragePath     string
	StoragePrefix   string
	AccessTokenKey  string
	RefreshTokenKey string

	// Feature flags
	EnableDevTools       bool
	EnableAnalytics      bool
	EnableCrashReporting bool
	EnableNetworkLogs    bool

	// Third-party service keys (optional, passed through to integrations)
	GoogleMapsAPIKey string
	SentryDSN        string
	AnalyticsKey     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win over
// values from the file.
func Load() Config {
	// godotenv.Load does not override variables that are already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	cfg := Config{
		BaseURL:         strings.TrimRight(fallback(os.Getenv("MZIGO_API_BASE_URL"), DefaultBaseURL), "/"),
		Timeout:         parseTimeout(os.Getenv("MZIGO_REQUEST_TIMEOUT")),
		StoragePath:     fallback(os.Getenv("MZIGO_STORAGE_PATH"), defaultStoragePath()),
		StoragePrefix:   fallback(os.Getenv("MZIGO_STORAGE_PREFIX"), DefaultStoragePrefix),
		AccessTokenKey:  fallback(os.Getenv("MZIGO_AUTH_TOKEN_KEY"), DefaultAccessTokenKey),
		RefreshTokenKey: fallback(os.Getenv("MZIGO_REFRESH_TOKEN_KEY"), DefaultRefreshTokenKey),

		EnableDevTools:       boolFlag("MZIGO_ENABLE_DEV_TOOLS"),
		EnableAnalytics:      boolFlag("MZIGO_ENABLE_ANALYTICS"),
		EnableCrashReporting: boolFlag("MZIGO_ENABLE_CRASH_REPORTING"),
		EnableNetworkLogs:    boolFlag("MZIGO_ENABLE_NETWORK_LOGS"),

		GoogleMapsAPIKey: os.Getenv("MZIGO_GOOGLE_MAPS_API_KEY"),
		SentryDSN:        os.Getenv("MZIGO_SENTRY_DSN"),
		AnalyticsKey:     os.Getenv("MZIGO_ANALYTICS_KEY"),
	}

	return cfg
}

// Validate logs a warning for recommended variables that are unset. It never
// fails: every option has a usable default.
func (c Config) Validate() bool {
	var missing []string
	if os.Getenv("MZIGO_API_BASE_URL") == "" {
		missing = append(missing, "MZIGO_API_BASE_URL")
	}
	if len(missing) > 0 {
		log.Warn().Strs("vars", missing).Msg("Missing environment variables, using defaults")
		return false
	}
	return true
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mzigo", "mzigo.db")
	}
	return filepath.Join(home, ".mzigo", "mzigo.db")
}

func parseTimeout(raw string) time.Duration {
	if raw == "" {
		return DefaultTimeout
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	log.Warn().Str("value", raw).Msg("Invalid MZIGO_REQUEST_TIMEOUT, using default")
	return DefaultTimeout
}

func boolFlag(name string) bool {
	return os.Getenv(name) == "true"
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
