package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Importer  ImporterConfig
	Artifacts ArtifactsConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is an optional proxy URL for all sessions.
	Proxy string
}

// ImporterConfig controls import pipeline behavior. Every remote-page
// interaction is bounded by one of these timeouts so a stalled site
// cannot hang the pipeline.
type ImporterConfig struct {
	// ImportTimeout is the hard deadline for one whole import.
	ImportTimeout time.Duration // default: 180s

	// LoginWait bounds the initial wait for a credential-shaped input
	// after navigating to the login page.
	LoginWait time.Duration // default: 10s

	// FieldTimeout bounds each selector-candidate lookup.
	FieldTimeout time.Duration // default: 3s

	// TypeDelay is the per-keystroke delay when entering credentials.
	TypeDelay time.Duration // default: 50ms

	// SettleInterval is the fixed wait between a successful login and
	// report navigation.
	SettleInterval time.Duration // default: 5s

	// ScorePollRetries and ScorePollInterval bound the poll for
	// rendered score tokens on fixed-URL flows.
	ScorePollRetries  int           // default: 10
	ScorePollInterval time.Duration // default: 2s

	// ScrollPasses bounds the scroll-to-bottom passes that trigger
	// lazy-loaded report sections.
	ScrollPasses   int           // default: 8
	ScrollInterval time.Duration // default: 500ms

	// BatchDelay is the fixed inter-request delay between imports in a
	// batch. Batching policy, not a core resource constraint.
	BatchDelay time.Duration // default: 30s

	// ProfilesFile optionally points at a YAML file whose service
	// profiles are added to (or override) the built-in table.
	ProfilesFile string
}

// ArtifactsConfig controls where per-run artifacts are written
// (HTML snapshot, sidecar JSON, network capture JSON, debug screenshots).
type ArtifactsConfig struct {
	Dir string // default: "./artifacts"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("CREDIMPORT_HOST", "0.0.0.0"),
			Port: envIntOr("CREDIMPORT_PORT", 8080),
			Mode: envOr("CREDIMPORT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("CREDIMPORT_HEADLESS", true),
			NoSandbox:  envBoolOr("CREDIMPORT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("CREDIMPORT_BROWSER_BIN"),
			Proxy:      os.Getenv("CREDIMPORT_PROXY"),
		},
		Importer: ImporterConfig{
			ImportTimeout:     envDurationOr("CREDIMPORT_IMPORT_TIMEOUT", 180*time.Second),
			LoginWait:         envDurationOr("CREDIMPORT_LOGIN_WAIT", 10*time.Second),
			FieldTimeout:      envDurationOr("CREDIMPORT_FIELD_TIMEOUT", 3*time.Second),
			TypeDelay:         envDurationOr("CREDIMPORT_TYPE_DELAY", 50*time.Millisecond),
			SettleInterval:    envDurationOr("CREDIMPORT_SETTLE_INTERVAL", 5*time.Second),
			ScorePollRetries:  envIntOr("CREDIMPORT_SCORE_POLL_RETRIES", 10),
			ScorePollInterval: envDurationOr("CREDIMPORT_SCORE_POLL_INTERVAL", 2*time.Second),
			ScrollPasses:      envIntOr("CREDIMPORT_SCROLL_PASSES", 8),
			ScrollInterval:    envDurationOr("CREDIMPORT_SCROLL_INTERVAL", 500*time.Millisecond),
			BatchDelay:        envDurationOr("CREDIMPORT_BATCH_DELAY", 30*time.Second),
			ProfilesFile:      os.Getenv("CREDIMPORT_PROFILES_FILE"),
		},
		Artifacts: ArtifactsConfig{
			Dir: envOr("CREDIMPORT_ARTIFACTS_DIR", "./artifacts"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("CREDIMPORT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("CREDIMPORT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("CREDIMPORT_RATE_RPS", 1.0),
			Burst:             envIntOr("CREDIMPORT_RATE_BURST", 3),
		},
		Log: LogConfig{
			Level:  envOr("CREDIMPORT_LOG_LEVEL", "info"),
			Format: envOr("CREDIMPORT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
