package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App      AppConfig
	Injector InjectorConfig
	Log      LogConfig
	Debug    DebugConfig
}

type AppConfig struct {
	Name string
	Env  string // local | production | testing
}

// InjectorConfig tunes the bootstrap sequence.
type InjectorConfig struct {
	// Namespace overrides the package path derived from the root type.
	Namespace string
	// Recursive includes sub-packages of the namespace.
	Recursive bool
	// FailFast stops bootstrap at the first failure instead of logging it
	// and carrying on.
	FailFast bool
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console; empty picks by environment
}

type DebugConfig struct {
	Addr string // bean inspector listen address; empty disables it
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name: env("APP_NAME", "go-inject"),
			Env:  env("APP_ENV", "local"),
		},
		Injector: InjectorConfig{
			Namespace: env("INJECT_NAMESPACE", ""),
			Recursive: envBool("INJECT_RECURSIVE", true),
			FailFast:  envBool("INJECT_FAIL_FAST", false),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", ""),
		},
		Debug: DebugConfig{
			Addr: env("DEBUG_ADDR", ""),
		},
	}
}

// Default returns the configuration used when none is supplied: the values
// Load would produce with an empty environment.
func Default() *Config {
	return &Config{
		App:      AppConfig{Name: "go-inject", Env: "local"},
		Injector: InjectorConfig{Recursive: true},
		Log:      LogConfig{Level: "info"},
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
