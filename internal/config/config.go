package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var defaultCORSOrigins = []string{
	"http://localhost:80",
	"http://localhost:3000",
	"http://localhost:5500",
	"http://localhost:5501",
	"http://127.0.0.1:80",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5500",
	"http://127.0.0.1:5501",
}

// Config aggregates the service settings.
type Config struct {
	Environment   string
	Server        ServerConfig
	Log           LogConfig
	Catalog       CatalogConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	environment := getEnvOrDefault("ENVIRONMENT", "development")

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	logCfg := loadLogConfig(environment)

	catalog, err := loadCatalogConfig()
	if err != nil {
		return nil, err
	}

	observability, err := loadObservabilityConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:   environment,
		Server:        server,
		Log:           logCfg,
		Catalog:       catalog,
		CORS:          CORSConfig{Origins: parseListEnv("CORS_ORIGINS", defaultCORSOrigins)},
		Observability: observability,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Log.Format)
	}

	if c.Catalog.MaxPageSize < 1 {
		return fmt.Errorf("MAX_PAGE_SIZE must be positive, got %d", c.Catalog.MaxPageSize)
	}
	if c.Catalog.DefaultPageSize < 1 || c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be within [1, %d], got %d", c.Catalog.MaxPageSize, c.Catalog.DefaultPageSize)
	}

	if c.Catalog.APIPrefix != "" && !strings.HasPrefix(c.Catalog.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with '/', got %q", c.Catalog.APIPrefix)
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

func loadServerConfig() (ServerConfig, error) {
	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return ServerConfig{}, err
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// ":8080" and "127.0.0.1:8080" are accepted as-is.
		return ServerConfig{Addr: port, ShutdownTimeout: shutdown}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, ShutdownTimeout: shutdown}, nil
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
	// Output is stdout, stderr or a file path rotated by lumberjack.
	Output string
}

func loadLogConfig(environment string) LogConfig {
	format := "console"
	if environment == "production" || environment == "prod" {
		format = "json"
	}

	return LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", format)),
		Output: getEnvOrDefault("LOG_OUTPUT", "stdout"),
	}
}

// CatalogConfig describes the catalog API surface.
type CatalogConfig struct {
	APIPrefix       string
	DefaultPageSize int
	MaxPageSize     int
	Seed            bool
}

func loadCatalogConfig() (CatalogConfig, error) {
	defaultSize, err := parseIntEnv("DEFAULT_PAGE_SIZE", 10)
	if err != nil {
		return CatalogConfig{}, err
	}

	maxSize, err := parseIntEnv("MAX_PAGE_SIZE", 100)
	if err != nil {
		return CatalogConfig{}, err
	}

	seed, err := parseBoolEnv("CATALOG_SEED", true)
	if err != nil {
		return CatalogConfig{}, err
	}

	return CatalogConfig{
		APIPrefix:       strings.TrimRight(getEnvOrDefault("API_PREFIX", "/api"), "/"),
		DefaultPageSize: defaultSize,
		MaxPageSize:     maxSize,
		Seed:            seed,
	}, nil
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	Origins []string
}

// ObservabilityConfig toggles metrics and tracing.
type ObservabilityConfig struct {
	MetricsEnabled bool
	TracingEnabled bool
}

func loadObservabilityConfig() (ObservabilityConfig, error) {
	metrics, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return ObservabilityConfig{}, err
	}

	tracing, err := parseBoolEnv("TRACING_ENABLED", false)
	if err != nil {
		return ObservabilityConfig{}, err
	}

	return ObservabilityConfig{MetricsEnabled: metrics, TracingEnabled: tracing}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return append([]string(nil), defaultValue...)
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
