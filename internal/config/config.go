package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config aggregates everything the front-end binaries read from the
// environment.
type Config struct {
	API   APIConfig
	Cache CacheConfig
	Log   LogConfig
	Stub  StubConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	api, err := loadAPIConfig()
	if err != nil {
		return nil, err
	}

	cache, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}

	stub, err := loadStubConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		API:   api,
		Cache: cache,
		Log:   loadLogConfig(),
		Stub:  stub,
	}, nil
}

// APIConfig describes how to reach the assistant backend.
type APIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RefreshDelay time.Duration
}

func loadAPIConfig() (APIConfig, error) {
	timeout, err := parseOptionalIntEnv("WORKSPACE_API_TIMEOUT_SECONDS")
	if err != nil {
		return APIConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	// Delay between triggering report generation and refetching it.
	delayMillis := 2000
	if override, err := parseOptionalIntEnv("WORKSPACE_REFRESH_DELAY_MS"); err != nil {
		return APIConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return APIConfig{}, fmt.Errorf("WORKSPACE_REFRESH_DELAY_MS must not be negative, got %d", *override)
		}
		delayMillis = *override
	}

	return APIConfig{
		BaseURL:      strings.TrimRight(getEnvOrDefault("WORKSPACE_API_BASE", "http://localhost:8000/api"), "/"),
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
		RefreshDelay: time.Duration(delayMillis) * time.Millisecond,
	}, nil
}

// CacheConfig locates the on-disk session cache.
type CacheConfig struct {
	Path string
}

func loadCacheConfig() (CacheConfig, error) {
	if path := strings.TrimSpace(os.Getenv("WORKSPACE_CACHE_PATH")); path != "" {
		return CacheConfig{Path: path}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return CacheConfig{}, fmt.Errorf("resolve home directory for cache path: %w", err)
	}
	return CacheConfig{Path: filepath.Join(home, ".workspace-agent", "session.db")}, nil
}

// LogConfig describes where operator logs go. The TUI owns the terminal, so
// its logger writes to a file instead of stderr.
type LogConfig struct {
	File  string
	Debug bool
}

func loadLogConfig() LogConfig {
	debug, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("WORKSPACE_DEBUG")))
	return LogConfig{
		File:  strings.TrimSpace(os.Getenv("WORKSPACE_LOG_FILE")),
		Debug: debug,
	}
}

// StubConfig describes the local development backend.
type StubConfig struct {
	Addr string
}

func loadStubConfig() (StubConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8000" or "127.0.0.1:8000" directly.
		return StubConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return StubConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return StubConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
