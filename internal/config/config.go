package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Projection ProjectionConfig
	Log        LogConfig
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name           string
	Version        string
	DefaultTheatre string
	MaxRoutePoints int
}

// ProjectionConfig holds projection engine settings.
type ProjectionConfig struct {
	CacheHandles bool
}

// LogConfig holds log output settings. An empty File logs to stderr.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAge     time.Duration
}

// MaxAgeDays converts MaxAge to whole days for the rotating writer, rounding
// up so a positive age under a day still expires old files. Zero or negative
// ages keep backups forever.
func (c LogConfig) MaxAgeDays() int {
	if c.MaxAge <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	return int((c.MaxAge + day - 1) / day)
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Name:           getEnvString("MCP_SERVER_NAME", "theatre-mcp"),
			Version:        getEnvString("MCP_SERVER_VERSION", "1.0.0"),
			DefaultTheatre: getEnvString("DEFAULT_THEATRE", ""),
			MaxRoutePoints: getEnvInt("MAX_ROUTE_POINTS", 500),
		},
		Projection: ProjectionConfig{
			CacheHandles: getEnvBool("CACHE_PROJECTIONS", true),
		},
		Log: LogConfig{
			File:       getEnvString("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvDuration("LOG_MAX_AGE", 7*24*time.Hour),
		},
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
