package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "theatre-mcp", cfg.Server.Name)
	assert.Equal(t, "1.0.0", cfg.Server.Version)
	assert.Equal(t, "", cfg.Server.DefaultTheatre)
	assert.Equal(t, 500, cfg.Server.MaxRoutePoints)
	assert.True(t, cfg.Projection.CacheHandles)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 168*time.Hour, cfg.Log.MaxAge)
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		check  func(t *testing.T, cfg Config)
	}{
		{
			name:   "MCP_SERVER_NAME",
			envKey: "MCP_SERVER_NAME",
			envVal: "dcs-coords",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "dcs-coords", cfg.Server.Name)
			},
		},
		{
			name:   "DEFAULT_THEATRE",
			envKey: "DEFAULT_THEATRE",
			envVal: "Syria",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "Syria", cfg.Server.DefaultTheatre)
			},
		},
		{
			name:   "MAX_ROUTE_POINTS valid",
			envKey: "MAX_ROUTE_POINTS",
			envVal: "50",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 50, cfg.Server.MaxRoutePoints)
			},
		},
		{
			name:   "MAX_ROUTE_POINTS invalid falls back to default",
			envKey: "MAX_ROUTE_POINTS",
			envVal: "lots",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 500, cfg.Server.MaxRoutePoints)
			},
		},
		{
			name:   "CACHE_PROJECTIONS disabled",
			envKey: "CACHE_PROJECTIONS",
			envVal: "false",
			check: func(t *testing.T, cfg Config) {
				assert.False(t, cfg.Projection.CacheHandles)
			},
		},
		{
			name:   "CACHE_PROJECTIONS invalid falls back to default",
			envKey: "CACHE_PROJECTIONS",
			envVal: "sometimes",
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.Projection.CacheHandles)
			},
		},
		{
			name:   "LOG_FILE",
			envKey: "LOG_FILE",
			envVal: "/var/log/theatre-mcp.log",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "/var/log/theatre-mcp.log", cfg.Log.File)
			},
		},
		{
			name:   "LOG_MAX_AGE valid",
			envKey: "LOG_MAX_AGE",
			envVal: "48h",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 48*time.Hour, cfg.Log.MaxAge)
			},
		},
		{
			name:   "LOG_MAX_AGE invalid falls back to default",
			envKey: "LOG_MAX_AGE",
			envVal: "a week",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 168*time.Hour, cfg.Log.MaxAge)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)
			cfg := Load()
			tt.check(t, cfg)
		})
	}
}

func TestLogMaxAgeDays(t *testing.T) {
	tests := []struct {
		age  time.Duration
		want int
	}{
		{0, 0},
		{-time.Hour, 0},
		{time.Minute, 1},
		{12 * time.Hour, 1},
		{24 * time.Hour, 1},
		{25 * time.Hour, 2},
		{168 * time.Hour, 7},
	}

	for _, tt := range tests {
		t.Run(tt.age.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{MaxAge: tt.age}.MaxAgeDays())
		})
	}
}
