package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/eytandecker/theatre-mcp/internal/cache"
	"github.com/eytandecker/theatre-mcp/internal/config"
	"github.com/eytandecker/theatre-mcp/internal/coords"
	internalmcp "github.com/eytandecker/theatre-mcp/internal/mcp"
	"github.com/eytandecker/theatre-mcp/internal/projection"
	"github.com/eytandecker/theatre-mcp/internal/theatre"
)

func main() {
	if err := run(); err != nil {
		log.Printf("MCP server exited: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if closeLog := setupLogging(cfg.Log); closeLog != nil {
		defer closeLog()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	registry := theatre.Default()
	if id := cfg.Server.DefaultTheatre; id != "" {
		if _, err := registry.Lookup(id); err != nil {
			return err
		}
	}

	var opts []coords.Option
	if cfg.Projection.CacheHandles {
		opts = append(opts, coords.WithHandleCache(cache.NewHandles()))
	}
	conv := coords.NewConverter(registry, projection.NewTMEngine(), opts...)

	mcpServer := internalmcp.NewServer(conv, registry, internalmcp.Options{
		Name:           cfg.Server.Name,
		Version:        cfg.Server.Version,
		DefaultTheatre: cfg.Server.DefaultTheatre,
		MaxRoutePoints: cfg.Server.MaxRoutePoints,
	})

	log.Printf("theatre-mcp: serving %d theatres (default %q, cache %t)",
		registry.Len(), cfg.Server.DefaultTheatre, cfg.Projection.CacheHandles)

	if err := mcpServer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// setupLogging sends log output to a rotating file when one is configured.
// Stdout carries the MCP transport, so the default stays stderr.
func setupLogging(cfg config.LogConfig) func() {
	if cfg.File == "" {
		return nil
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays(),
	}
	log.SetOutput(lj)
	return func() { _ = lj.Close() }
}
