// Package config loads jsoncompressor settings for the command-line tools
// from defaults, an optional YAML file and JSONC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bbluecircles/jsoncompressor/engine"
	"github.com/bbluecircles/jsoncompressor/format"
)

// Default values applied before the config file and environment.
const (
	DefaultCompression = "gzip"
	DefaultChunkSize   = 64 * 1024
	DefaultCursorMode  = "copied"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config is the top-level configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig holds engine knobs.
type EngineConfig struct {
	Compression string `mapstructure:"compression"`
	ChunkSize   int    `mapstructure:"chunk_size"`
	CursorMode  string `mapstructure:"cursor_mode"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidCompression indicates engine.compression names no codec.
	ErrInvalidCompression = errors.New("engine.compression must be one of none, gzip, zlib, zstd, s2, lz4")
	// ErrInvalidChunkSize indicates engine.chunk_size is not positive.
	ErrInvalidChunkSize = errors.New("engine.chunk_size must be positive")
	// ErrInvalidCursorMode indicates engine.cursor_mode is unknown.
	ErrInvalidCursorMode = errors.New("engine.cursor_mode must be copied or requested")
	// ErrInvalidLogLevel indicates logging.level is unknown.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn or error")
	// ErrInvalidLogFormat indicates logging.format is unknown.
	ErrInvalidLogFormat = errors.New("logging.format must be text or json")
)

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Compression: DefaultCompression,
			ChunkSize:   DefaultChunkSize,
			CursorMode:  DefaultCursorMode,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks the configuration and returns the first violation.
func (c *Config) Validate() error {
	if _, err := format.ParseCompressionType(c.Engine.Compression); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCompression, c.Engine.Compression)
	}
	if c.Engine.ChunkSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, c.Engine.ChunkSize)
	}
	if _, err := engine.ParseCursorMode(c.Engine.CursorMode); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCursorMode, c.Engine.CursorMode)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// EngineOptions converts the engine section into engine options. The logger
// and registerer are passed through; either may be nil.
func (c *Config) EngineOptions(logger *slog.Logger, reg prometheus.Registerer) ([]engine.Option, error) {
	comp, err := format.ParseCompressionType(c.Engine.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCompression, c.Engine.Compression)
	}

	mode, err := engine.ParseCursorMode(c.Engine.CursorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCursorMode, c.Engine.CursorMode)
	}

	opts := []engine.Option{
		engine.WithCompression(comp),
		engine.WithCursorMode(mode),
		engine.WithLogger(logger),
	}
	if reg != nil {
		opts = append(opts, engine.WithMetrics(reg))
	}

	return opts, nil
}

// NewLogger builds a logger writing to w with the configured level and format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}

	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}
