package engine

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bbluecircles/jsoncompressor/compress"
	"github.com/bbluecircles/jsoncompressor/errs"
	"github.com/bbluecircles/jsoncompressor/format"
	"github.com/bbluecircles/jsoncompressor/internal/options"
)

// Config holds the settings an Engine is built from.
type Config struct {
	compression format.CompressionType
	codec       compress.Codec
	cursorMode  CursorMode
	logger      *slog.Logger
	registerer  prometheus.Registerer
}

func defaultConfig() *Config {
	return &Config{
		compression: format.CompressionGzip,
		cursorMode:  CursorAdvanceCopied,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for configuring an Engine.
type Option = options.Option[*Config]

// WithCompression selects the built-in codec used to frame chunks.
// Default is format.CompressionGzip.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}

// WithCodec installs a custom codec. It takes precedence over WithCompression.
func WithCodec(codec compress.Codec) Option {
	return options.New(func(c *Config) error {
		if codec == nil {
			return fmt.Errorf("%w: nil codec", errs.ErrInvalidCompression)
		}
		c.codec = codec

		return nil
	})
}

// WithCursorMode selects how output extraction advances its cursor.
// Default is CursorAdvanceCopied.
func WithCursorMode(mode CursorMode) Option {
	return options.New(func(c *Config) error {
		switch mode {
		case CursorAdvanceCopied, CursorAdvanceRequested:
			c.cursorMode = mode
			return nil
		default:
			return fmt.Errorf("invalid cursor mode: %d", mode)
		}
	})
}

// WithLogger sets the structured logger. A nil logger keeps the default,
// which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMetrics registers the engine collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return options.NoError(func(c *Config) {
		c.registerer = reg
	})
}
