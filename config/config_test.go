package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbluecircles/jsoncompressor/config"
	"github.com/bbluecircles/jsoncompressor/engine"
	"github.com/bbluecircles/jsoncompressor/format"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jsonc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
engine:
  compression: zstd
  chunk_size: 4096
  cursor_mode: requested
logging:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "zstd", cfg.Engine.Compression)
	assert.Equal(t, 4096, cfg.Engine.ChunkSize)
	assert.Equal(t, "requested", cfg.Engine.CursorMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "engine:\n  compression: s2\n"))
	require.NoError(t, err)

	assert.Equal(t, "s2", cfg.Engine.Compression)
	assert.Equal(t, config.DefaultChunkSize, cfg.Engine.ChunkSize)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "engine:\n  chunk_size: 100\n")
	t.Setenv("JSONC_ENGINE_CHUNK_SIZE", "512")
	t.Setenv("JSONC_ENGINE_COMPRESSION", "lz4")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.Engine.ChunkSize)
	assert.Equal(t, "lz4", cfg.Engine.Compression)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := config.Load(writeConfig(t, "engine:\n  chunk_size: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalidChunkSize)

	_, err = config.Load(writeConfig(t, "engine:\n  compression: brotli\n"))
	require.ErrorIs(t, err, config.ErrInvalidCompression)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"valid", func(*config.Config) {}, nil},
		{"compression", func(c *config.Config) { c.Engine.Compression = "rar" }, config.ErrInvalidCompression},
		{"chunk size", func(c *config.Config) { c.Engine.ChunkSize = -1 }, config.ErrInvalidChunkSize},
		{"cursor mode", func(c *config.Config) { c.Engine.CursorMode = "backwards" }, config.ErrInvalidCursorMode},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, config.ErrInvalidLogLevel},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, config.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Engine.Compression = "zlib"
	cfg.Engine.CursorMode = "requested"

	opts, err := cfg.EngineOptions(nil, prometheus.NewRegistry())
	require.NoError(t, err)

	eng, err := engine.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, format.CompressionZlib, eng.Compression())

	require.NoError(t, eng.IngestJSON([]byte(`["abc"]`)))
	eng.StageOutput()
	_, _ = eng.NextOutputChunk(4)
	_, _ = eng.NextOutputChunk(4)
	assert.Equal(t, 8, eng.OutputInfo().Cursor)
}

func TestEngineOptions_Invalid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Engine.CursorMode = "?"

	_, err := cfg.EngineOptions(nil, nil)
	require.ErrorIs(t, err, config.ErrInvalidCursorMode)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "warn"

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
