package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".jsonc"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix, e.g. JSONC_ENGINE_CHUNK_SIZE.
const envPrefix = "JSONC"

// Load reads configuration from defaults, the config file and environment.
// If path is empty, .jsonc.yaml is searched in the working directory and a
// missing file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("engine.compression", DefaultCompression)
	v.SetDefault("engine.chunk_size", DefaultChunkSize)
	v.SetDefault("engine.cursor_mode", DefaultCursorMode)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
