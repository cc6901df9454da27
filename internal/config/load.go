package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SCROLL_LLM_GEMINI_API_KEY.
const EnvPrefix = "SCROLL"

// ConfigFileEnv names an explicit config file path.
const ConfigFileEnv = "SCROLL_CONFIG"

// ErrDatabaseURLRequired is returned when the postgres backend has no URL.
var ErrDatabaseURLRequired = errors.New("database.url is required when store.backend is postgres")

// Load configuration from defaults, an optional config.yaml (working
// directory or $SCROLL_CONFIG) and environment variables. Environment
// variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Store.Backend == BackendPostgres && cfg.Database.URL == "" {
		return ErrDatabaseURLRequired
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.snapshot_path", "data/state.json")
	v.SetDefault("store.snapshot_key", "default")
	v.SetDefault("store.artifacts_dir", "data/artifacts")

	v.SetDefault("database.url", "")

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.content_model", "gemini-2.5-flash")
	v.SetDefault("llm.video_model", "veo-3.0-fast-generate-001")
	v.SetDefault("llm.image_model", "imagen-4.0-generate-001")
	v.SetDefault("llm.video_duration_seconds", 8)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("task.worker_count", 8)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.poll_interval_seconds", 2)
}
