package config

import "time"

// Store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects where the store snapshot and render artifacts live.
type StoreConfig struct {
	Backend      string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	SnapshotPath string `mapstructure:"snapshot_path" validate:"required_if=Backend file"`
	SnapshotKey  string `mapstructure:"snapshot_key"`
	ArtifactsDir string `mapstructure:"artifacts_dir" validate:"required"`
}

// DatabaseConfig contains database settings, used by the postgres backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains the generative collaborator settings.
type LLMConfig struct {
	GeminiAPIKey         string  `mapstructure:"gemini_api_key" validate:"required"`
	ContentModel         string  `mapstructure:"content_model" validate:"required"`
	VideoModel           string  `mapstructure:"video_model" validate:"required"`
	ImageModel           string  `mapstructure:"image_model" validate:"required"`
	VideoDurationSeconds int     `mapstructure:"video_duration_seconds" validate:"gt=0,lte=60"`
	Temperature          float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// TaskConfig sizes the background worker pool.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize           int `mapstructure:"queue_size" validate:"gt=0"`
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"gt=0"`
}

// PollInterval returns the delay between poll iterations.
func (t TaskConfig) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalSeconds) * time.Second
}
