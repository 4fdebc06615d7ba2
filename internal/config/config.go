package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Calendar CalendarConfig `yaml:"calendar"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"                    env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	Mode            string        `yaml:"mode"             env:"GIN_MODE"                env-default:"release"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"        env-default:"10485760"`
	PublicURL       string        `yaml:"public_url"       env:"PUBLIC_URL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// StoreConfig points the profile store at an optional JSON file.
// An empty path keeps profiles in memory only.
type StoreConfig struct {
	ProfilesFile string `yaml:"profiles_file" env:"PROFILES_FILE" env-default:"artisan_profiles.json"`
}

// GeminiConfig holds the multimodal model settings.
type GeminiConfig struct {
	APIKey          string  `yaml:"api_key"           env:"GEMINI_API_KEY"`
	Model           string  `yaml:"model"             env:"GEMINI_MODEL"             env-default:"gemini-2.5-flash"`
	Temperature     float32 `yaml:"temperature"       env:"GEMINI_TEMPERATURE"       env-default:"0.4"`
	MaxOutputTokens int32   `yaml:"max_output_tokens" env:"GEMINI_MAX_OUTPUT_TOKENS" env-default:"2048"`
}

// StorageConfig holds object storage settings for uploaded images.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"           env:"GCS_BUCKET_NAME"`
	CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// AnalysisConfig bounds calls to the external collaborators.
type AnalysisConfig struct {
	Timeout         time.Duration `yaml:"timeout"          env:"ANALYSIS_TIMEOUT"          env-default:"45s"`
	BreakerFailures uint32        `yaml:"breaker_failures" env:"ANALYSIS_BREAKER_FAILURES" env-default:"5"`
	BreakerOpenFor  time.Duration `yaml:"breaker_open_for" env:"ANALYSIS_BREAKER_OPEN_FOR" env-default:"30s"`
}

// CalendarConfig holds calendar defaults. MaxDays caps the days a caller may
// request over REST or A2A.
type CalendarConfig struct {
	DefaultDays int `yaml:"default_days" env:"CALENDAR_DEFAULT_DAYS" env-default:"30"`
	MaxDays     int `yaml:"max_days"     env:"CALENDAR_MAX_DAYS"     env-default:"90"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// AnalysisEnabled reports whether both external credentials are present.
func (c Config) AnalysisEnabled() bool {
	return c.Gemini.APIKey != "" && c.Storage.Bucket != ""
}

// StoriesEnabled reports whether a text model is available for storytelling.
// Stories need no object storage.
func (c Config) StoriesEnabled() bool {
	return c.Gemini.APIKey != ""
}
