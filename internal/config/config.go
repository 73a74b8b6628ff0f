package config

import (
	"slices"
	"time"
)

// Result sink names accepted in results.sinks.
const (
	SinkMarkdown = "markdown"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Words    WordsConfig    `yaml:"words"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Results  ResultsConfig  `yaml:"results"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// WordsConfig holds word-list loading and upload settings.
type WordsConfig struct {
	Dir            string `yaml:"dir"              env:"WORDS_DIR"              env-default:"./data"`
	PersistUploads bool   `yaml:"persist_uploads"  env:"WORDS_PERSIST_UPLOADS"  env-default:"false"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"WORDS_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// QuizConfig holds quiz session settings.
type QuizConfig struct {
	DefaultMode string `yaml:"default_mode" env:"QUIZ_DEFAULT_MODE" env-default:"normal"`
}

// ResultsConfig selects where finished quiz results are recorded.
type ResultsConfig struct {
	Dir          string `yaml:"dir"           env:"RESULTS_DIR"           env-default:"./results"`
	SinksRaw     string `yaml:"sinks"         env:"RESULTS_SINKS"         env-default:"markdown"`
	HistoryLimit int    `yaml:"history_limit" env:"RESULTS_HISTORY_LIMIT" env-default:"20"`

	// RetentionDays is how long cmd/cleanup keeps stored results.
	RetentionDays int `yaml:"retention_days" env:"RESULTS_RETENTION_DAYS" env-default:"90"`

	// Sinks is parsed from SinksRaw during validation.
	Sinks []string `yaml:"-" env:"-"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is required only
// when the postgres sink is enabled.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds the SQLite result store location.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./results/results.db"`
}

// HasSink reports whether the named sink is enabled.
func (c ResultsConfig) HasSink(name string) bool {
	return slices.Contains(c.Sinks, name)
}
