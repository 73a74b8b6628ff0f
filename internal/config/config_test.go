package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

log:
  level: "debug"
  format: "text"

words:
  dir: "/srv/words"
  persist_uploads: true
  max_upload_bytes: 2048

quiz:
  default_mode: "Infinite"

results:
  dir: "/srv/results"
  sinks: "markdown, postgres"
  history_limit: 5

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4
  min_conns: 2
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Words
	if cfg.Words.Dir != "/srv/words" {
		t.Errorf("words.dir = %q, want %q", cfg.Words.Dir, "/srv/words")
	}
	if !cfg.Words.PersistUploads {
		t.Error("words.persist_uploads should be true")
	}
	if cfg.Words.MaxUploadBytes != 2048 {
		t.Errorf("words.max_upload_bytes = %d, want 2048", cfg.Words.MaxUploadBytes)
	}

	// Quiz
	if cfg.Quiz.DefaultMode != "Infinite" {
		t.Errorf("quiz.default_mode = %q, want %q", cfg.Quiz.DefaultMode, "Infinite")
	}

	// Results
	if want := []string{"markdown", "postgres"}; !slices.Equal(cfg.Results.Sinks, want) {
		t.Errorf("results.sinks = %v, want %v", cfg.Results.Sinks, want)
	}
	if cfg.Results.HistoryLimit != 5 {
		t.Errorf("results.history_limit = %d, want 5", cfg.Results.HistoryLimit)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}
	if cfg.Database.MaxConnLifetime != time.Hour {
		t.Errorf("database.max_conn_lifetime = %v, want 1h (default)", cfg.Database.MaxConnLifetime)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("RESULTS_SINKS", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if !slices.Equal(cfg.Results.Sinks, []string{"sqlite"}) {
		t.Errorf("results.sinks = %v, want [sqlite] (ENV override)", cfg.Results.Sinks)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	// Unset CONFIG_PATH so the fallback applies and the file is just absent.
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("server.port = %d, want 8000 (default)", cfg.Server.Port)
	}
	if cfg.Quiz.DefaultMode != "normal" {
		t.Errorf("quiz.default_mode = %q, want normal (default)", cfg.Quiz.DefaultMode)
	}
	if !slices.Equal(cfg.Results.Sinks, []string{"markdown"}) {
		t.Errorf("results.sinks = %v, want [markdown] (default)", cfg.Results.Sinks)
	}
	if cfg.Database.DSN != "" {
		t.Errorf("database.dsn = %q, want empty", cfg.Database.DSN)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_PostgresSinkWithoutDSN(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "results:\n  sinks: \"postgres\"\n")
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for postgres sink without DSN")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"infinite mode", func(c *Config) { c.Quiz.DefaultMode = "INFINITE" }, false},
		{"invalid mode", func(c *Config) { c.Quiz.DefaultMode = "endless" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"upload size zero", func(c *Config) { c.Words.MaxUploadBytes = 0 }, true},
		{"history limit zero", func(c *Config) { c.Results.HistoryLimit = 0 }, true},
		{"retention zero", func(c *Config) { c.Results.RetentionDays = 0 }, true},
		{"unknown sink", func(c *Config) { c.Results.SinksRaw = "markdown,s3" }, true},
		{"no sinks", func(c *Config) { c.Results.SinksRaw = "" }, false},
		{"postgres without dsn", func(c *Config) { c.Results.SinksRaw = "postgres" }, true},
		{"postgres with dsn", func(c *Config) {
			c.Results.SinksRaw = "postgres"
			c.Database.DSN = "postgres://localhost/db"
		}, false},
		{"sqlite without path", func(c *Config) {
			c.Results.SinksRaw = "sqlite"
			c.SQLite.Path = " "
		}, true},
		{"markdown without dir", func(c *Config) { c.Results.Dir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ParsesSinks(t *testing.T) {
	cfg := validConfig()
	cfg.Results.SinksRaw = " SQLite ,markdown,sqlite"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"sqlite", "markdown"}; !slices.Equal(cfg.Results.Sinks, want) {
		t.Errorf("Sinks = %v, want %v", cfg.Results.Sinks, want)
	}
	if !cfg.Results.HasSink(SinkSQLite) || cfg.Results.HasSink(SinkPostgres) {
		t.Errorf("HasSink mismatch for %v", cfg.Results.Sinks)
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"markdown", []string{"markdown"}},
		{"a, B ,,c", []string{"a", "b", "c"}},
		{"a,a,A", []string{"a"}},
	}

	for _, tt := range tests {
		if got := ParseList(tt.raw); !slices.Equal(got, tt.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 8000},
		Words:   WordsConfig{Dir: "./data", MaxUploadBytes: 1 << 20},
		Quiz:    QuizConfig{DefaultMode: "normal"},
		Results: ResultsConfig{Dir: "./results", SinksRaw: "markdown", HistoryLimit: 20, RetentionDays: 90},
		SQLite:  SQLiteConfig{Path: "./results/results.db"},
	}
}
