package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

var knownSinks = []string{SinkMarkdown, SinkPostgres, SinkSQLite}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if _, err := domain.ParseMode(c.Quiz.DefaultMode); err != nil {
		return fmt.Errorf("quiz.default_mode: %w", err)
	}

	if c.Words.MaxUploadBytes <= 0 {
		return fmt.Errorf("words.max_upload_bytes must be > 0 (got %d)", c.Words.MaxUploadBytes)
	}

	if err := c.Results.validate(); err != nil {
		return fmt.Errorf("results: %w", err)
	}

	if c.Results.HasSink(SinkPostgres) && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required when the %s sink is enabled", SinkPostgres)
	}
	if c.Results.HasSink(SinkSQLite) && strings.TrimSpace(c.SQLite.Path) == "" {
		return fmt.Errorf("sqlite.path is required when the %s sink is enabled", SinkSQLite)
	}

	return nil
}

func (r *ResultsConfig) validate() error {
	if r.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0 (got %d)", r.HistoryLimit)
	}
	if r.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", r.RetentionDays)
	}

	sinks := ParseList(r.SinksRaw)
	for _, s := range sinks {
		if !slices.Contains(knownSinks, s) {
			return fmt.Errorf("unknown sink %q (want one of %s)", s, strings.Join(knownSinks, ", "))
		}
	}
	if slices.Contains(sinks, SinkMarkdown) && strings.TrimSpace(r.Dir) == "" {
		return fmt.Errorf("dir is required when the %s sink is enabled", SinkMarkdown)
	}
	r.Sinks = sinks

	return nil
}

// ParseList splits a comma-separated string into lowercase, trimmed,
// de-duplicated items. An empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || slices.Contains(items, p) {
			continue
		}
		items = append(items, p)
	}
	return items
}
