// Command cleanup removes stored quiz results older than the configured
// retention period from every enabled database sink. It is intended to be
// invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/postgres/result"
	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/vocabvoyage-backend/internal/app"
	"github.com/heartmarshall/vocabvoyage-backend/internal/config"
)

type pruner interface {
	DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	threshold := time.Now().AddDate(0, 0, -cfg.Results.RetentionDays)
	targets := map[string]pruner{}

	if cfg.Results.HasSink(config.SinkPostgres) {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		targets[config.SinkPostgres] = result.New(pool, postgres.NewTxManager(pool))
	}

	if cfg.Results.HasSink(config.SinkSQLite) {
		st, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			logger.Error("open sqlite", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer st.Close()
		targets[config.SinkSQLite] = st
	}

	if len(targets) == 0 {
		logger.Info("no database sink enabled, nothing to clean")
		return
	}

	failed := false
	for name, p := range targets {
		deleted, err := p.DeleteOlderThan(ctx, threshold)
		if err != nil {
			logger.Error("delete old results failed",
				slog.String("sink", name),
				slog.String("error", err.Error()),
				slog.Time("threshold", threshold),
			)
			failed = true
			continue
		}
		logger.Info("old results deleted",
			slog.String("sink", name),
			slog.Int64("deleted", deleted),
			slog.Time("threshold", threshold),
		)
	}

	if failed {
		cancel()
		os.Exit(1)
	}
}
