package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/postgres/result"
	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/report"
	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/vocabvoyage-backend/internal/adapter/wordstore"
	"github.com/heartmarshall/vocabvoyage-backend/internal/config"
	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
	"github.com/heartmarshall/vocabvoyage-backend/internal/service/quiz"
	"github.com/heartmarshall/vocabvoyage-backend/internal/transport/middleware"
	"github.com/heartmarshall/vocabvoyage-backend/internal/transport/rest"
)

// uploadsPerMinute caps word-list uploads per client IP.
const uploadsPerMinute = 30

// Run is the application entry point. It loads configuration, wires the
// word store, result sinks and quiz session, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Any("sinks", cfg.Results.Sinks),
	)

	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	return a.serve(ctx)
}

// application holds the wired components and what must be released on exit.
type application struct {
	cfg     *config.Config
	log     *slog.Logger
	session *quiz.Session
	handler http.Handler
	closers []func()
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (a *application, err error) {
	a = &application{cfg: cfg, log: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	store := wordstore.New(cfg.Words.Dir)
	terms, err := store.Load()
	if err != nil {
		// The quiz can still start empty and be filled via upload.
		logger.Warn("load words", slog.String("dir", cfg.Words.Dir), slog.String("error", err.Error()))
	}
	logger.Info("words loaded", slog.Int("count", len(terms)), slog.String("dir", cfg.Words.Dir))

	var (
		sinks      []report.NamedSink
		history    *rest.HistoryHandler
		components []rest.Component
	)

	if cfg.Results.HasSink(config.SinkMarkdown) {
		md, err := report.NewMarkdownSink(cfg.Results.Dir)
		if err != nil {
			return nil, fmt.Errorf("markdown sink: %w", err)
		}
		sinks = append(sinks, report.NamedSink{Name: config.SinkMarkdown, Sink: md})
	}

	if cfg.Results.HasSink(config.SinkSQLite) {
		st, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite sink: %w", err)
		}
		a.closers = append(a.closers, func() { _ = st.Close() })
		sinks = append(sinks, report.NamedSink{Name: config.SinkSQLite, Sink: st})
		components = append(components, rest.Component{Name: "sqlite", Pinger: st})
		history = rest.NewHistoryHandler(st, cfg.Results.HistoryLimit, logger)
	}

	if cfg.Results.HasSink(config.SinkPostgres) {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("postgres sink: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}

		repo := result.New(pool, postgres.NewTxManager(pool))
		sinks = append(sinks, report.NamedSink{Name: config.SinkPostgres, Sink: repo})
		components = append(components, rest.Component{Name: "database", Pinger: pool})
		history = rest.NewHistoryHandler(repo, cfg.Results.HistoryLimit, logger)
	}

	if history == nil {
		history = rest.NewHistoryHandler(nil, cfg.Results.HistoryLimit, logger)
	}

	mode, err := domain.ParseMode(cfg.Quiz.DefaultMode)
	if err != nil {
		return nil, fmt.Errorf("quiz mode: %w", err)
	}

	a.session = quiz.NewSession(logger, report.NewMultiSink(logger, sinks...), terms, quiz.WithMode(mode))

	quizHandler := rest.NewQuizHandler(a.session, wordstore.Parse, nil, cfg.Words.MaxUploadBytes, logger)
	if cfg.Words.PersistUploads {
		quizHandler = rest.NewQuizHandler(a.session, wordstore.Parse, store, cfg.Words.MaxUploadBytes, logger)
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	a.closers = append(a.closers, limiter.Stop)

	a.handler = rest.Router{
		Quiz:        quizHandler,
		History:     history,
		Health:      rest.NewHealthHandler(BuildVersion(), components...),
		CORS:        cfg.CORS,
		UploadLimit: limiter.Limit(uploadsPerMinute),
		Logger:      logger,
	}.Handler()

	return a, nil
}

func (a *application) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
