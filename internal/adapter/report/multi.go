package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// Sink records a finished quiz result.
type Sink interface {
	Record(ctx context.Context, result domain.Result) error
}

// NamedSink pairs a sink with the name used in logs and errors.
type NamedSink struct {
	Name string
	Sink Sink
}

// MultiSink records a result to every configured sink. A failing sink does
// not stop the others; all failures are joined into the returned error.
type MultiSink struct {
	sinks []NamedSink
	log   *slog.Logger
}

// NewMultiSink creates a fan-out sink.
func NewMultiSink(log *slog.Logger, sinks ...NamedSink) *MultiSink {
	return &MultiSink{sinks: sinks, log: log.With("component", "result_sink")}
}

// Len returns the number of sinks.
func (m *MultiSink) Len() int {
	return len(m.sinks)
}

// Record implements the quiz result sink.
func (m *MultiSink) Record(ctx context.Context, result domain.Result) error {
	var errs []error
	for _, ns := range m.sinks {
		if err := ns.Sink.Record(ctx, result); err != nil {
			m.log.ErrorContext(ctx, "result sink failed",
				slog.String("sink", ns.Name),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", ns.Name, err))
			continue
		}
		m.log.DebugContext(ctx, "result recorded", slog.String("sink", ns.Name))
	}
	return errors.Join(errs...)
}
