package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// EndSession builds the session result and hands it to the result sink.
// The in-memory state is kept as is until the next reset. A sink failure is
// logged and returned wrapped in domain.ErrPersist together with the result.
func (s *Session) EndSession(ctx context.Context) (domain.Result, error) {
	result := s.buildResult()

	s.log.InfoContext(ctx, "quiz ended",
		slog.Int("correct", result.Correct),
		slog.Int("incorrect", result.Incorrect),
		slog.Duration("duration", result.Duration()),
	)

	if s.sink == nil {
		return result, nil
	}

	if err := s.sink.Record(ctx, result); err != nil {
		s.log.WarnContext(ctx, "record quiz result failed", slog.String("error", err.Error()))
		return result, fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}

	return result, nil
}

func (s *Session) buildResult() domain.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Result{
		Correct:        s.correct,
		Incorrect:      s.incorrect,
		CorrectWords:   domain.Dedup(s.correctWords),
		IncorrectWords: domain.Dedup(s.missed),
		StartTime:      s.startedAt,
		EndTime:        s.clock.Now(),
	}
}
