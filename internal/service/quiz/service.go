// Package quiz implements the quiz session state machine: word order, the
// normal and infinite presentation modes, per-word retry counts and result
// aggregation.
package quiz

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type resultSink interface {
	Record(ctx context.Context, result domain.Result) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Shuffler puts terms into a random order in place.
type Shuffler func(terms []domain.Term)

func defaultShuffle(terms []domain.Term) {
	rand.Shuffle(len(terms), func(i, j int) {
		terms[i], terms[j] = terms[j], terms[i]
	})
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// Session holds the state of the single quiz in progress. All methods are
// safe for concurrent use; one mutex serializes every operation.
type Session struct {
	mu      sync.Mutex
	log     *slog.Logger
	sink    resultSink
	clock   clock
	shuffle Shuffler

	terms        []domain.Term
	translations map[string]string

	mode      domain.Mode
	queue     []domain.Term
	cursor    int
	correct   int
	incorrect int
	startedAt time.Time

	correctWords []string
	// pending holds terms answered incorrectly since the last requeue.
	pending []string
	// missed holds every incorrect answer of the session, duplicates included.
	missed  []string
	retries map[string]int
}

// Option customizes a Session at construction time.
type Option func(*Session)

// WithMode sets the initial mode. Invalid modes are ignored.
func WithMode(mode domain.Mode) Option {
	return func(s *Session) {
		if mode.IsValid() {
			s.mode = mode
		}
	}
}

// WithClock overrides the time source used for start and end timestamps.
func WithClock(c clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithShuffler overrides the queue shuffling strategy.
func WithShuffler(fn Shuffler) Option {
	return func(s *Session) { s.shuffle = fn }
}

// NewSession creates a session over terms and starts it immediately.
// sink may be nil, in which case EndSession only builds the result.
func NewSession(log *slog.Logger, sink resultSink, terms []domain.Term, opts ...Option) *Session {
	s := &Session{
		log:     log.With("service", "quiz"),
		sink:    sink,
		clock:   systemClock{},
		shuffle: defaultShuffle,
		mode:    domain.ModeNormal,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setTerms(terms)
	s.reset()

	return s
}

// Reset starts the quiz over with the current mode and term list.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.log.Info("quiz started",
		slog.String("mode", s.mode.String()),
		slog.Int("terms", len(s.terms)),
	)
}

// SetMode switches the mode and restarts the quiz. An unrecognized token
// returns domain.ErrInvalidMode and leaves the session untouched.
func (s *Session) SetMode(token string) error {
	mode, err := domain.ParseMode(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.reset()
	s.log.Info("quiz mode set", slog.String("mode", mode.String()))

	return nil
}

// UpdateWords replaces the backing term list and restarts the quiz.
func (s *Session) UpdateWords(terms []domain.Term) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setTerms(terms)
	s.reset()
	s.log.Info("word list updated", slog.Int("terms", len(s.terms)))
}

// Mode returns the current mode.
func (s *Session) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Terms returns a copy of the backing term list.
func (s *Session) Terms() []domain.Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.terms)
}

// Stats returns a snapshot of the counters and answered terms.
func (s *Session) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	served := s.cursor + 1
	if served > len(s.queue) {
		served = len(s.queue)
	}

	return domain.Stats{
		Mode:           s.mode,
		Correct:        s.correct,
		Incorrect:      s.incorrect,
		CorrectWords:   domain.Dedup(s.correctWords),
		IncorrectWords: domain.Dedup(s.missed),
		StartTime:      s.startedAt,
		QueueLength:    len(s.queue),
		Served:         served,
		TotalTerms:     len(s.terms),
	}
}

// setTerms must be called with mu held (or before the session is shared).
func (s *Session) setTerms(terms []domain.Term) {
	s.terms = slices.Clone(terms)
	s.translations = make(map[string]string, len(terms))
	for _, t := range s.terms {
		if _, ok := s.translations[t.ForeignTerm]; !ok {
			s.translations[t.ForeignTerm] = t.NativeTranslation
		}
	}
}

// reset must be called with mu held (or before the session is shared).
func (s *Session) reset() {
	s.correct = 0
	s.incorrect = 0
	s.correctWords = nil
	s.pending = nil
	s.missed = nil
	s.retries = make(map[string]int)
	s.startedAt = s.clock.Now()
	s.queue = slices.Clone(s.terms)
	s.shuffle(s.queue)
	s.cursor = -1
}
