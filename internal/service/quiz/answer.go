package quiz

import (
	"log/slog"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// CheckAnswer compares input with the term's foreign side, ignoring case and
// surrounding whitespace, and records the outcome. It never fails.
func (s *Session) CheckAnswer(term domain.Term, input string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := term.Matches(input)
	if ok {
		s.correct++
		s.correctWords = append(s.correctWords, term.ForeignTerm)
		delete(s.retries, term.ForeignTerm)
	} else {
		s.incorrect++
		s.pending = append(s.pending, term.ForeignTerm)
		s.missed = append(s.missed, term.ForeignTerm)
		// Every miss restarts the retry count, even for a term already pending.
		s.retries[term.ForeignTerm] = 0
	}

	s.log.Debug("answer checked",
		slog.String("term", term.ForeignTerm),
		slog.Bool("correct", ok),
	)

	return ok
}

// IncrementIncorrectRepeat bumps and returns the retry count of a term whose
// latest answer was incorrect. Terms without a retry entry return 0 and are
// left untouched.
func (s *Session) IncrementIncorrectRepeat(term domain.Term) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, ok := s.retries[term.ForeignTerm]
	if !ok {
		return 0
	}
	count++
	s.retries[term.ForeignTerm] = count
	return count
}

// RetryCount returns the retry count for a term and whether it is currently
// marked incorrect.
func (s *Session) RetryCount(term domain.Term) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, ok := s.retries[term.ForeignTerm]
	return count, ok
}
