package quiz

import (
	"log/slog"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// NextWord returns the next term to ask. The boolean is false when the
// current pass is complete and no term is available.
func (s *Session) NextWord() (domain.Term, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == domain.ModeInfinite {
		return s.nextInfinite()
	}
	return s.nextNormal()
}

func (s *Session) nextNormal() (domain.Term, bool) {
	if s.cursor+1 >= len(s.queue) {
		s.cursor = len(s.queue)
		return domain.Term{}, false
	}
	s.cursor++
	return s.queue[s.cursor], true
}

func (s *Session) nextInfinite() (domain.Term, bool) {
	if s.cursor+1 < len(s.queue) {
		s.cursor++
		return s.queue[s.cursor], true
	}

	if len(s.pending) == 0 {
		return domain.Term{}, false
	}

	s.requeuePending()
	s.cursor = 0
	return s.queue[s.cursor], true
}

// requeuePending rebuilds the queue from the terms answered incorrectly
// since the last requeue. Translations are restored from the backing list.
// Each term is queued once, however many times it was missed in the pass.
func (s *Session) requeuePending() {
	words := domain.Dedup(s.pending)
	queue := make([]domain.Term, 0, len(words))
	for _, w := range words {
		queue = append(queue, domain.Term{
			ForeignTerm:       w,
			NativeTranslation: s.translations[w],
		})
	}

	s.queue = queue
	s.pending = nil

	s.log.Debug("requeued incorrect terms", slog.Int("count", len(queue)))
}
