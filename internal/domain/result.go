package domain

import (
	"time"

	"github.com/google/uuid"
)

// Result is the summary of a finished quiz session. It is created once by
// the session and handed to result sinks; nothing mutates it afterwards.
type Result struct {
	Correct        int
	Incorrect      int
	CorrectWords   []string
	IncorrectWords []string
	StartTime      time.Time
	EndTime        time.Time
}

// Duration returns how long the session lasted.
func (r Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Score returns the share of correct answers in percent, or 0 when nothing
// was answered.
func (r Result) Score() float64 {
	total := r.Correct + r.Incorrect
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total) * 100
}

// Stats is a read-only snapshot of an in-progress session.
type Stats struct {
	Mode           Mode
	Correct        int
	Incorrect      int
	CorrectWords   []string
	IncorrectWords []string
	StartTime      time.Time
	QueueLength    int
	Served         int
	TotalTerms     int
}

// Dedup returns the distinct values of words in first-seen order.
// A nil or empty input yields an empty, non-nil slice.
func Dedup(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// ResultRecord is a Result as stored by a database sink.
type ResultRecord struct {
	ID uuid.UUID
	Result
}
