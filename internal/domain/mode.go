package domain

import (
	"fmt"
	"strings"
)

// Mode selects how the quiz session produces words.
type Mode string

const (
	// ModeNormal serves every term exactly once in shuffled order.
	ModeNormal Mode = "normal"
	// ModeInfinite requeues incorrectly answered terms until all are answered correctly.
	ModeInfinite Mode = "infinite"
)

func (m Mode) String() string { return string(m) }

func (m Mode) IsValid() bool {
	switch m {
	case ModeNormal, ModeInfinite:
		return true
	}
	return false
}

// ParseMode converts a client token into a Mode. Matching ignores case and
// surrounding whitespace. Unknown tokens return ErrInvalidMode.
func ParseMode(token string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(token)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, token)
	}
	return m, nil
}
