package domain

// Term is a single quiz unit: a foreign word and its native translation.
// Two terms are the same quiz item when their ForeignTerm values are equal.
type Term struct {
	ForeignTerm       string
	NativeTranslation string
}

// IsValid reports whether both sides of the pair are non-empty.
func (t Term) IsValid() bool {
	return t.ForeignTerm != "" && t.NativeTranslation != ""
}

// Matches reports whether input is an acceptable answer for the term.
func (t Term) Matches(input string) bool {
	return NormalizeAnswer(t.ForeignTerm) == NormalizeAnswer(input)
}
