package model

// Choice is one selectable option of a question.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is a single assessment question. The catalog fixes the ordered
// question list at process start; nothing mutates a Question afterwards.
type Question struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Alts holds alternative phrasings of the same question. The primary
	// Label counts as variant 0, Alts[k] as variant k+1.
	Alts    []string `json:"alts,omitempty"`
	Choices []Choice `json:"choices"`
}

// Variants returns the total number of phrasings (primary + alternates).
func (q *Question) Variants() int {
	return 1 + len(q.Alts)
}

// Text returns the phrasing for the given variant index. Out-of-range
// indexes fall back to the primary label.
func (q *Question) Text(altIndex int) string {
	if altIndex > 0 && altIndex-1 < len(q.Alts) {
		return q.Alts[altIndex-1]
	}
	return q.Label
}

// HasChoice reports whether value names one of the question's choices.
func (q *Question) HasChoice(value string) bool {
	for _, c := range q.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// ChoiceLabel returns the label for a choice value, or the value itself
// when it is unknown.
func (q *Question) ChoiceLabel(value string) string {
	for _, c := range q.Choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
