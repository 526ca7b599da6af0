// Package catalog holds the fixed Patternwork question set. The list is
// defined once at process start and never changes during a run; clients
// fetch it instead of hardcoding their own copy.
package catalog

import "github.com/patternwork/patternwork-backend/internal/model"

var questions = []model.Question{
	{
		ID:    "conflict-1",
		Label: "When someone sounds irritated with you, what happens in you first?",
		Choices: []model.Choice{
			{Value: "steadying", Label: "I steady myself and try to understand."},
			{Value: "adjusting", Label: "I adjust quickly to avoid making it worse."},
			{Value: "replaying", Label: "I replay their tone in my head."},
			{Value: "pulling-back", Label: "I pull back and show less of myself."},
			{Value: "wave", Label: "I feel a wave of emotion and react fast."},
			{Value: "blank", Label: "I go a bit blank or distant."},
		},
		Alts: []string{
			"When tension rises in a conversation, what happens in you first?",
			"When you sense a shift in someone's tone toward you, what shows up first in your system?",
		},
	},
	{
		ID:    "state-1",
		Label: "On difficult days, which description fits you more often?",
		Choices: []model.Choice{
			{Value: "revved", Label: "Revved up, restless, hard to slow down."},
			{Value: "heavy", Label: "Heavy, slowed, hard to start anything."},
			{Value: "both", Label: "It swings between both in the same day."},
			{Value: "numb", Label: "Mostly numb or checked-out."},
		},
		Alts: []string{
			"When you feel off, does your system tend to speed up, slow down, or both?",
		},
	},
	{
		ID:    "attachment-1",
		Label: "When a relationship starts to matter, what makes you most uneasy?",
		Choices: []model.Choice{
			{Value: "too-close", Label: "Feeling too close or dependent."},
			{Value: "rejection", Label: "Fear they'll lose interest or leave."},
			{Value: "conflict", Label: "Conflict or misalignment showing up."},
			{Value: "exposed", Label: "Feeling too seen or emotionally exposed."},
			{Value: "none", Label: "I don't usually feel uneasy about that."},
		},
		Alts: []string{
			"When someone becomes important to you, what kind of risk feels sharpest?",
		},
	},
}

var byID = func() map[string]*model.Question {
	m := make(map[string]*model.Question, len(questions))
	for i := range questions {
		m[questions[i].ID] = &questions[i]
	}
	return m
}()

// Questions returns the ordered question list. Callers must not mutate it.
func Questions() []model.Question {
	return questions
}

// ByID looks up a question by its ID.
func ByID(id string) (*model.Question, bool) {
	q, ok := byID[id]
	return q, ok
}

// Len returns the number of questions in the catalog.
func Len() int {
	return len(questions)
}
