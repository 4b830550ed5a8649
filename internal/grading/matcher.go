// Package grading holds the pure answer-matching and scoring logic.
package grading

import (
	"strings"

	"quizmaster-service/internal/domain"
)

// IsCorrect decides whether an answer is correct for the given question.
// An empty answer is simply incorrect, never an error. A choice question
// with no option marked correct (malformed data that bypassed validation)
// grades as incorrect for any answer.
func IsCorrect(question domain.Question, answer domain.Answer) bool {
	switch question.Type {
	case domain.QuestionSingle:
		correct := correctOptionSet(question)
		if len(correct) != 1 || len(answer.Selected) != 1 {
			return false
		}
		_, ok := correct[answer.Selected[0]]
		return ok
	case domain.QuestionMultiple:
		correct := correctOptionSet(question)
		if len(correct) == 0 {
			return false
		}
		return setEqual(correct, toSet(answer.Selected))
	case domain.QuestionText:
		if answer.Text == "" {
			return false
		}
		return normalize(answer.Text) == normalize(question.CorrectAnswer)
	default:
		return false
	}
}

// normalize trims surrounding whitespace and lowercases. Diacritics,
// punctuation and internal whitespace stay significant.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func correctOptionSet(q domain.Question) map[int64]struct{} {
	set := make(map[int64]struct{})
	for _, opt := range q.Options {
		if opt.Correct {
			set[opt.ID] = struct{}{}
		}
	}
	return set
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func setEqual(a, b map[int64]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
