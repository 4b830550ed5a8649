package grading

import (
	"testing"

	"quizmaster-service/internal/domain"
)

func singleQuestion() domain.Question {
	return domain.Question{
		ID:   1,
		Type: domain.QuestionSingle,
		Text: "Pick one",
		Options: []domain.Option{
			{ID: 1, Text: "a"},
			{ID: 2, Text: "b"},
			{ID: 3, Text: "c", Correct: true},
		},
	}
}

func multiQuestion() domain.Question {
	return domain.Question{
		ID:   2,
		Type: domain.QuestionMultiple,
		Text: "Pick several",
		Options: []domain.Option{
			{ID: 1, Text: "a"},
			{ID: 2, Text: "b", Correct: true},
			{ID: 3, Text: "c"},
			{ID: 4, Text: "d", Correct: true},
		},
	}
}

func TestSingleChoiceMatching(t *testing.T) {
	q := singleQuestion()

	tests := []struct {
		name   string
		answer domain.Answer
		want   bool
	}{
		{"correct option", domain.Answer{Selected: []int64{3}}, true},
		{"wrong option", domain.Answer{Selected: []int64{1}}, false},
		{"skipped", domain.Answer{}, false},
		{"extra selections are wrong", domain.Answer{Selected: []int64{3, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(q, tt.answer); got != tt.want {
				t.Fatalf("IsCorrect=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultipleChoiceUsesSetSemantics(t *testing.T) {
	q := multiQuestion()

	if !IsCorrect(q, domain.Answer{Selected: []int64{2, 4}}) {
		t.Fatalf("exact set should be correct")
	}
	// order of the respondent's selection must not matter
	if !IsCorrect(q, domain.Answer{Selected: []int64{4, 2}}) {
		t.Fatalf("reordered set should be correct")
	}
	if IsCorrect(q, domain.Answer{Selected: []int64{2}}) {
		t.Fatalf("subset should be incorrect")
	}
	if IsCorrect(q, domain.Answer{Selected: []int64{2, 4, 1}}) {
		t.Fatalf("superset should be incorrect")
	}
	// duplicate ids collapse, the set is still exact
	if !IsCorrect(q, domain.Answer{Selected: []int64{2, 4, 2}}) {
		t.Fatalf("duplicated id should not break set equality")
	}
	if IsCorrect(q, domain.Answer{}) {
		t.Fatalf("skipped should be incorrect")
	}
}

func TestTextMatchingNormalizesCaseAndWhitespace(t *testing.T) {
	q := domain.Question{Type: domain.QuestionText, Text: "Say yes", CorrectAnswer: "Yes"}

	if !IsCorrect(q, domain.Answer{Text: "  Yes  "}) {
		t.Fatalf("surrounding whitespace should be ignored")
	}
	if !IsCorrect(q, domain.Answer{Text: "yes"}) {
		t.Fatalf("case should be ignored")
	}
	if IsCorrect(q, domain.Answer{Text: "Yess"}) {
		t.Fatalf("near-miss should be incorrect")
	}
	if IsCorrect(q, domain.Answer{Text: ""}) {
		t.Fatalf("empty answer should be incorrect")
	}
	// internal whitespace stays significant
	if IsCorrect(q, domain.Answer{Text: "y es"}) {
		t.Fatalf("internal whitespace should matter")
	}
}

func TestMalformedQuestionsGradeIncorrect(t *testing.T) {
	q := singleQuestion()
	for i := range q.Options {
		q.Options[i].Correct = false
	}
	if IsCorrect(q, domain.Answer{Selected: []int64{1}}) {
		t.Fatalf("question without a correct option must grade incorrect")
	}

	q.Type = domain.QuestionMultiple
	if IsCorrect(q, domain.Answer{Selected: []int64{1, 2, 3}}) {
		t.Fatalf("multiple without correct options must grade incorrect")
	}
}
