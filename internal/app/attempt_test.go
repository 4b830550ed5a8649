package app

import (
	"errors"
	"math/rand"
	"testing"

	"quizmaster-service/internal/domain"
)

func shuffleQuiz(n int) domain.Quiz {
	quiz := domain.Quiz{
		ID:               7,
		Title:            "Shuffled",
		Category:         "misc",
		Status:           domain.StatusPublished,
		ShuffleQuestions: true,
	}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:   int64(i + 1),
			Type: domain.QuestionSingle,
			Text: "q",
			Options: []domain.Option{
				{ID: 1, Text: "a", Correct: true},
				{ID: 2, Text: "b"},
			},
		})
	}
	return quiz
}

func TestShuffleIsAPermutation(t *testing.T) {
	quiz := shuffleQuiz(10)

	attempt := NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(42)))

	seen := make(map[int64]int)
	for _, q := range attempt.questions {
		seen[q.ID]++
	}
	if len(seen) != 10 {
		t.Fatalf("expected 10 distinct questions, got %d", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("question %d appears %d times", id, count)
		}
	}
}

func TestShuffleNeverMutatesTheQuiz(t *testing.T) {
	quiz := shuffleQuiz(10)
	originalOrder := make([]int64, len(quiz.Questions))
	for i, q := range quiz.Questions {
		originalOrder[i] = q.ID
	}

	_ = NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(1)))

	for i, q := range quiz.Questions {
		if q.ID != originalOrder[i] {
			t.Fatalf("stored quiz order changed at %d", i)
		}
	}
}

func TestRecordAnswerRejectsUnknownOptions(t *testing.T) {
	quiz := shuffleQuiz(2)
	quiz.ShuffleQuestions = false
	attempt := NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(1)))

	if err := attempt.RecordAnswer(0, domain.Answer{Selected: []int64{99}}); !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if err := attempt.RecordAnswer(5, domain.Answer{Selected: []int64{1}}); !errors.Is(err, domain.ErrQuestionOutOfRange) {
		t.Fatalf("expected ErrQuestionOutOfRange, got %v", err)
	}
	if err := attempt.RecordAnswer(0, domain.Answer{Selected: []int64{1}}); err != nil {
		t.Fatalf("valid answer rejected: %v", err)
	}
}

func TestToggleSemantics(t *testing.T) {
	quiz := domain.Quiz{
		ID:     1,
		Status: domain.StatusPublished,
		Questions: []domain.Question{
			{
				Type: domain.QuestionSingle,
				Text: "single",
				Options: []domain.Option{
					{ID: 1, Text: "a", Correct: true},
					{ID: 2, Text: "b"},
				},
			},
			{
				Type: domain.QuestionMultiple,
				Text: "multi",
				Options: []domain.Option{
					{ID: 1, Text: "a", Correct: true},
					{ID: 2, Text: "b", Correct: true},
					{ID: 3, Text: "c"},
				},
			},
		},
	}
	attempt := NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(1)))

	// single: second click replaces the first
	if err := attempt.ToggleOption(0, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := attempt.ToggleOption(0, 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := attempt.answers[0].Selected; len(got) != 1 || got[0] != 2 {
		t.Fatalf("single toggle should replace, got %v", got)
	}

	// multiple: clicks toggle membership
	for _, id := range []int64{1, 2, 3} {
		if err := attempt.ToggleOption(1, id); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if err := attempt.ToggleOption(1, 3); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := attempt.answers[1].Selected; len(got) != 2 {
		t.Fatalf("expected {1,2} after removing 3, got %v", got)
	}

	if err := attempt.ToggleOption(1, 42); !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

func TestAdvanceClampsAtBounds(t *testing.T) {
	quiz := shuffleQuiz(3)
	quiz.ShuffleQuestions = false
	attempt := NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(1)))

	attempt.Advance(-1)
	if attempt.View().Index != 0 {
		t.Fatalf("advance(-1) at start must be a no-op")
	}

	attempt.Advance(+1)
	attempt.Advance(+1)
	if !attempt.Complete() {
		t.Fatalf("expected attempt complete at last question")
	}
	attempt.Advance(+1)
	if view := attempt.View(); view.Index != 2 || !view.Complete {
		t.Fatalf("advance past end must be a no-op, got index %d", view.Index)
	}
}

func TestProgressFraction(t *testing.T) {
	quiz := shuffleQuiz(4)
	quiz.ShuffleQuestions = false
	attempt := NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(1)))

	if got := attempt.Progress(); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	attempt.Advance(+1)
	if got := attempt.Progress(); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestViewStripsAnswerKey(t *testing.T) {
	quiz := shuffleQuiz(1)
	quiz.ShuffleQuestions = false
	quiz.Questions = append(quiz.Questions, domain.Question{
		Type:          domain.QuestionText,
		Text:          "free text",
		CorrectAnswer: "secret",
	})
	attempt := NewAttempt("att-1", quiz, nil, rand.New(rand.NewSource(1)))

	view := attempt.View()
	for _, opt := range view.Question.Options {
		if opt.Correct {
			t.Fatalf("view leaked a correct flag")
		}
	}

	attempt.Advance(+1)
	if view := attempt.View(); view.Question.CorrectAnswer != "" {
		t.Fatalf("view leaked the reference answer")
	}
}
