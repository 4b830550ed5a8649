package grading

import (
	"errors"
	"reflect"
	"testing"

	"quizmaster-service/internal/domain"
)

func fourQuestionQuiz() []domain.Question {
	return []domain.Question{
		singleQuestion(),
		multiQuestion(),
		{Type: domain.QuestionText, Text: "Say yes", CorrectAnswer: "Yes"},
		{
			Type: domain.QuestionSingle,
			Text: "Pick again",
			Options: []domain.Option{
				{ID: 1, Text: "x", Correct: true},
				{ID: 2, Text: "y"},
			},
		},
	}
}

func TestScoreThreeOfFour(t *testing.T) {
	questions := fourQuestionQuiz()
	answers := map[int]domain.Answer{
		0: {Selected: []int64{3}},    // correct
		1: {Selected: []int64{4, 2}}, // correct, reordered
		2: {Text: " yes "},           // correct after normalization
		3: {Selected: []int64{2}},    // wrong
	}

	result, err := Score(questions, answers)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if result.Score != 75 {
		t.Fatalf("expected score 75, got %d", result.Score)
	}
	if result.CorrectCount != 3 || result.TotalQuestions != 4 {
		t.Fatalf("expected 3/4, got %d/%d", result.CorrectCount, result.TotalQuestions)
	}
	if len(result.Details) != 4 {
		t.Fatalf("expected 4 details, got %d", len(result.Details))
	}
	if result.Details[3].Correct {
		t.Fatalf("last question should be wrong")
	}
}

func TestScoreSkippedSingleQuestion(t *testing.T) {
	questions := []domain.Question{singleQuestion()}

	result, err := Score(questions, map[int]domain.Answer{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if result.Score != 0 || result.CorrectCount != 0 {
		t.Fatalf("expected 0 score, got %d (%d correct)", result.Score, result.CorrectCount)
	}
	if result.Details[0].Answer != nil {
		t.Fatalf("skipped question must carry the unanswered marker")
	}
	if result.Details[0].Correct {
		t.Fatalf("skipped question must be incorrect")
	}
}

func TestScoreEmptyQuizFails(t *testing.T) {
	_, err := Score(nil, nil)
	if !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	questions := fourQuestionQuiz()
	answers := map[int]domain.Answer{
		0: {Selected: []int64{3}},
		2: {Text: "no"},
	}

	first, err := Score(questions, answers)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	second, err := Score(questions, answers)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring twice diverged:\n%+v\n%+v", first, second)
	}
}

func TestScoreCanonicalAnswers(t *testing.T) {
	questions := fourQuestionQuiz()
	result, err := Score(questions, map[int]domain.Answer{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	// correct option texts in option-definition order, not respondent order
	if got := result.Details[1].CorrectAnswer; !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Fatalf("expected [b d], got %v", got)
	}
	if got := result.Details[2].CorrectAnswer; !reflect.DeepEqual(got, []string{"Yes"}) {
		t.Fatalf("expected reference answer, got %v", got)
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	// 5 of 8 = 62.5 -> 63
	questions := make([]domain.Question, 0, 8)
	answers := make(map[int]domain.Answer, 5)
	for i := 0; i < 8; i++ {
		questions = append(questions, domain.Question{
			Type: domain.QuestionSingle,
			Text: "q",
			Options: []domain.Option{
				{ID: 1, Text: "right", Correct: true},
				{ID: 2, Text: "wrong"},
			},
		})
	}
	for i := 0; i < 5; i++ {
		answers[i] = domain.Answer{Selected: []int64{1}}
	}

	result, err := Score(questions, answers)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if result.Score != 63 {
		t.Fatalf("expected 63, got %d", result.Score)
	}
}
