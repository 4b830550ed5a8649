package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizNotPublished is returned when an attempt is started on a draft.
	ErrQuizNotPublished = errors.New("quiz is not published")
	// ErrNotAuthor is returned when a caller mutates or inspects a quiz they do not own.
	ErrNotAuthor = errors.New("caller is not the quiz author")
	// ErrAttemptNotFound indicates an unknown or expired attempt ID.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrQuestionOutOfRange indicates an answer was recorded against a question index
	// outside the attempt's question list.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrUnknownOption is returned when a submitted option ID does not belong to the
	// current question.
	ErrUnknownOption = errors.New("option does not belong to question")
	// ErrEmptyQuiz is returned when scoring is invoked on a quiz with zero questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
)

// ValidationCode identifies which structural rule a quiz definition broke.
type ValidationCode string

const (
	ValidationMissingTitle    ValidationCode = "missing_title"
	ValidationMissingCategory ValidationCode = "missing_category"
	ValidationNoQuestions     ValidationCode = "no_questions"
	ValidationEmptyQuestion   ValidationCode = "empty_question_text"
	ValidationTooFewOptions   ValidationCode = "too_few_options"
	ValidationNoCorrectOption ValidationCode = "no_correct_option"
)

// ValidationError reports the first structural rule a quiz failed.
// QuestionIndex is -1 for quiz-level failures.
type ValidationError struct {
	Code          ValidationCode
	QuestionIndex int
}

func (e *ValidationError) Error() string {
	if e.QuestionIndex < 0 {
		return fmt.Sprintf("quiz validation failed: %s", e.Code)
	}
	return fmt.Sprintf("quiz validation failed: %s (question %d)", e.Code, e.QuestionIndex)
}

// AsValidationError unwraps err into a ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
