package domain

import "strings"

// Validate enforces the structural rules a quiz must satisfy before it may
// be published or taken. Checks run in a fixed order and stop at the first
// failure. Pure; the quiz is never modified.
func Validate(quiz Quiz) error {
	if strings.TrimSpace(quiz.Title) == "" {
		return &ValidationError{Code: ValidationMissingTitle, QuestionIndex: -1}
	}
	if strings.TrimSpace(quiz.Category) == "" {
		return &ValidationError{Code: ValidationMissingCategory, QuestionIndex: -1}
	}
	if len(quiz.Questions) == 0 {
		return &ValidationError{Code: ValidationNoQuestions, QuestionIndex: -1}
	}
	for i, question := range quiz.Questions {
		if strings.TrimSpace(question.Text) == "" {
			return &ValidationError{Code: ValidationEmptyQuestion, QuestionIndex: i}
		}
	}
	for i, question := range quiz.Questions {
		if !question.Type.Choice() {
			continue
		}
		if len(question.Options) < 2 {
			return &ValidationError{Code: ValidationTooFewOptions, QuestionIndex: i}
		}
		hasCorrect := false
		for _, opt := range question.Options {
			if opt.Correct {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return &ValidationError{Code: ValidationNoCorrectOption, QuestionIndex: i}
		}
	}
	return nil
}
