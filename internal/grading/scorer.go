package grading

import (
	"math"

	"quizmaster-service/internal/domain"
)

// Score grades a finished attempt. Questions are walked in session order
// (which may be shuffled); answers maps question index to the recorded
// answer, with absent entries meaning the question was skipped. The
// returned Result carries the score, counts and per-question detail; the
// caller fills in quiz/user/timestamp fields. Pure: scoring the same
// input twice yields the same Result.
func Score(questions []domain.Question, answers map[int]domain.Answer) (domain.Result, error) {
	total := len(questions)
	if total == 0 {
		return domain.Result{}, domain.ErrEmptyQuiz
	}

	correctCount := 0
	details := make([]domain.ResultDetail, 0, total)
	for i, question := range questions {
		answer, answered := answers[i]
		if answered && answer.Empty() {
			answered = false
		}

		correct := answered && IsCorrect(question, answer)
		if correct {
			correctCount++
		}

		detail := domain.ResultDetail{
			QuestionText:  question.Text,
			Correct:       correct,
			CorrectAnswer: canonicalAnswer(question),
		}
		if answered {
			recorded := answer.Clone()
			detail.Answer = &recorded
		}
		details = append(details, detail)
	}

	score := int(math.Round(float64(correctCount) / float64(total) * 100))
	return domain.Result{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: total,
		Details:        details,
	}, nil
}

// canonicalAnswer renders the correct answer for a result detail: the
// reference string for text questions, otherwise the correct option texts
// in option-definition order.
func canonicalAnswer(q domain.Question) []string {
	if q.Type == domain.QuestionText {
		return []string{q.CorrectAnswer}
	}
	var texts []string
	for _, opt := range q.Options {
		if opt.Correct {
			texts = append(texts, opt.Text)
		}
	}
	return texts
}
