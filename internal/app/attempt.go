package app

import (
	"math/rand"
	"sync"
	"time"

	"quizmaster-service/internal/domain"
)

// Attempt is one respondent's in-memory pass through a quiz. It owns a deep
// copy of the quiz questions (shuffled at creation when the quiz asks for
// it), the current position and the recorded answers; the stored quiz
// definition is never touched. A mutex guards against interleaved transport
// calls on the same attempt.
type Attempt struct {
	id        string
	quizID    int64
	quizTitle string
	userID    *int64
	createdAt time.Time
	now       func() time.Time

	mu        sync.RWMutex
	questions []domain.Question
	index     int
	answers   map[int]domain.Answer
}

// NewAttempt builds an attempt over a deep copy of the quiz questions. When
// the quiz has ShuffleQuestions set, the copy is permuted with Fisher-Yates
// driven by rnd; passing a seeded source makes the order deterministic in
// tests.
func NewAttempt(id string, quiz domain.Quiz, userID *int64, rnd *rand.Rand) *Attempt {
	return newAttemptWithClock(id, quiz, userID, rnd, time.Now)
}

func newAttemptWithClock(id string, quiz domain.Quiz, userID *int64, rnd *rand.Rand, now func() time.Time) *Attempt {
	snapshot := quiz.Clone().Questions
	if quiz.ShuffleQuestions {
		for i := len(snapshot) - 1; i >= 1; i-- {
			j := rnd.Intn(i + 1)
			snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
		}
	}
	return &Attempt{
		id:        id,
		quizID:    quiz.ID,
		quizTitle: quiz.Title,
		userID:    userID,
		createdAt: now(),
		now:       now,
		questions: snapshot,
		answers:   make(map[int]domain.Answer),
	}
}

// ID returns the attempt identifier.
func (a *Attempt) ID() string { return a.id }

// QuizID returns the quiz the attempt belongs to.
func (a *Attempt) QuizID() int64 { return a.quizID }

// CreatedAt returns when the attempt was started.
func (a *Attempt) CreatedAt() time.Time { return a.createdAt }

// RecordAnswer stores the answer for the question at index, replacing any
// prior value. Option IDs are checked against the question's options;
// unknown IDs are rejected.
func (a *Attempt) RecordAnswer(index int, answer domain.Answer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.questions) {
		return domain.ErrQuestionOutOfRange
	}
	question := a.questions[index]
	for _, id := range answer.Selected {
		if !optionExists(question, id) {
			return domain.ErrUnknownOption
		}
	}
	a.answers[index] = answer.Clone()
	return nil
}

// ToggleOption applies a single option click to the question at index: for
// single-choice questions the selection is replaced, for multiple-choice
// the option is toggled in or out of the set.
func (a *Attempt) ToggleOption(index int, optionID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.questions) {
		return domain.ErrQuestionOutOfRange
	}
	question := a.questions[index]
	if !optionExists(question, optionID) {
		return domain.ErrUnknownOption
	}

	switch question.Type {
	case domain.QuestionSingle:
		a.answers[index] = domain.Answer{Selected: []int64{optionID}}
	case domain.QuestionMultiple:
		current := a.answers[index].Selected
		next := make([]int64, 0, len(current)+1)
		removed := false
		for _, id := range current {
			if id == optionID {
				removed = true
				continue
			}
			next = append(next, id)
		}
		if !removed {
			next = append(next, optionID)
		}
		a.answers[index] = domain.Answer{Selected: next}
	default:
		return domain.ErrUnknownOption
	}
	return nil
}

// Advance moves the current position by direction (+1 or -1), clamped to
// the question range. Moving past either end is a no-op, not an error.
func (a *Attempt) Advance(direction int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.index + direction
	if next < 0 || next >= len(a.questions) {
		return
	}
	a.index = next
}

// Complete reports whether the respondent is on the last question.
func (a *Attempt) Complete() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.index == len(a.questions)-1
}

// Progress returns (current+1)/total in [0,1] for progress rendering.
func (a *Attempt) Progress() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.questions) == 0 {
		return 0
	}
	return float64(a.index+1) / float64(len(a.questions))
}

// View renders the attempt for the presentation layer: the current question
// with the answer key stripped, the answer recorded so far and the progress
// state.
func (a *Attempt) View() AttemptView {
	a.mu.RLock()
	defer a.mu.RUnlock()

	view := AttemptView{
		AttemptID: a.id,
		QuizID:    a.quizID,
		QuizTitle: a.quizTitle,
		Index:     a.index,
		Total:     len(a.questions),
		Complete:  a.index == len(a.questions)-1,
	}
	if len(a.questions) > 0 {
		view.Progress = float64(a.index+1) / float64(len(a.questions))
		question := a.questions[a.index].Clone()
		question.CorrectAnswer = ""
		for i := range question.Options {
			question.Options[i].Correct = false
		}
		view.Question = question
		if answer, ok := a.answers[a.index]; ok {
			recorded := answer.Clone()
			view.Answer = &recorded
		}
	}
	return view
}

// grading snapshot: copies of the session-ordered questions and answers, so
// scoring never races with late writes.
func (a *Attempt) gradingInput() ([]domain.Question, map[int]domain.Answer) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	questions := make([]domain.Question, len(a.questions))
	for i, q := range a.questions {
		questions[i] = q.Clone()
	}
	answers := make(map[int]domain.Answer, len(a.answers))
	for i, ans := range a.answers {
		answers[i] = ans.Clone()
	}
	return questions, answers
}

func optionExists(q domain.Question, optionID int64) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// AttemptView is the read-only state handed to the presentation layer.
type AttemptView struct {
	AttemptID string          `json:"attemptId"`
	QuizID    int64           `json:"quizId"`
	QuizTitle string          `json:"quizTitle"`
	Index     int             `json:"index"`
	Total     int             `json:"total"`
	Question  domain.Question `json:"question"`
	Answer    *domain.Answer  `json:"answer,omitempty"`
	Progress  float64         `json:"progress"`
	Complete  bool            `json:"complete"`
}
