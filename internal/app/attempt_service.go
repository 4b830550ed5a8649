package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quizmaster-service/internal/domain"
	"quizmaster-service/internal/grading"

	"github.com/google/uuid"
)

// AttemptRepository stores live attempts (in-memory, optionally backed by
// Redis liveness markers).
type AttemptRepository interface {
	Put(attempt *Attempt)
	Get(attemptID string) (*Attempt, bool)
	Delete(attemptID string)
}

// QuizReader loads quiz content for taking; implementations typically cache
// (memory or Redis) in front of the persistent store.
type QuizReader interface {
	GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error)
}

// AttemptService drives the respondent-side use cases: start an attempt,
// record answers, navigate, and finish with a scored, persisted result.
type AttemptService struct {
	attempts AttemptRepository
	quizzes  QuizReader
	results  ResultStore
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewAttemptService(attempts AttemptRepository, quizzes QuizReader, results ResultStore) *AttemptService {
	return &AttemptService{
		attempts: attempts,
		quizzes:  quizzes,
		results:  results,
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetShuffleSeed pins the shuffle source, for deterministic tests.
func (s *AttemptService) SetShuffleSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd = rand.New(rand.NewSource(seed))
}

// Start opens a new attempt against a published quiz and returns its first
// view. The quiz definition is deep-copied into the attempt, so later
// edits or shuffling never leak back into the store.
func (s *AttemptService) Start(ctx context.Context, quizID int64, userID *int64) (AttemptView, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return AttemptView{}, err
	}
	if quiz.Status != domain.StatusPublished {
		return AttemptView{}, domain.ErrQuizNotPublished
	}

	s.mu.Lock()
	rnd := rand.New(rand.NewSource(s.rnd.Int63()))
	s.mu.Unlock()

	attempt := NewAttempt(uuid.NewString(), quiz, userID, rnd)
	s.attempts.Put(attempt)
	return attempt.View(), nil
}

// Get returns the current view of an attempt.
func (s *AttemptService) Get(_ context.Context, attemptID string) (AttemptView, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return AttemptView{}, domain.ErrAttemptNotFound
	}
	return attempt.View(), nil
}

// Answer records a full answer value for the question at index.
func (s *AttemptService) Answer(_ context.Context, attemptID string, index int, answer domain.Answer) (AttemptView, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return AttemptView{}, domain.ErrAttemptNotFound
	}
	if err := attempt.RecordAnswer(index, answer); err != nil {
		return AttemptView{}, err
	}
	return attempt.View(), nil
}

// Toggle applies one option click to the question at index, with
// replace-on-single and toggle-on-multiple semantics.
func (s *AttemptService) Toggle(_ context.Context, attemptID string, index int, optionID int64) (AttemptView, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return AttemptView{}, domain.ErrAttemptNotFound
	}
	if err := attempt.ToggleOption(index, optionID); err != nil {
		return AttemptView{}, err
	}
	return attempt.View(), nil
}

// Advance moves the attempt position by direction, clamped at the ends.
func (s *AttemptService) Advance(_ context.Context, attemptID string, direction int) (AttemptView, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return AttemptView{}, domain.ErrAttemptNotFound
	}
	attempt.Advance(direction)
	return attempt.View(), nil
}

// Finish scores the attempt, persists the result and discards the attempt.
func (s *AttemptService) Finish(ctx context.Context, attemptID string) (domain.Result, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.Result{}, domain.ErrAttemptNotFound
	}

	questions, answers := attempt.gradingInput()
	result, err := grading.Score(questions, answers)
	if err != nil {
		return domain.Result{}, err
	}
	result.QuizID = attempt.quizID
	result.UserID = attempt.userID
	result.CompletedAt = s.now()

	saved, err := s.results.SaveResult(ctx, result)
	if err != nil {
		return domain.Result{}, err
	}
	s.attempts.Delete(attemptID)
	return saved, nil
}

// Abandon drops an attempt without scoring it.
func (s *AttemptService) Abandon(_ context.Context, attemptID string) {
	s.attempts.Delete(attemptID)
}
