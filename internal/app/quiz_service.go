package app

import (
	"context"
	"time"

	"quizmaster-service/internal/domain"
)

// QuizStore persists quiz definitions (in-memory, Postgres, etc).
type QuizStore interface {
	GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error)
	SaveQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	DeleteQuiz(ctx context.Context, quizID int64) error
	ListQuizzes(ctx context.Context, filter QuizFilter) ([]domain.Quiz, error)
}

// QuizFilter narrows ListQuizzes. Zero value lists everything.
type QuizFilter struct {
	AuthorID *int64
	Status   domain.QuizStatus
}

// ResultStore persists finished attempt results.
type ResultStore interface {
	SaveResult(ctx context.Context, result domain.Result) (domain.Result, error)
	ListResultsForQuiz(ctx context.Context, quizID int64) ([]domain.Result, error)
	DeleteResultsForQuiz(ctx context.Context, quizID int64) error
}

// CacheInvalidator drops cached copies of a quiz after it changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, quizID int64)
}

// QuizService covers the authoring use cases: quiz CRUD, publishing and
// result inspection.
type QuizService struct {
	quizzes QuizStore
	results ResultStore
	cache   CacheInvalidator
	now     func() time.Time
}

func NewQuizService(quizzes QuizStore, results ResultStore) *QuizService {
	return &QuizService{quizzes: quizzes, results: results, now: time.Now}
}

// SetCache wires the read-path cache so edits and deletes evict stale
// copies. Optional; a nil cache is skipped.
func (s *QuizService) SetCache(cache CacheInvalidator) {
	s.cache = cache
}

// CreateQuiz validates and stores a new quiz for authorID.
func (s *QuizService) CreateQuiz(ctx context.Context, authorID int64, quiz domain.Quiz) (domain.Quiz, error) {
	quiz.ID = 0
	quiz.AuthorID = authorID
	quiz.CreatedAt = s.now()
	if quiz.Status == "" {
		quiz.Status = domain.StatusDraft
	}
	if err := domain.Validate(quiz); err != nil {
		return domain.Quiz{}, err
	}
	return s.quizzes.SaveQuiz(ctx, quiz)
}

// UpdateQuiz validates and replaces an existing quiz. Only the author may
// update; author and creation time are preserved from the stored copy.
func (s *QuizService) UpdateQuiz(ctx context.Context, callerID, quizID int64, quiz domain.Quiz) (domain.Quiz, error) {
	existing, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if existing.AuthorID != callerID {
		return domain.Quiz{}, domain.ErrNotAuthor
	}

	quiz.ID = existing.ID
	quiz.AuthorID = existing.AuthorID
	quiz.CreatedAt = existing.CreatedAt
	if quiz.Status == "" {
		quiz.Status = existing.Status
	}
	if err := domain.Validate(quiz); err != nil {
		return domain.Quiz{}, err
	}
	saved, err := s.quizzes.SaveQuiz(ctx, quiz)
	if err != nil {
		return domain.Quiz{}, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, saved.ID)
	}
	return saved, nil
}

// DeleteQuiz removes the quiz and every result recorded for it. Author only.
func (s *QuizService) DeleteQuiz(ctx context.Context, callerID, quizID int64) error {
	existing, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if existing.AuthorID != callerID {
		return domain.ErrNotAuthor
	}
	if err := s.results.DeleteResultsForQuiz(ctx, quizID); err != nil {
		return err
	}
	if err := s.quizzes.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, quizID)
	}
	return nil
}

// GetQuiz loads one quiz. Non-authors receive the published definition with
// the answer key stripped; drafts are only visible to their author.
func (s *QuizService) GetQuiz(ctx context.Context, callerID, quizID int64) (domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if quiz.AuthorID == callerID {
		return quiz, nil
	}
	if quiz.Status != domain.StatusPublished {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz.WithoutAnswers(), nil
}

// ListPublished returns all published quizzes with answer keys stripped.
func (s *QuizService) ListPublished(ctx context.Context) ([]domain.Quiz, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx, QuizFilter{Status: domain.StatusPublished})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, len(quizzes))
	for i, q := range quizzes {
		out[i] = q.WithoutAnswers()
	}
	return out, nil
}

// ListByAuthor returns the caller's quizzes in any status.
func (s *QuizService) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Quiz, error) {
	return s.quizzes.ListQuizzes(ctx, QuizFilter{AuthorID: &authorID})
}

// ListResults returns every result for a quiz. Author only.
func (s *QuizService) ListResults(ctx context.Context, callerID, quizID int64) ([]domain.Result, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != callerID {
		return nil, domain.ErrNotAuthor
	}
	return s.results.ListResultsForQuiz(ctx, quizID)
}
