package memory

import (
	"context"
	"sort"
	"sync"

	"quizmaster-service/internal/app"
	"quizmaster-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore, useful for
// development and tests when no Postgres is configured.
type QuizStore struct {
	mu      sync.RWMutex
	nextID  int64
	quizzes map[int64]domain.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{nextID: 1, quizzes: make(map[int64]domain.Quiz)}
}

// Seed inserts quizzes as-is, keeping their IDs. Test/demo helper.
func (s *QuizStore) Seed(quizzes ...domain.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, quiz := range quizzes {
		s.quizzes[quiz.ID] = quiz.Clone()
		if quiz.ID >= s.nextID {
			s.nextID = quiz.ID + 1
		}
	}
}

func (s *QuizStore) GetQuiz(_ context.Context, quizID int64) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz.Clone(), nil
}

func (s *QuizStore) SaveQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz.ID == 0 {
		quiz.ID = s.nextID
		s.nextID++
	} else if _, ok := s.quizzes[quiz.ID]; !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	s.quizzes[quiz.ID] = quiz.Clone()
	return quiz, nil
}

func (s *QuizStore) DeleteQuiz(_ context.Context, quizID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.quizzes, quizID)
	return nil
}

func (s *QuizStore) ListQuizzes(_ context.Context, filter app.QuizFilter) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Quiz
	for _, quiz := range s.quizzes {
		if filter.AuthorID != nil && quiz.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.Status != "" && quiz.Status != filter.Status {
			continue
		}
		out = append(out, quiz.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
