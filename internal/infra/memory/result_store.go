package memory

import (
	"context"
	"sort"
	"sync"

	"quizmaster-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore.
type ResultStore struct {
	mu      sync.RWMutex
	nextID  int64
	results map[int64]domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{nextID: 1, results: make(map[int64]domain.Result)}
}

func (s *ResultStore) SaveResult(_ context.Context, result domain.Result) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result.ID = s.nextID
	s.nextID++
	s.results[result.ID] = result
	return result, nil
}

func (s *ResultStore) ListResultsForQuiz(_ context.Context, quizID int64) ([]domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Result
	for _, result := range s.results {
		if result.QuizID == quizID {
			out = append(out, result)
		}
	}
	// newest first, matching the SQL store ordering
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (s *ResultStore) DeleteResultsForQuiz(_ context.Context, quizID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, result := range s.results {
		if result.QuizID == quizID {
			delete(s.results, id)
		}
	}
	return nil
}
