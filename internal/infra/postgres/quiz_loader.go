package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quizmaster-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizLoader is the hot read path for attempt starts: it pulls the quiz
// JSONB straight off a pgx pool, bypassing the ORM. Used behind the memory
// or Redis quiz cache.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	var (
		raw    []byte
		status string
	)
	err := l.pool.QueryRow(ctx, `SELECT data, status FROM quizzes WHERE id=$1`, quizID).Scan(&raw, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	quiz.ID = quizID
	quiz.Status = domain.QuizStatus(status)
	return quiz, nil
}
