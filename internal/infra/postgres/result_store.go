package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizmaster-service/internal/domain"

	"github.com/uptrace/bun"
)

type resultRow struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID             int64     `bun:"id,pk,autoincrement"`
	QuizID         int64     `bun:"quiz_id"`
	UserID         *int64    `bun:"user_id"`
	Score          int       `bun:"score"`
	CorrectCount   int       `bun:"correct_count"`
	TotalQuestions int       `bun:"total_questions"`
	Details        []byte    `bun:"details,type:jsonb"`
	CompletedAt    time.Time `bun:"completed_at"`
}

// ResultStore is the Postgres implementation of app.ResultStore.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) SaveResult(ctx context.Context, result domain.Result) (domain.Result, error) {
	details, err := json.Marshal(result.Details)
	if err != nil {
		return domain.Result{}, fmt.Errorf("encode result details: %w", err)
	}
	row := &resultRow{
		QuizID:         result.QuizID,
		UserID:         result.UserID,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Details:        details,
		CompletedAt:    result.CompletedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		return domain.Result{}, fmt.Errorf("insert result: %w", err)
	}
	result.ID = row.ID
	return result, nil
}

func (s *ResultStore) ListResultsForQuiz(ctx context.Context, quizID int64) ([]domain.Result, error) {
	var rows []resultRow
	err := s.db.NewSelect().Model(&rows).
		Where("r.quiz_id = ?", quizID).
		Order("r.completed_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	out := make([]domain.Result, 0, len(rows))
	for _, row := range rows {
		result := domain.Result{
			ID:             row.ID,
			QuizID:         row.QuizID,
			UserID:         row.UserID,
			Score:          row.Score,
			CorrectCount:   row.CorrectCount,
			TotalQuestions: row.TotalQuestions,
			CompletedAt:    row.CompletedAt,
		}
		if len(row.Details) > 0 {
			if err := json.Unmarshal(row.Details, &result.Details); err != nil {
				return nil, fmt.Errorf("decode result details: %w", err)
			}
		}
		out = append(out, result)
	}
	return out, nil
}

func (s *ResultStore) DeleteResultsForQuiz(ctx context.Context, quizID int64) error {
	if _, err := s.db.NewDelete().Model((*resultRow)(nil)).Where("quiz_id = ?", quizID).Exec(ctx); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}
	return nil
}
