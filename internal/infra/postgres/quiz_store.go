package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizmaster-service/internal/app"
	"quizmaster-service/internal/domain"

	"github.com/uptrace/bun"
)

// quizRow maps the quizzes table. The full definition lives in a JSONB
// column; author/status/created_at are lifted out for filtering.
type quizRow struct {
	bun.BaseModel `bun:"table:quizzes,alias:q"`

	ID        int64     `bun:"id,pk,autoincrement"`
	AuthorID  int64     `bun:"author_id"`
	Status    string    `bun:"status"`
	Data      []byte    `bun:"data,type:jsonb"`
	CreatedAt time.Time `bun:"created_at"`
}

// QuizStore is the Postgres implementation of app.QuizStore, built on bun.
type QuizStore struct {
	db *bun.DB
}

func NewQuizStore(db *bun.DB) *QuizStore {
	return &QuizStore{db: db}
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	row := new(quizRow)
	err := s.db.NewSelect().Model(row).Where("q.id = ?", quizID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	return decodeQuiz(row)
}

func (s *QuizStore) SaveQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID == 0 {
		return s.insertQuiz(ctx, quiz)
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("encode quiz: %w", err)
	}
	res, err := s.db.NewUpdate().
		Model(&quizRow{ID: quiz.ID, AuthorID: quiz.AuthorID, Status: string(quiz.Status), Data: data, CreatedAt: quiz.CreatedAt}).
		Column("author_id", "status", "data", "created_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("update quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) insertQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := &quizRow{
			AuthorID:  quiz.AuthorID,
			Status:    string(quiz.Status),
			Data:      []byte("{}"),
			CreatedAt: quiz.CreatedAt,
		}
		if _, err := tx.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}
		quiz.ID = row.ID

		data, err := json.Marshal(quiz)
		if err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}
		if _, err := tx.NewUpdate().Model((*quizRow)(nil)).
			Set("data = ?", string(data)).
			Where("id = ?", quiz.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("store quiz body: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, quizID int64) error {
	res, err := s.db.NewDelete().Model((*quizRow)(nil)).Where("id = ?", quizID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (s *QuizStore) ListQuizzes(ctx context.Context, filter app.QuizFilter) ([]domain.Quiz, error) {
	var rows []quizRow
	query := s.db.NewSelect().Model(&rows).Order("q.id ASC")
	if filter.AuthorID != nil {
		query = query.Where("q.author_id = ?", *filter.AuthorID)
	}
	if filter.Status != "" {
		query = query.Where("q.status = ?", string(filter.Status))
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]domain.Quiz, 0, len(rows))
	for i := range rows {
		quiz, err := decodeQuiz(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, quiz)
	}
	return out, nil
}

func decodeQuiz(row *quizRow) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(row.Data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	// lifted columns win over whatever is inside the blob
	quiz.ID = row.ID
	quiz.AuthorID = row.AuthorID
	quiz.Status = domain.QuizStatus(row.Status)
	quiz.CreatedAt = row.CreatedAt
	return quiz, nil
}
