package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studycoach/internal/quiz"
)

// ErrQuizNotFound is returned when no quiz exists for an id.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizRepo persists generated quizzes. Questions are stored as one JSON
// blob per quiz; quizzes are immutable once saved.
type QuizRepo struct {
	s *Store
}

// QuizRepo returns the quiz repository backed by this store.
func (s *Store) QuizRepo() *QuizRepo {
	return &QuizRepo{s: s}
}

// Save stores a generated quiz.
func (r *QuizRepo) Save(ctx context.Context, q *quiz.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = r.s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, document_id, title, questions, created_at) VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.DocumentID, q.Title, string(questions), q.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

// Get loads a quiz by id.
func (r *QuizRepo) Get(ctx context.Context, id string) (*quiz.Quiz, error) {
	var q quiz.Quiz
	var questions string
	var createdAt time.Time
	err := r.s.db.QueryRowContext(ctx,
		`SELECT id, document_id, title, questions, created_at FROM quizzes WHERE id = ?`, id,
	).Scan(&q.ID, &q.DocumentID, &q.Title, &questions, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	q.CreatedAt = createdAt
	return &q, nil
}

// List returns saved quizzes, newest first, without their question bodies.
func (r *QuizRepo) List(ctx context.Context) ([]quiz.Quiz, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT id, document_id, title, created_at FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []quiz.Quiz
	for rows.Next() {
		var q quiz.Quiz
		if err := rows.Scan(&q.ID, &q.DocumentID, &q.Title, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}
