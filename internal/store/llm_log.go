package store

import (
	"context"
	"fmt"
	"time"
)

// LLMRequestRow captures one LLM API call for the audit log.
type LLMRequestRow struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMLogRepo records LLM request audit rows.
type LLMLogRepo struct {
	s *Store
}

// LLMLogRepo returns the LLM audit log repository backed by this store.
func (s *Store) LLMLogRepo() *LLMLogRepo {
	return &LLMLogRepo{s: s}
}

// Append records one request. Append-only; rows are never updated.
func (r *LLMLogRepo) Append(ctx context.Context, row LLMRequestRow) error {
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Provider, row.Model, row.Purpose, row.InputTokens, row.OutputTokens,
		row.LatencyMs, row.Success, row.ErrorMessage, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}
