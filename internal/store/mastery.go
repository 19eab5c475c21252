package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studycoach/internal/concepts"
	"studycoach/internal/mastery"
)

// MasteryRepo implements mastery.Store on top of the SQLite store.
type MasteryRepo struct {
	s *Store
}

var _ mastery.Store = (*MasteryRepo)(nil)

// MasteryRepo returns the mastery repository backed by this store.
func (s *Store) MasteryRepo() *MasteryRepo {
	return &MasteryRepo{s: s}
}

// UpdateConceptMastery upserts one attempt into the per-user, per-document
// concept row. Updates are commutative per concept: only the counters move.
func (r *MasteryRepo) UpdateConceptMastery(ctx context.Context, u mastery.ConceptUpdate) error {
	correct := 0
	if u.Correct {
		correct = 1
	}
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO concept_mastery (user_id, document_id, concept_id, concept_name, attempts, correct, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(user_id, document_id, concept_id) DO UPDATE SET
			attempts = attempts + 1,
			correct = correct + excluded.correct,
			concept_name = excluded.concept_name,
			updated_at = excluded.updated_at`,
		u.UserID, u.DocumentID, u.ConceptID, u.ConceptName, correct, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert concept mastery: %w", err)
	}
	return nil
}

// UpdateChainMastery upserts one attempt into the per-user, per-document
// chain row, keyed by the deterministic chain key.
func (r *MasteryRepo) UpdateChainMastery(ctx context.Context, u mastery.ChainUpdate) error {
	chainJSON, err := json.Marshal(u.Chain)
	if err != nil {
		return fmt.Errorf("marshal chain: %w", err)
	}
	correct := 0
	if u.Correct {
		correct = 1
	}
	_, err = r.s.db.ExecContext(ctx, `
		INSERT INTO chain_mastery (user_id, document_id, chain_key, chain, attempts, correct, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(user_id, document_id, chain_key) DO UPDATE SET
			attempts = attempts + 1,
			correct = correct + excluded.correct,
			updated_at = excluded.updated_at`,
		u.UserID, u.DocumentID, concepts.ChainKey(u.Chain), string(chainJSON), correct, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert chain mastery: %w", err)
	}
	return nil
}

// ConceptStats lists a user's concept rows, most recently updated first.
// An empty documentID matches all documents.
func (r *MasteryRepo) ConceptStats(ctx context.Context, userID, documentID string) ([]mastery.ConceptStat, error) {
	query := `SELECT concept_id, concept_name, document_id, attempts, correct
		FROM concept_mastery WHERE user_id = ?`
	args := []any{userID}
	if documentID != "" {
		query += ` AND document_id = ?`
		args = append(args, documentID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query concept mastery: %w", err)
	}
	defer rows.Close()

	var stats []mastery.ConceptStat
	for rows.Next() {
		var st mastery.ConceptStat
		if err := rows.Scan(&st.ConceptID, &st.ConceptName, &st.DocumentID, &st.Attempts, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan concept mastery: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// ChainStat is a read-side chain mastery row.
type ChainStat struct {
	Chain    []string
	Attempts int
	Correct  int
}

// ChainStats lists a user's chain rows, most recently updated first.
func (r *MasteryRepo) ChainStats(ctx context.Context, userID, documentID string) ([]ChainStat, error) {
	query := `SELECT chain, attempts, correct FROM chain_mastery WHERE user_id = ?`
	args := []any{userID}
	if documentID != "" {
		query += ` AND document_id = ?`
		args = append(args, documentID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chain mastery: %w", err)
	}
	defer rows.Close()

	var stats []ChainStat
	for rows.Next() {
		var st ChainStat
		var chainJSON string
		if err := rows.Scan(&chainJSON, &st.Attempts, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan chain mastery: %w", err)
		}
		if err := json.Unmarshal([]byte(chainJSON), &st.Chain); err != nil {
			return nil, fmt.Errorf("unmarshal chain: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
