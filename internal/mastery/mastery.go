// Package mastery reports per-concept quiz outcomes to the mastery store.
package mastery

import "context"

// ConceptUpdate is a single-concept mastery update for one answered question.
type ConceptUpdate struct {
	UserID      string
	DocumentID  string
	ConceptID   string
	ConceptName string
	Correct     bool
}

// ChainUpdate is a concept-chain mastery update for one multi-hop question.
type ChainUpdate struct {
	UserID     string
	DocumentID string
	Chain      []string
	Correct    bool
}

// Store tracks a user's proficiency per concept and per concept chain.
// Both operations are fire-and-forget from the reporter's perspective.
type Store interface {
	UpdateConceptMastery(ctx context.Context, u ConceptUpdate) error
	UpdateChainMastery(ctx context.Context, u ChainUpdate) error
}

// ConceptStat is a read-side row for the stats views.
type ConceptStat struct {
	ConceptID   string
	ConceptName string
	DocumentID  string
	Attempts    int
	Correct     int
}

// Accuracy returns correct/attempts, or 0 with no attempts.
func (s ConceptStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}
