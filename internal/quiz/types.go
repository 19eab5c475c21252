package quiz

import (
	"strings"
	"time"

	"studycoach/internal/concepts"
)

// multiHopMarker is the reserved prefix quiz generation puts on the prompt
// of a question whose reasoning spans a chain of concepts. It is stripped
// into the MultiHop flag at normalization time and never shown to the user.
const multiHopMarker = "[multi-hop]"

// Difficulty is the self-assessed difficulty label of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single multiple-choice question ready for display.
type Question struct {
	// Text is the prompt shown to the learner, marker already stripped.
	Text string `json:"text"`

	// Options holds 2+ answer choices.
	Options []string `json:"options"`

	// CorrectIndex is the 0-based index of the correct option.
	CorrectIndex int `json:"correct_index"`

	// Explanation is a short worked justification shown after answering.
	// For multi-hop questions it carries the "Concept Chain: A → B" line.
	Explanation string `json:"explanation"`

	// Difficulty is used for analytics only, never for gating.
	Difficulty Difficulty `json:"difficulty"`

	// MultiHop marks a question that tests a chain of related concepts.
	MultiHop bool `json:"multi_hop"`

	// Chain is the ordered concept chain parsed from the explanation.
	// Empty for single-concept questions and for multi-hop questions
	// whose explanation carries no parseable chain line.
	Chain []string `json:"chain,omitempty"`
}

// Normalize derives the structured multi-hop fields from the textual
// encoding: the reserved marker prefix on the prompt and the concept-chain
// line in the explanation. Safe to call on already-normalized questions.
func (q *Question) Normalize() {
	trimmed := strings.TrimSpace(q.Text)
	if len(trimmed) >= len(multiHopMarker) &&
		strings.EqualFold(trimmed[:len(multiHopMarker)], multiHopMarker) {
		q.MultiHop = true
		q.Text = strings.TrimSpace(trimmed[len(multiHopMarker):])
	}
	if q.MultiHop && len(q.Chain) == 0 {
		q.Chain = concepts.ParseChain(q.Explanation)
	}
}

// Concept returns the derived concept name for a single-concept question.
func (q *Question) Concept() string {
	return concepts.Extract(q.Text)
}

// Quiz is a generated set of questions for one source document.
type Quiz struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"document_id"`
	Title      string     `json:"title"`
	Questions  []Question `json:"questions"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Answer records one submitted answer. Answers are appended in question
// order, exactly once per question, and never revised.
type Answer struct {
	QuestionIndex int  `json:"question_index"`
	Selected      int  `json:"selected"`
	Correct       bool `json:"correct"`
}
