package quiz

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the lifecycle state of a quiz session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Created, waiting for explicit start
	PhaseInProgress              // Serving questions
	PhaseResults                 // Terminal; no further mutation
)

// noSelection is the pending-choice sentinel between submissions.
const noSelection = -1

// Session owns one run through a quiz: the question list, the growing
// answer list, and the start/end timestamps. Sessions are in-memory only
// and die with the process; finished results are reported to the mastery
// store, not persisted as sessions.
type Session struct {
	ID         string
	UserID     string
	DocumentID string
	Questions  []Question
	Answers    []Answer

	phase    Phase
	current  int
	selected int

	StartedAt time.Time
	EndedAt   time.Time
}

// NewSession creates a session in the NotStarted phase.
func NewSession(userID, documentID string, questions []Question) *Session {
	return &Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		DocumentID: documentID,
		Questions:  questions,
		selected:   noSelection,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// CurrentIndex returns the index of the question awaiting an answer.
func (s *Session) CurrentIndex() int {
	return s.current
}

// CurrentQuestion returns the active question, or nil outside InProgress.
func (s *Session) CurrentQuestion() *Question {
	if s.phase != PhaseInProgress || s.current >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.current]
}

// Selected returns the pending option index, or -1 if none is pending.
func (s *Session) Selected() int {
	return s.selected
}

// Start stamps the start time and begins serving questions.
// Rejected unless the session is NotStarted and has at least one question.
func (s *Session) Start() bool {
	if s.phase != PhaseNotStarted || len(s.Questions) == 0 {
		return false
	}
	s.phase = PhaseInProgress
	s.StartedAt = time.Now()
	return true
}

// SelectOption records a pending choice for the current question. The
// choice stays overwritable until submitted. Out-of-range indices and
// calls outside InProgress are rejected without state change.
func (s *Session) SelectOption(i int) bool {
	q := s.CurrentQuestion()
	if q == nil || i < 0 || i >= len(q.Options) {
		return false
	}
	s.selected = i
	return true
}

// Submit turns the pending choice into a recorded answer and advances.
// With no choice pending it is a no-op returning (nil, false). On the
// final question it stamps the end time and transitions to Results.
func (s *Session) Submit() (*Answer, bool) {
	q := s.CurrentQuestion()
	if q == nil || s.selected == noSelection {
		return nil, false
	}

	ans := Answer{
		QuestionIndex: s.current,
		Selected:      s.selected,
		Correct:       s.selected == q.CorrectIndex,
	}
	s.Answers = append(s.Answers, ans)
	s.selected = noSelection
	s.current++

	if s.current == len(s.Questions) {
		s.phase = PhaseResults
		s.EndedAt = time.Now()
	}
	return &ans, true
}

// CorrectCount returns the number of correct answers so far.
func (s *Session) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Score returns the session result. Meaningful once the session has
// reached Results, but safe to call at any time.
func (s *Session) Score() Score {
	return NewScore(s.CorrectCount(), len(s.Questions))
}
