package results

import (
	"context"
	"strings"
	"sync"
	"testing"

	"studycoach/internal/mastery"
	"studycoach/internal/quiz"
)

type countingStore struct {
	mu       sync.Mutex
	concepts int
	chains   int
}

func (s *countingStore) UpdateConceptMastery(context.Context, mastery.ConceptUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concepts++
	return nil
}

func (s *countingStore) UpdateChainMastery(context.Context, mastery.ChainUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chains++
	return nil
}

func finishedSession(t *testing.T, picks []int) *quiz.Session {
	t.Helper()
	questions := []quiz.Question{
		{Text: "What is backpropagation?", Options: []string{"a", "b"}, CorrectIndex: 0},
		{Text: "What is dropout?", Options: []string{"a", "b"}, CorrectIndex: 0},
	}
	s := quiz.NewSession("u1", "doc1", questions)
	s.Start()
	for _, p := range picks {
		s.SelectOption(p)
		if _, ok := s.Submit(); !ok {
			t.Fatal("submit failed")
		}
	}
	return s
}

func TestResultsScreen_View(t *testing.T) {
	sess := finishedSession(t, []int{0, 1})
	scr := New(sess, nil)
	scr.Init()

	view := scr.View(80, 24)
	if !strings.Contains(view, "1 of 2") {
		t.Errorf("score line missing:\n%s", view)
	}
	if !strings.Contains(view, "Keep practicing") {
		t.Errorf("band missing:\n%s", view)
	}
	if !strings.Contains(view, "What is backpropagation?") {
		t.Errorf("question review missing:\n%s", view)
	}
}

func TestResultsScreen_ReportsOnInitOnce(t *testing.T) {
	store := &countingStore{}
	reporter := mastery.NewReporter(store)

	scr := New(finishedSession(t, []int{0, 0}), reporter)
	scr.Init()
	scr.Init()
	reporter.Wait()

	if store.concepts != 2 {
		t.Errorf("expected 2 concept updates, got %d", store.concepts)
	}
	if store.chains != 0 {
		t.Errorf("unexpected chain updates: %d", store.chains)
	}
}
