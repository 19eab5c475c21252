package mastery

import (
	"context"
	"log"
	"sync"
	"time"

	"studycoach/internal/concepts"
	"studycoach/internal/quiz"
)

// reportTimeout bounds each detached store call.
const reportTimeout = 10 * time.Second

// Reporter issues mastery updates for finished quiz sessions. Updates are
// detached from the caller: Report returns immediately and a failed store
// call is logged, never surfaced. The results a user sees do not depend on
// any of these calls completing.
type Reporter struct {
	store Store
	wg    sync.WaitGroup
}

// NewReporter creates a Reporter backed by the given store.
func NewReporter(store Store) *Reporter {
	return &Reporter{store: store}
}

// Report issues one mastery update per answered question of a finished
// session. Multi-hop questions with a chain of 2+ concepts get a chain
// update; multi-hop questions without a parseable chain are skipped;
// everything else gets a single-concept update keyed by the concept
// derived from the question text. Call at most once per session, on the
// transition into Results.
func (r *Reporter) Report(s *quiz.Session) {
	if r.store == nil || s.Phase() != quiz.PhaseResults {
		return
	}

	for _, ans := range s.Answers {
		q := s.Questions[ans.QuestionIndex]

		if q.MultiHop {
			if len(q.Chain) < 2 {
				// No parseable chain: skip, don't fabricate one.
				continue
			}
			r.dispatchChain(ChainUpdate{
				UserID:     s.UserID,
				DocumentID: s.DocumentID,
				Chain:      q.Chain,
				Correct:    ans.Correct,
			})
			continue
		}

		name := q.Concept()
		r.dispatchConcept(ConceptUpdate{
			UserID:      s.UserID,
			DocumentID:  s.DocumentID,
			ConceptID:   concepts.Slug(name),
			ConceptName: name,
			Correct:     ans.Correct,
		})
	}
}

func (r *Reporter) dispatchConcept(u ConceptUpdate) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if err := r.store.UpdateConceptMastery(ctx, u); err != nil {
			log.Printf("mastery: concept update %s failed: %v", u.ConceptID, err)
		}
	}()
}

func (r *Reporter) dispatchChain(u ChainUpdate) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if err := r.store.UpdateChainMastery(ctx, u); err != nil {
			log.Printf("mastery: chain update failed: %v", err)
		}
	}()
}

// Wait blocks until all in-flight updates have settled. Used by tests and
// by process shutdown; the UI never calls it.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
