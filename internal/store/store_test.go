package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"studycoach/internal/mastery"
	"studycoach/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:         uuid.New().String(),
		DocumentID: uuid.New().String(),
		Title:      "Neural Networks 101",
		Questions: []quiz.Question{
			{
				Text:         "What is backpropagation?",
				Options:      []string{"A gradient algorithm", "A loss function", "A dataset", "An optimizer"},
				CorrectIndex: 0,
				Explanation:  "It propagates gradients backwards through the network.",
				Difficulty:   quiz.DifficultyMedium,
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestQuizRepo_SaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	q := sampleQuiz()
	require.NoError(t, repo.Save(ctx, q))

	got, err := repo.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, q.Title, got.Title)
	require.Equal(t, q.DocumentID, got.DocumentID)
	require.Len(t, got.Questions, 1)
	require.Equal(t, q.Questions[0].Text, got.Questions[0].Text)
	require.Equal(t, q.Questions[0].CorrectIndex, got.Questions[0].CorrectIndex)
}

func TestQuizRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.QuizRepo().Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizRepo_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	older := sampleQuiz()
	older.Title = "older"
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleQuiz()
	newer.Title = "newer"

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "newer", list[0].Title)
	require.Equal(t, "older", list[1].Title)
	require.Empty(t, list[0].Questions, "list must not load question bodies")
}

func TestMasteryRepo_ConceptUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	u := mastery.ConceptUpdate{
		UserID:      "u1",
		DocumentID:  "d1",
		ConceptID:   "concept-backpropagation",
		ConceptName: "Backpropagation",
		Correct:     true,
	}
	require.NoError(t, repo.UpdateConceptMastery(ctx, u))

	u.Correct = false
	require.NoError(t, repo.UpdateConceptMastery(ctx, u))
	require.NoError(t, repo.UpdateConceptMastery(ctx, u))

	stats, err := repo.ConceptStats(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, 3, stats[0].Attempts)
	require.Equal(t, 1, stats[0].Correct)
	require.Equal(t, "Backpropagation", stats[0].ConceptName)
	require.InDelta(t, 1.0/3.0, stats[0].Accuracy(), 1e-9)
}

func TestMasteryRepo_ConceptRowsIsolatedByKey(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	base := mastery.ConceptUpdate{
		UserID: "u1", DocumentID: "d1",
		ConceptID: "concept-dropout", ConceptName: "Dropout", Correct: true,
	}
	require.NoError(t, repo.UpdateConceptMastery(ctx, base))

	other := base
	other.UserID = "u2"
	require.NoError(t, repo.UpdateConceptMastery(ctx, other))

	otherDoc := base
	otherDoc.DocumentID = "d2"
	require.NoError(t, repo.UpdateConceptMastery(ctx, otherDoc))

	stats, err := repo.ConceptStats(ctx, "u1", "d1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, 1, stats[0].Attempts)

	all, err := repo.ConceptStats(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMasteryRepo_ChainUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	u := mastery.ChainUpdate{
		UserID:     "u1",
		DocumentID: "d1",
		Chain:      []string{"Chain Rule", "Backpropagation"},
		Correct:    true,
	}
	require.NoError(t, repo.UpdateChainMastery(ctx, u))
	u.Correct = false
	require.NoError(t, repo.UpdateChainMastery(ctx, u))

	stats, err := repo.ChainStats(ctx, "u1", "d1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, 2, stats[0].Attempts)
	require.Equal(t, 1, stats[0].Correct)
	require.Equal(t, []string{"Chain Rule", "Backpropagation"}, stats[0].Chain)
}

func TestMasteryRepo_ChainOrderDistinct(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	require.NoError(t, repo.UpdateChainMastery(ctx, mastery.ChainUpdate{
		UserID: "u1", DocumentID: "d1", Chain: []string{"A", "B"}, Correct: true,
	}))
	require.NoError(t, repo.UpdateChainMastery(ctx, mastery.ChainUpdate{
		UserID: "u1", DocumentID: "d1", Chain: []string{"B", "A"}, Correct: true,
	}))

	stats, err := repo.ChainStats(ctx, "u1", "d1")
	require.NoError(t, err)
	require.Len(t, stats, 2, "reversed chains are distinct rows")
}

func TestLLMLogRepo_Append(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.LLMLogRepo().Append(ctx, LLMRequestRow{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "quiz-gen",
		InputTokens:  120,
		OutputTokens: 340,
		LatencyMs:    900,
		Success:      true,
	}))

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM llm_requests`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	q := sampleQuiz()
	require.NoError(t, s.QuizRepo().Save(context.Background(), q))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.QuizRepo().Get(context.Background(), q.ID)
	require.NoError(t, err)
	require.Equal(t, q.Title, got.Title)
}
