package picker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"studycoach/internal/quiz"
	"studycoach/internal/router"
	"studycoach/internal/screens/session"
	"studycoach/internal/store"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testRepo(t *testing.T) *store.QuizRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st.QuizRepo()
}

func saveQuiz(t *testing.T, repo *store.QuizRepo, title string) {
	t.Helper()
	err := repo.Save(context.Background(), &quiz.Quiz{
		ID:         uuid.New().String(),
		DocumentID: uuid.New().String(),
		Title:      title,
		Questions: []quiz.Question{
			{Text: "Q?", Options: []string{"a", "b"}, CorrectIndex: 0},
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func loadedPicker(t *testing.T, repo *store.QuizRepo) *PickerScreen {
	t.Helper()
	p := New(repo, nil, nil, "u1")
	msg := p.Init()()
	scr, _ := p.Update(msg)
	return scr.(*PickerScreen)
}

func TestPicker_EmptyState(t *testing.T) {
	p := loadedPicker(t, testRepo(t))

	view := p.View(80, 24)
	if !strings.Contains(view, "No quizzes yet") {
		t.Errorf("empty state missing:\n%s", view)
	}
}

func TestPicker_ListsQuizzes(t *testing.T) {
	repo := testRepo(t)
	saveQuiz(t, repo, "Neural Networks")
	saveQuiz(t, repo, "Linear Algebra")

	p := loadedPicker(t, repo)
	view := p.View(80, 24)
	if !strings.Contains(view, "Neural Networks") || !strings.Contains(view, "Linear Algebra") {
		t.Errorf("quizzes missing from list:\n%s", view)
	}
}

func TestPicker_EnterStartsSession(t *testing.T) {
	repo := testRepo(t)
	saveQuiz(t, repo, "Neural Networks")

	p := loadedPicker(t, repo)
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*session.SessionScreen); !ok {
		t.Fatalf("expected session screen, got %T", push.Screen)
	}
}

func TestPicker_NewQuizNeedsGenerator(t *testing.T) {
	repo := testRepo(t)
	saveQuiz(t, repo, "Neural Networks")

	p := loadedPicker(t, repo)
	if _, cmd := p.Update(tea.KeyPressMsg{Code: 'n', Text: "n"}); cmd != nil {
		t.Error("new-quiz must be disabled without a generator")
	}
}
