// Package newquiz implements the quiz generation screen.
package newquiz

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"studycoach/internal/quiz"
	"studycoach/internal/quizgen"
	"studycoach/internal/router"
	"studycoach/internal/screen"
	"studycoach/internal/store"
	"studycoach/internal/ui/components"
	"studycoach/internal/ui/layout"
	"studycoach/internal/ui/theme"
)

// QuizCreatedMsg is broadcast after a quiz is generated and saved, so the
// picker can refresh its list.
type QuizCreatedMsg struct {
	Quiz *quiz.Quiz
}

type generateDoneMsg struct {
	quiz *quiz.Quiz
	err  error
}

// NewQuizScreen prompts for a document and generates a quiz from it.
type NewQuizScreen struct {
	gen     quizgen.Generator
	quizzes *store.QuizRepo

	input      components.TextInput
	generating bool
	errMsg     string
}

var _ screen.Screen = (*NewQuizScreen)(nil)
var _ screen.KeyHintProvider = (*NewQuizScreen)(nil)

func New(gen quizgen.Generator, quizzes *store.QuizRepo) *NewQuizScreen {
	return &NewQuizScreen{
		gen:     gen,
		quizzes: quizzes,
		input:   components.NewTextInput("path/to/notes.txt", 200),
	}
}

func (n *NewQuizScreen) Init() tea.Cmd {
	return n.input.Init()
}

func (n *NewQuizScreen) Title() string {
	return "New Quiz"
}

func (n *NewQuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (n *NewQuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		n.generating = false
		if msg.err != nil {
			n.errMsg = msg.err.Error()
			return n, nil
		}
		return n, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return QuizCreatedMsg{Quiz: msg.quiz} },
		)

	case tea.KeyMsg:
		if msg.String() == "enter" && !n.generating {
			path := strings.TrimSpace(n.input.Value())
			if path == "" {
				return n, nil
			}
			n.generating = true
			n.errMsg = ""
			return n, n.generate(path)
		}
	}

	if n.generating {
		return n, nil
	}

	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

func (n *NewQuizScreen) generate(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return generateDoneMsg{err: err}
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		q, err := n.gen.Generate(context.Background(), quizgen.GenerateInput{
			Title:      title,
			SourceText: string(data),
		})
		if err != nil {
			return generateDoneMsg{err: err}
		}

		if err := n.quizzes.Save(context.Background(), q); err != nil {
			return generateDoneMsg{err: err}
		}
		return generateDoneMsg{quiz: q}
	}
}

func (n *NewQuizScreen) View(width, height int) string {
	s := theme.Title.Width(width).Render("Generate a quiz") + "\n\n"
	s += theme.Body.Render("Path to a text document to quiz yourself on:") + "\n\n"
	s += n.input.View() + "\n\n"

	if n.generating {
		s += theme.Hint.Render("Generating questions, this can take a moment...")
	} else if n.errMsg != "" {
		s += theme.Incorrect.Render("Error: " + n.errMsg)
	}

	return s
}
