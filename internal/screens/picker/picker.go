// Package picker implements the quiz selection screen.
package picker

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"studycoach/internal/mastery"
	"studycoach/internal/quiz"
	"studycoach/internal/quizgen"
	"studycoach/internal/router"
	"studycoach/internal/screen"
	"studycoach/internal/screens/newquiz"
	"studycoach/internal/screens/session"
	"studycoach/internal/store"
	"studycoach/internal/ui/layout"
	"studycoach/internal/ui/theme"
)

type quizzesLoadedMsg struct {
	quizzes []quiz.Quiz
	err     error
}

// PickerScreen lists saved quizzes and starts sessions.
type PickerScreen struct {
	quizzes  *store.QuizRepo
	gen      quizgen.Generator
	reporter *mastery.Reporter
	userID   string

	items    []quiz.Quiz
	selected int
	errMsg   string
	loaded   bool
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates the picker with injected dependencies.
func New(quizzes *store.QuizRepo, gen quizgen.Generator, reporter *mastery.Reporter, userID string) *PickerScreen {
	return &PickerScreen{
		quizzes:  quizzes,
		gen:      gen,
		reporter: reporter,
		userID:   userID,
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return p.loadQuizzes()
}

func (p *PickerScreen) loadQuizzes() tea.Cmd {
	return func() tea.Msg {
		items, err := p.quizzes.List(context.Background())
		return quizzesLoadedMsg{quizzes: items, err: err}
	}
}

func (p *PickerScreen) Title() string {
	return "Quizzes"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Take quiz"},
	}
	if p.gen != nil {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "New quiz"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		p.loaded = true
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.items = msg.quizzes
		if p.selected >= len(p.items) {
			p.selected = 0
		}
		return p, nil

	case newquiz.QuizCreatedMsg:
		// Refresh the list after generation.
		return p, p.loadQuizzes()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
		case "down", "j":
			if p.selected < len(p.items)-1 {
				p.selected++
			}
		case "n":
			if p.gen != nil {
				next := newquiz.New(p.gen, p.quizzes)
				return p, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		case "enter":
			if p.selected < len(p.items) {
				next := session.New(p.quizzes, p.reporter, p.items[p.selected].ID, p.userID)
				return p, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}

	return p, nil
}

func (p *PickerScreen) View(width, height int) string {
	if p.errMsg != "" {
		return theme.Incorrect.Render("Error: " + p.errMsg)
	}
	if !p.loaded {
		return theme.Hint.Render("Loading quizzes...")
	}
	if len(p.items) == 0 {
		s := theme.Body.Render("No quizzes yet.") + "\n\n"
		if p.gen != nil {
			s += theme.Hint.Render("Press N to generate one from a document.")
		} else {
			s += theme.Hint.Render("Configure an LLM provider to generate quizzes.")
		}
		return s
	}

	s := theme.Title.Width(width).Render("Pick a quiz") + "\n\n"
	for i, q := range p.items {
		line := fmt.Sprintf("  %s  %s", q.Title, q.CreatedAt.Format("2006-01-02"))
		if i == p.selected {
			line = "▸" + line[1:]
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
