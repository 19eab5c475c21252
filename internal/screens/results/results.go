// Package results shows the outcome of a finished quiz session.
package results

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"studycoach/internal/mastery"
	"studycoach/internal/quiz"
	"studycoach/internal/router"
	"studycoach/internal/screen"
	"studycoach/internal/ui/components"
	"studycoach/internal/ui/layout"
	"studycoach/internal/ui/theme"
)

// ResultsScreen renders the final score and per-question review. It files
// the mastery report for the session exactly once, when the screen is
// initialized.
type ResultsScreen struct {
	sess     *quiz.Session
	reporter *mastery.Reporter
	reported bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

func New(sess *quiz.Session, reporter *mastery.Reporter) *ResultsScreen {
	return &ResultsScreen{sess: sess, reporter: reporter}
}

func (r *ResultsScreen) Init() tea.Cmd {
	if !r.reported && r.reporter != nil {
		r.reported = true
		r.reporter.Report(r.sess)
	}
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back to quizzes"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	score := r.sess.Score()

	bandStyle := lipgloss.NewStyle().
		Foreground(theme.BandColor(score.Band)).
		Bold(true)

	s := theme.Title.Width(width).Render("Quiz complete") + "\n\n"
	s += theme.Body.Render(fmt.Sprintf("You answered %d of %d correctly.", score.Correct, score.Total)) + "\n\n"

	bar := components.NewProgressBar(
		fmt.Sprintf("%d%%", score.Percent),
		float64(score.Percent)/100,
		false,
		min(width, 48),
	)
	bar.Fill = theme.BandColor(score.Band)
	s += bar.View() + "\n\n"
	s += bandStyle.Render(capitalize(string(score.Band))) + "\n\n"

	for _, a := range r.sess.Answers {
		q := r.sess.Questions[a.QuestionIndex]
		mark := theme.Correct.Render("✓")
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		s += fmt.Sprintf("  %s %s\n", mark, theme.Hint.Render(truncate(q.Text, width-6)))
	}

	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func truncate(s string, n int) string {
	if n < 4 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
