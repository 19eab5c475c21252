// Package session implements the quiz-taking screen.
package session

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"studycoach/internal/mastery"
	"studycoach/internal/quiz"
	"studycoach/internal/router"
	"studycoach/internal/screen"
	"studycoach/internal/screens/results"
	"studycoach/internal/store"
	"studycoach/internal/ui/components"
	"studycoach/internal/ui/layout"
	"studycoach/internal/ui/theme"
)

type quizLoadedMsg struct {
	quiz *quiz.Quiz
	err  error
}

// SessionScreen walks the user through one quiz, question by question.
// After each submission it shows feedback with the explanation before
// moving on; when the last question is answered it pushes the results
// screen.
type SessionScreen struct {
	quizzes  *store.QuizRepo
	reporter *mastery.Reporter
	quizID   string
	userID   string

	sess     *quiz.Session
	title    string
	choice   components.MultiChoice
	answer   *quiz.Answer
	feedback bool
	errMsg   string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

func New(quizzes *store.QuizRepo, reporter *mastery.Reporter, quizID, userID string) *SessionScreen {
	return &SessionScreen{
		quizzes:  quizzes,
		reporter: reporter,
		quizID:   quizID,
		userID:   userID,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return func() tea.Msg {
		q, err := s.quizzes.Get(context.Background(), s.quizID)
		return quizLoadedMsg{quiz: q, err: err}
	}
}

func (s *SessionScreen) Title() string {
	if s.title != "" {
		return s.title
	}
	return "Quiz"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.feedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Abandon quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Abandon quiz"},
	}
}

func (s *SessionScreen) loadQuestion() {
	q := s.sess.CurrentQuestion()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex)
	s.answer = nil
	s.feedback = false
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.title = msg.quiz.Title
		s.sess = quiz.NewSession(s.userID, msg.quiz.DocumentID, msg.quiz.Questions)
		s.sess.Start()
		s.loadQuestion()
		return s, nil

	case tea.KeyMsg:
		if s.sess == nil {
			return s, nil
		}

		if msg.String() == "enter" {
			if s.feedback {
				if s.sess.Phase() == quiz.PhaseResults {
					// Swap rather than push so esc from results lands
					// back on the picker, not a finished session.
					next := results.New(s.sess, s.reporter)
					return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
				}
				s.loadQuestion()
				return s, nil
			}

			s.choice.Submit()
			s.sess.SelectOption(s.choice.ChosenIndex)
			if a, ok := s.sess.Submit(); ok {
				s.answer = a
				s.feedback = true
			}
			return s, nil
		}

		if !s.feedback {
			var cmd tea.Cmd
			s.choice, cmd = s.choice.Update(msg)
			return s, cmd
		}
	}

	return s, nil
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Incorrect.Render("Error: " + s.errMsg)
	}
	if s.sess == nil {
		return theme.Hint.Render("Loading quiz...")
	}

	total := len(s.sess.Questions)
	answered := len(s.sess.Answers)

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", min(answered+1, total), total),
		float64(answered)/float64(total),
		false,
		min(width, 60),
	)

	out := bar.View() + "\n\n" + s.choice.View()

	if s.feedback && s.answer != nil {
		q := s.sess.Questions[s.answer.QuestionIndex]
		if s.answer.Correct {
			out += "\n" + theme.Correct.Render("Correct!")
		} else {
			out += "\n" + theme.Incorrect.Render("Not quite.")
		}
		if q.Explanation != "" {
			out += "\n" + theme.Hint.Render(q.Explanation)
		}
	}

	return out
}
