// Package server exposes the quiz and mastery flows as a JSON HTTP API
// for web front-ends.
package server

import (
	"crypto/rand"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"studycoach/internal/mastery"
	"studycoach/internal/quiz"
	"studycoach/internal/quizgen"
	"studycoach/internal/store"
)

// userSessionName is the cookie holding the stable user identifier.
const userSessionName = "studycoach-user"

// Server wires the HTTP handlers to their collaborators. Quiz sessions
// live in memory only: navigating away (or restarting the server)
// discards any in-progress session.
type Server struct {
	quizzes  *store.QuizRepo
	mastery  *store.MasteryRepo
	reporter *mastery.Reporter
	gen      quizgen.Generator
	cookies  *sessions.CookieStore

	mu       sync.Mutex
	active   map[string]*quiz.Session
	reported map[string]bool
}

// Options configures a Server.
type Options struct {
	Quizzes   *store.QuizRepo
	Mastery   *store.MasteryRepo
	Reporter  *mastery.Reporter
	Generator quizgen.Generator

	// SessionSecret signs identity cookies. Random when empty.
	SessionSecret string
}

// New creates a Server.
func New(opts Options) *Server {
	secret := []byte(opts.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		rand.Read(secret)
	}

	return &Server{
		quizzes:  opts.Quizzes,
		mastery:  opts.Mastery,
		reporter: opts.Reporter,
		gen:      opts.Generator,
		cookies:  sessions.NewCookieStore(secret),
		active:   make(map[string]*quiz.Session),
		reported: make(map[string]bool),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/quizzes", s.handleListQuizzes)
	mux.HandleFunc("POST /api/quizzes", s.handleGenerateQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}", s.handleGetQuiz)
	mux.HandleFunc("POST /api/quizzes/{id}/sessions", s.handleStartSession)
	mux.HandleFunc("POST /api/sessions/{id}/answers", s.handleSubmitAnswer)
	mux.HandleFunc("GET /api/sessions/{id}/results", s.handleResults)
	mux.HandleFunc("GET /api/mastery", s.handleMastery)
	return mux
}

// userID returns the stable user identifier from the identity cookie,
// minting one on first contact.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) string {
	sess, _ := s.cookies.Get(r, userSessionName)
	if id, ok := sess.Values["user_id"].(string); ok && id != "" {
		return id
	}
	id := uuid.New().String()
	sess.Values["user_id"] = id
	sess.Options.MaxAge = 60 * 60 * 24 * 365
	sess.Options.HttpOnly = true
	sess.Save(r, w)
	return id
}

// session looks up an active quiz session owned by the given user.
func (s *Server) session(id, userID string) (*quiz.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.active[id]
	if !ok || sess.UserID != userID {
		return nil, false
	}
	return sess, true
}
