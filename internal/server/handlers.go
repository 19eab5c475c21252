package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"studycoach/internal/quiz"
	"studycoach/internal/quizgen"
	"studycoach/internal/store"
)

// questionView is a question as served to clients: the correct index and
// explanation are withheld until the question has been answered.
type questionView struct {
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	MultiHop   bool     `json:"multi_hop"`
}

func viewQuestions(qs []quiz.Question) []questionView {
	views := make([]questionView, len(qs))
	for i, q := range qs {
		views[i] = questionView{
			Text:       q.Text,
			Options:    q.Options,
			Difficulty: string(q.Difficulty),
			MultiHop:   q.MultiHop,
		}
	}
	return views
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.quizzes.List(r.Context())
	if err != nil {
		log.Printf("server: list quizzes: %v", err)
		httpError(w, http.StatusInternalServerError, "failed to list quizzes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quizzes": quizzes})
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if s.gen == nil {
		httpError(w, http.StatusServiceUnavailable, "quiz generation is not configured")
		return
	}

	var req struct {
		Title        string `json:"title"`
		DocumentID   string `json:"document_id"`
		SourceText   string `json:"source_text"`
		NumQuestions int    `json:"num_questions"`
		Difficulty   string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SourceText == "" {
		httpError(w, http.StatusBadRequest, "source_text is required")
		return
	}

	generated, err := s.gen.Generate(r.Context(), quizgen.GenerateInput{
		DocumentID:   req.DocumentID,
		Title:        req.Title,
		SourceText:   req.SourceText,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		log.Printf("server: generate quiz: %v", err)
		httpError(w, http.StatusBadGateway, "quiz generation failed")
		return
	}

	if err := s.quizzes.Save(r.Context(), generated); err != nil {
		log.Printf("server: save quiz: %v", err)
		httpError(w, http.StatusInternalServerError, "failed to save quiz")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        generated.ID,
		"title":     generated.Title,
		"questions": len(generated.Questions),
	})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := s.quizzes.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrQuizNotFound) {
		httpError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		log.Printf("server: get quiz: %v", err)
		httpError(w, http.StatusInternalServerError, "failed to load quiz")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        q.ID,
		"title":     q.Title,
		"questions": viewQuestions(q.Questions),
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(w, r)

	q, err := s.quizzes.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrQuizNotFound) {
		httpError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		log.Printf("server: get quiz: %v", err)
		httpError(w, http.StatusInternalServerError, "failed to load quiz")
		return
	}

	sess := quiz.NewSession(userID, q.DocumentID, q.Questions)
	sess.Start()

	s.mu.Lock()
	s.active[sess.ID] = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"questions":  len(sess.Questions),
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(w, r)

	sess, ok := s.session(r.PathValue("id"), userID)
	if !ok {
		httpError(w, http.StatusNotFound, "session not found")
		return
	}

	var req struct {
		Selected int `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// One lock for the whole select+submit step: sessions are mutated
	// only on discrete user actions.
	s.mu.Lock()
	defer s.mu.Unlock()

	q := sess.CurrentQuestion()
	if q == nil || !sess.SelectOption(req.Selected) {
		httpError(w, http.StatusConflict, "no question awaiting an answer for that option")
		return
	}
	ans, ok := sess.Submit()
	if !ok {
		httpError(w, http.StatusConflict, "nothing to submit")
		return
	}

	resp := map[string]any{
		"correct":       ans.Correct,
		"correct_index": q.CorrectIndex,
		"explanation":   q.Explanation,
		"done":          sess.Phase() == quiz.PhaseResults,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(w, r)

	sess, ok := s.session(r.PathValue("id"), userID)
	if !ok {
		httpError(w, http.StatusNotFound, "session not found")
		return
	}

	// handleSubmitAnswer mutates sessions under s.mu; snapshot the
	// finished state under the same lock.
	s.mu.Lock()
	if sess.Phase() != quiz.PhaseResults {
		s.mu.Unlock()
		httpError(w, http.StatusConflict, "session still in progress")
		return
	}
	score := sess.Score()
	answers := append([]quiz.Answer(nil), sess.Answers...)
	first := !s.reported[sess.ID]
	s.reported[sess.ID] = true
	s.mu.Unlock()

	// Mastery reporting happens exactly once per session, detached from
	// this response.
	if first && s.reporter != nil {
		s.reporter.Report(sess)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"score":   score,
		"answers": answers,
	})
}

func (s *Server) handleMastery(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(w, r)

	stats, err := s.mastery.ConceptStats(r.Context(), userID, r.URL.Query().Get("document_id"))
	if err != nil {
		log.Printf("server: concept stats: %v", err)
		httpError(w, http.StatusInternalServerError, "failed to load mastery")
		return
	}

	type conceptView struct {
		ConceptID   string  `json:"concept_id"`
		ConceptName string  `json:"concept_name"`
		DocumentID  string  `json:"document_id"`
		Attempts    int     `json:"attempts"`
		Correct     int     `json:"correct"`
		Accuracy    float64 `json:"accuracy"`
	}
	views := make([]conceptView, len(stats))
	for i, st := range stats {
		views[i] = conceptView{
			ConceptID:   st.ConceptID,
			ConceptName: st.ConceptName,
			DocumentID:  st.DocumentID,
			Attempts:    st.Attempts,
			Correct:     st.Correct,
			Accuracy:    st.Accuracy(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"concepts": views})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown drains detached mastery reports. Called on process exit.
func (s *Server) Shutdown(context.Context) error {
	if s.reporter != nil {
		s.reporter.Wait()
	}
	return nil
}
