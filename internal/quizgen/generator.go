package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studycoach/internal/llm"
	"studycoach/internal/quiz"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

var _ Generator = (*LLMGenerator)(nil)

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is one raw LLM question before normalization.
type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate produces one quiz for the given document.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*quiz.Quiz, error) {
	if strings.TrimSpace(input.SourceText) == "" {
		return nil, fmt.Errorf("source text is empty")
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("LLM returned no questions")
	}

	questions := make([]quiz.Question, 0, len(raw.Questions))
	for i, rq := range raw.Questions {
		q, err := normalizeQuestion(rq)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}

	documentID := input.DocumentID
	if documentID == "" {
		documentID = uuid.New().String()
	}

	return &quiz.Quiz{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Title:      input.Title,
		Questions:  questions,
		CreatedAt:  time.Now(),
	}, nil
}

// normalizeQuestion validates one raw question and derives the structured
// multi-hop fields from their textual encoding. The marker and chain are
// parsed exactly once here, never re-parsed downstream.
func normalizeQuestion(rq questionOutput) (quiz.Question, error) {
	if strings.TrimSpace(rq.Question) == "" {
		return quiz.Question{}, fmt.Errorf("empty prompt")
	}
	if len(rq.Options) < 2 {
		return quiz.Question{}, fmt.Errorf("need at least 2 options, got %d", len(rq.Options))
	}
	if rq.CorrectAnswer < 0 || rq.CorrectAnswer >= len(rq.Options) {
		return quiz.Question{}, fmt.Errorf("correct_answer %d out of range", rq.CorrectAnswer)
	}

	q := quiz.Question{
		Text:         rq.Question,
		Options:      rq.Options,
		CorrectIndex: rq.CorrectAnswer,
		Explanation:  rq.Explanation,
		Difficulty:   quiz.Difficulty(rq.Difficulty),
	}
	q.Normalize()
	return q, nil
}
