// Package quizgen generates multiple-choice quizzes from source documents
// via an LLM provider.
package quizgen

import (
	"context"

	"studycoach/internal/quiz"
)

// GenerateInput holds all context needed to generate one quiz.
type GenerateInput struct {
	// DocumentID scopes mastery records to the source document.
	DocumentID string

	// Title names the quiz, usually the document title or topic.
	Title string

	// SourceText is the document content the questions are drawn from.
	SourceText string

	// NumQuestions is the number of questions to generate.
	NumQuestions int

	// Difficulty is the requested overall difficulty ("easy", "medium",
	// "hard" or "mixed").
	Difficulty string
}

// Generator produces quizzes from source material.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*quiz.Quiz, error)
}

// Config tunes generation.
type Config struct {
	// DefaultQuestions is used when the input doesn't say how many.
	DefaultQuestions int

	// MaxSourceChars truncates oversized documents before prompting.
	MaxSourceChars int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		DefaultQuestions: 5,
		MaxSourceChars:   4000,
		MaxTokens:        4096,
		Temperature:      0.7,
	}
}
