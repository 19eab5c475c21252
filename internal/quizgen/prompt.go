package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const systemPrompt = `You are an expert quiz generator for a study assistant.
You write multiple-choice questions that test understanding of a source
document, not trivia about its wording. Each question has exactly 4 options
and one correct answer. Explanations teach: they say why the correct option
is correct in one or two sentences.

Around one question in four should be a multi-hop question: one whose
correct reasoning chains 2 or more related concepts from the document.
Multi-hop questions follow two extra rules:
- The question text starts with the literal marker "[multi-hop] ".
- The explanation ends with a line of the form
  "Concept Chain: First Concept → Second Concept → Third Concept"
  naming the concepts in reasoning order. Use the concept names exactly as
  the document uses them.

Regular questions never carry the marker or a concept chain line.`

// truncateSource caps the document at max bytes without splitting a
// UTF-8 sequence, backing up to the last rune boundary.
func truncateSource(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// buildUserMessage renders the generation request for one document.
func buildUserMessage(input GenerateInput, cfg Config) string {
	source := truncateSource(input.SourceText, cfg.MaxSourceChars)

	n := input.NumQuestions
	if n <= 0 {
		n = cfg.DefaultQuestions
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "mixed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple-choice questions from this document.\n\n", n)
	fmt.Fprintf(&b, "Difficulty level: %s\n\n", difficulty)
	fmt.Fprintf(&b, "Document title: %s\n\n", input.Title)
	b.WriteString("Document content:\n")
	b.WriteString(source)
	b.WriteString("\n\nRequirements:\n")
	fmt.Fprintf(&b, "- %d questions total\n", n)
	b.WriteString("- Each question has exactly 4 options\n")
	b.WriteString("- correct_answer is the 0-based index of the correct option\n")
	b.WriteString("- Focus on key concepts from the document\n")
	return b.String()
}
