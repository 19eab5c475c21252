// Package concepts derives stable concept keys from free-text question
// prompts. Extraction is deliberately simple and deterministic: the output
// is used as a key into the mastery store, so identical question text must
// always yield an identical concept name.
package concepts

import "strings"

// DefaultConcept is the fallback name when a prompt is all stop-words.
const DefaultConcept = "General Understanding"

// maxConceptTokens caps how many tokens of the prompt become the concept.
const maxConceptTokens = 6

// leadingStopWords are skipped from the front of a prompt before the
// concept tokens are taken: question words, articles, determiners and the
// connective glue that typically precedes the actual subject.
var leadingStopWords = map[string]bool{
	"what": true, "which": true, "who": true, "whom": true, "whose": true,
	"when": true, "where": true, "why": true, "how": true,
	"is": true, "are": true, "was": true, "were": true, "am": true, "be": true,
	"do": true, "does": true, "did": true, "done": true,
	"can": true, "could": true, "would": true, "should": true, "will": true,
	"has": true, "have": true, "had": true,
	"a": true, "an": true, "the": true,
	"this": true, "that": true, "these": true, "those": true,
	"in": true, "of": true, "to": true, "for": true, "on": true, "at": true,
	"if": true, "it": true, "its": true,
}

// Extract derives a human-readable concept name from a question prompt.
// It strips a trailing question mark, lowercases, skips leading stop-words,
// takes up to six of the remaining tokens and title-cases them. A prompt
// that yields nothing falls back to DefaultConcept.
func Extract(text string) string {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "?"))
	tokens := strings.Fields(strings.ToLower(text))

	start := 0
	for start < len(tokens) && leadingStopWords[tokens[start]] {
		start++
	}

	tokens = tokens[start:]
	if len(tokens) > maxConceptTokens {
		tokens = tokens[:maxConceptTokens]
	}
	if len(tokens) == 0 {
		return DefaultConcept
	}

	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = titleCase(tok)
	}
	return strings.Join(parts, " ")
}

// titleCase upper-cases the first rune of a token, leaving the rest as-is.
func titleCase(tok string) string {
	r := []rune(tok)
	if len(r) == 0 {
		return tok
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
