package concepts

import "strings"

// chainPrefix marks the explanation line that carries a concept chain.
const chainPrefix = "concept chain:"

// ParseChain scans an explanation for a "Concept Chain: A → B → C" line
// and returns the ordered chain. The arrow may be the Unicode arrow or an
// ASCII "->". Segments are trimmed and empties dropped. When no chain line
// exists the result is nil — a chain is never fabricated.
func ParseChain(explanation string) []string {
	for _, line := range strings.Split(explanation, "\n") {
		rest, ok := cutChainLine(line)
		if !ok {
			continue
		}
		rest = strings.ReplaceAll(rest, "->", "→")
		var chain []string
		for _, seg := range strings.Split(rest, "→") {
			if seg = strings.TrimSpace(seg); seg != "" {
				chain = append(chain, seg)
			}
		}
		return chain
	}
	return nil
}

// cutChainLine returns the text after the chain prefix, matched
// case-insensitively anywhere in the line.
func cutChainLine(line string) (string, bool) {
	idx := strings.Index(strings.ToLower(line), chainPrefix)
	if idx < 0 {
		return "", false
	}
	return line[idx+len(chainPrefix):], true
}
