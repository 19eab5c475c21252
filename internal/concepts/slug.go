package concepts

import "strings"

const (
	// slugNamespace keeps concept ids from colliding with other id spaces
	// in the mastery store.
	slugNamespace = "concept-"

	// maxSlugLen bounds the slug portion after the namespace prefix.
	maxSlugLen = 48
)

// Slug converts a concept name into its mastery-store id: lowercase,
// spaces to hyphens, everything else non-alphanumeric dropped, truncated,
// and namespaced.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slugNamespace + slug
}

// ChainKey builds a deterministic store key for an ordered concept chain.
func ChainKey(chain []string) string {
	slugs := make([]string, len(chain))
	for i, c := range chain {
		slugs[i] = strings.TrimPrefix(Slug(c), slugNamespace)
	}
	return "chain-" + strings.Join(slugs, ">")
}
