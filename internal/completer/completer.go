package completer

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/rvrsh3ll/ldap-shell/internal/ldap"
)

// pageSize is the paged-search page size used for catalog fills.
const pageSize = 500

// Fragment is one span of a candidate's display text. Match marks the span
// that matched the operator's current word.
type Fragment struct {
	Text  string
	Match bool
}

// Candidate is one completion suggestion: the text to insert at the cursor
// and the styled display form.
type Candidate struct {
	Text    string         // Insert text, quoted when the quoting policy applies
	Display []Fragment     // Display spans with the matched substring marked
	Color   HighlightColor // Category color tag
}

// Completer serves ranked suggestions for one object category, filling its
// catalog lazily from the directory on first use.
type Completer struct {
	spec     ObjectTypeSpec
	searcher ldap.Searcher
	cache    CacheStore
	baseDN   string
	logger   zerolog.Logger
}

// New creates a completion engine for one object category. The cache store
// is shared across engines and owns catalog lifetime.
func New(spec ObjectTypeSpec, searcher ldap.Searcher, cache CacheStore, baseDN string, logger zerolog.Logger) *Completer {
	return &Completer{
		spec:     spec,
		searcher: searcher,
		cache:    cache,
		baseDN:   baseDN,
		logger:   logger.With().Str("component", "completer").Str("object_type", spec.Name).Logger(),
	}
}

// Spec returns the object category this engine serves.
func (c *Completer) Spec() ObjectTypeSpec {
	return c.spec
}

// Complete returns the suggestions matching the operator's input up to the
// cursor. Candidates whose display name contains the current word
// (case-insensitively) are returned in catalog iteration order; candidates
// containing spaces are quoted unless the cursor already sits inside an open
// quote.
func (c *Completer) Complete(ctx context.Context, textBeforeCursor string) []Candidate {
	inQuotes := strings.Count(textBeforeCursor, `"`)%2 == 1 ||
		strings.Count(textBeforeCursor, `'`)%2 == 1

	word := currentWord(textBeforeCursor)
	wordLower := strings.ToLower(word)

	var candidates []Candidate
	for name := range c.catalog(ctx) {
		if strings.Contains(name, " ") && !inQuotes {
			name = `"` + name + `"`
		}
		if !strings.Contains(strings.ToLower(name), wordLower) {
			continue
		}
		candidates = append(candidates, Candidate{
			Text:    name,
			Display: highlightMatch(name, word),
			Color:   c.spec.HighlightColor,
		})
	}

	return candidates
}

// catalog returns the cached catalog for this category, fetching it from the
// directory on first use. A failed fetch is logged and cached as an empty
// catalog: completion degrades to "no suggestions" for the rest of the
// session rather than retrying on every keystroke or failing the input loop.
func (c *Completer) catalog(ctx context.Context) map[string]struct{} {
	if cached, ok := c.cache.GetCache(c.spec.Name); ok {
		return cached
	}

	objects, err := c.fetchObjects(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("catalog fetch failed, completion disabled for this object type")
		objects = make(map[string]struct{})
	}
	c.cache.SetCache(c.spec.Name, objects)

	return objects
}

// fetchObjects runs the paged search for this category and collects display
// names. The primary attribute takes precedence; objects with neither the
// primary nor the fallback attribute are skipped.
func (c *Completer) fetchObjects(ctx context.Context) (map[string]struct{}, error) {
	result, err := c.searcher.SearchWithPaging(ctx, &ldap.SearchRequest{
		BaseDN:     c.baseDN,
		Scope:      ldap.ScopeWholeSubtree,
		Filter:     c.spec.Filter,
		Attributes: c.spec.Attributes,
	}, pageSize)
	if err != nil {
		return nil, err
	}

	objects := make(map[string]struct{}, len(result.Entries))
	for _, entry := range result.Entries {
		name := entry.GetAttributeValue(c.spec.PrimaryAttribute)
		if name == "" {
			name = entry.GetAttributeValue(c.spec.FallbackAttribute)
		}
		if name == "" {
			continue
		}
		objects[name] = struct{}{}
	}

	c.logger.Debug().Int("objects", len(objects)).Msg("catalog filled")

	return objects, nil
}

// currentWord extracts the word being completed: empty when the input ends
// with whitespace, otherwise the final whitespace-delimited token.
func currentWord(text string) string {
	if text == "" {
		return ""
	}
	if unicode.IsSpace(rune(text[len(text)-1])) {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// highlightMatch splits a candidate into display fragments, marking the
// first case-insensitive occurrence of the current word. An empty word
// yields a single unmarked fragment.
func highlightMatch(text, word string) []Fragment {
	if word == "" {
		return []Fragment{{Text: text}}
	}

	idx := strings.Index(strings.ToLower(text), strings.ToLower(word))
	if idx < 0 {
		return []Fragment{{Text: text}}
	}

	var fragments []Fragment
	if idx > 0 {
		fragments = append(fragments, Fragment{Text: text[:idx]})
	}
	fragments = append(fragments, Fragment{Text: text[idx : idx+len(word)], Match: true})
	if idx+len(word) < len(text) {
		fragments = append(fragments, Fragment{Text: text[idx+len(word):]})
	}

	return fragments
}
