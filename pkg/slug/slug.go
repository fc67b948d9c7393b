// Package slug turns display names into URL path segments.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a lowercase ASCII slug from name. Accented letters lose
// their marks; every other run of non-alphanumerics becomes one hyphen.
//
//	"Linen Casual Shirt"   → "linen-casual-shirt"
//	"Crêpe Dupatta (Rosé)" → "crepe-dupatta-rose"
func Generate(name string) string {
	folded, _, err := transform.String(foldMarks(), name)
	if err != nil {
		folded = name
	}
	s := nonAlnum.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(s, "-")
}

func foldMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Index assigns each name a slug that is unique within the index. A name
// whose slug is already taken gets the key appended, and a name with no
// usable characters falls back to the key alone.
type Index struct {
	byKey  map[string]string
	bySlug map[string]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byKey: make(map[string]string), bySlug: make(map[string]string)}
}

// Add records key under a slug derived from name and returns the slug.
// Adding the same key twice returns its first slug.
func (x *Index) Add(key, name string) string {
	if s, ok := x.byKey[key]; ok {
		return s
	}

	s := Generate(name)
	if s == "" {
		s = Generate(key)
	}
	if _, taken := x.bySlug[s]; taken || s == "" {
		s = strings.Trim(s+"-"+Generate(key), "-")
	}

	x.byKey[key] = s
	x.bySlug[s] = key
	return s
}

// Slug returns the slug recorded for key.
func (x *Index) Slug(key string) (string, bool) {
	s, ok := x.byKey[key]
	return s, ok
}

// Key resolves a slug back to its key.
func (x *Index) Key(slug string) (string, bool) {
	k, ok := x.bySlug[slug]
	return k, ok
}
