package pharmacy

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalizer folds a raw medication name into its lookup form. The matching
// strategy is an injection point: stores accept a custom Normalizer for
// deployments that need transliteration-aware matching.
type Normalizer func(string) string

// FoldName is the default Normalizer: trims surrounding whitespace,
// collapses inner runs of spaces, and applies Unicode case folding so that
// matching works across Latin and Hebrew input alike.
func FoldName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Match is the outcome of resolving a raw name against the store vocabulary.
type Match struct {
	// Canonical is the store's spelling when exactly one entry matched.
	Canonical string
	// Candidates holds every partially matching canonical name. More than
	// one candidate means the name is ambiguous and must not be guessed at.
	Candidates []string
}

// MatchName resolves a raw medication name against the known vocabulary.
// An exact folded match wins outright; otherwise folded prefix matches are
// collected as candidates. A raw name with no match at all returns an empty
// Match so the caller can let the store lookup report the miss.
func MatchName(vocabulary []string, raw string, fold Normalizer) Match {
	if fold == nil {
		fold = FoldName
	}
	folded := fold(raw)
	if folded == "" {
		return Match{}
	}

	var partial []string
	for _, name := range vocabulary {
		candidate := fold(name)
		if candidate == folded {
			return Match{Canonical: name, Candidates: []string{name}}
		}
		if strings.HasPrefix(candidate, folded) {
			partial = append(partial, name)
		}
	}

	if len(partial) == 1 {
		return Match{Canonical: partial[0], Candidates: partial}
	}
	return Match{Candidates: partial}
}
