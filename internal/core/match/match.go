// Package match maps free text onto the closest canonical category name.
// Two-tier gate: stopword-stripped token overlap first, a fuzzy anchor-phrase
// fallback second, explicit no-match third. Canonical names are long and
// compositional while post phrasing is short and lossy, so guessing below the
// floor would contaminate unrelated tallies
package match

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"marquee/internal/core/cues"
	"marquee/internal/core/normalize"
)

// Thresholds holds the confidence gates, exposed as configuration because
// the right values are corpus dependent
type Thresholds struct {
	Overlap float64 `validate:"gt=0,lte=1"` // immediate accept
	Fuzzy   float64 `validate:"gt=0,lte=100"`
	Floor   float64 `validate:"gte=0,lte=1"` // minimum overlap to accept at all
}

// DefaultThresholds are the tuned-by-inspection values
func DefaultThresholds() Thresholds {
	return Thresholds{Overlap: 0.55, Fuzzy: 72, Floor: 0.35}
}

type category struct {
	name   string   // canonical form as supplied
	folded string   // case folded
	tokens []string // distinguishing tokens, stopwords removed
}

// Matcher resolves text to one of a fixed canonical category list
type Matcher struct {
	categories []category
	pack       *cues.Pack
	th         Thresholds
	anchor     string
	ro         *metrics.RatcliffObershelp
}

// New builds a Matcher over the canonical names.
// anchor is the keyword that starts the fallback phrase, usually "best"
func New(names []string, pack *cues.Pack, th Thresholds) *Matcher {
	m := &Matcher{pack: pack, th: th, anchor: "best", ro: metrics.NewRatcliffObershelp()}
	for _, n := range names {
		folded := normalize.Fold(n)
		var toks []string
		for _, t := range strings.Fields(folded) {
			t = strings.Trim(t, ".,-")
			if t == "" || pack.Stopword(t) {
				continue
			}
			toks = append(toks, t)
		}
		m.categories = append(m.categories, category{name: n, folded: folded, tokens: toks})
	}
	return m
}

// Match returns the closest canonical category for folded text.
// ok is false when no category clears either gate; the caller must drop the
// record from category-specific tallying rather than guess
func (m *Matcher) Match(folded string) (name string, ok bool) {
	if len(m.categories) == 0 {
		return "", false
	}

	textToks := tokenSet(folded)

	bestIdx, bestOverlap := -1, 0.0
	for i, c := range m.categories {
		ov := overlap(c.tokens, textToks)
		if ov > bestOverlap {
			bestOverlap = ov
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestOverlap >= m.th.Overlap {
		return m.categories[bestIdx].name, true
	}

	// fuzzy fallback over the anchor phrase
	if phrase := m.anchorPhrase(folded); phrase != "" {
		fuzzIdx, fuzzBest := -1, 0.0
		for i, c := range m.categories {
			score := strutil.Similarity(phrase, c.folded, m.ro) * 100
			if score > fuzzBest {
				fuzzBest = score
				fuzzIdx = i
			}
		}
		if fuzzIdx >= 0 && fuzzBest >= m.th.Fuzzy {
			return m.categories[fuzzIdx].name, true
		}
	}

	if bestIdx >= 0 && bestOverlap >= m.th.Floor {
		return m.categories[bestIdx].name, true
	}
	return "", false
}

// Score returns the blended overlap/fuzzy confidence for one canonical name,
// used by the nominee extractor's softer gate
func (m *Matcher) Score(folded, canonical string) float64 {
	canonFolded := normalize.Fold(canonical)
	var toks []string
	for _, t := range strings.Fields(canonFolded) {
		t = strings.Trim(t, ".,-")
		if t == "" || m.pack.Stopword(t) {
			continue
		}
		toks = append(toks, t)
	}
	ov := overlap(toks, tokenSet(folded))
	fz := strutil.Similarity(folded, canonFolded, m.ro)
	return 0.7*ov + 0.3*fz
}

// anchorPhrase slices from the anchor keyword up to a boundary token,
// capped at maxAnchorTokens
func (m *Matcher) anchorPhrase(folded string) string {
	const maxAnchorTokens = 12

	fields := strings.Fields(folded)
	start := -1
	for i, f := range fields {
		if f == m.anchor {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	out := []string{fields[start]}
	for i := start + 1; i < len(fields) && len(out) < maxAnchorTokens; i++ {
		tok := strings.Trim(fields[i], ".,!?\"")
		if tok == "" {
			continue
		}
		if m.pack.Boundary(tok) {
			break
		}
		out = append(out, tok)
	}
	if len(out) < 2 {
		return ""
	}
	return strings.Join(out, " ")
}

// IsPerson reports whether a canonical category names a person rather than
// a work, from its own wording
func IsPerson(canonical string) bool {
	f := normalize.Fold(canonical)
	for _, cue := range []string{"actor", "actress", "director", "performance by", "cecil b"} {
		if strings.Contains(f, cue) {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		t = strings.Trim(t, ".,!?\"'-")
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

// overlap is the fraction of category tokens literally present in the text
func overlap(catTokens []string, textToks map[string]struct{}) float64 {
	if len(catTokens) == 0 {
		return 0
	}
	hit := 0
	for _, t := range catTokens {
		if _, ok := textToks[t]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(catTokens))
}
