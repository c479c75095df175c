// Package extract turns free text into normalized entity candidates using
// capitalization heuristics, conjunction splitting, and quoted spans
package extract

import (
	"regexp"
	"strings"
)

// Kind classifies what a candidate names
type Kind int

const (
	// Person is a human name cleaned by the capitalized-word rules
	Person Kind = iota
	// Title is a work name, usually pulled from a quoted span
	Title
)

func (k Kind) String() string {
	if k == Title {
		return "title"
	}
	return "person"
}

// Candidate is one extracted entity, not yet scored
type Candidate struct {
	Text string
	Kind Kind
}

var (
	// a capitalized word: upper initial then lowercase letters or apostrophe
	capWordRe = regexp.MustCompile(`^[A-Z][a-z']+$`)

	// 2-3 consecutive capitalized words
	chunkRe = regexp.MustCompile(`\b[A-Z][a-z']+ [A-Z][a-z']+(?: [A-Z][a-z']+)?\b`)

	// two two-word capitalized spans joined by and/&
	pairRe = regexp.MustCompile(`\b([A-Z][a-z']+ [A-Z][a-z']+)\s+(?:and|&)\s+([A-Z][a-z']+ [A-Z][a-z']+)\b`)

	// anything between straight double quotes
	quotedRe = regexp.MustCompile(`"([^"]{2,80})"`)
)

// brand and ceremony vocabulary that must never become a candidate
var defaultDeny = map[string]struct{}{
	"golden globe":      {},
	"golden globes":     {},
	"goldenglobes":      {},
	"red carpet":        {},
	"best actor":        {},
	"best actress":      {},
	"best director":     {},
	"best picture":      {},
	"motion picture":    {},
	"television series": {},
	"award goes":        {},
	"happy new":         {},
	"last night":        {},
}

// Extractor holds the deny list so callers can extend the defaults
type Extractor struct {
	deny map[string]struct{}
}

// New builds an Extractor, extraDeny entries are matched case insensitively
func New(extraDeny ...string) *Extractor {
	deny := make(map[string]struct{}, len(defaultDeny)+len(extraDeny))
	for k := range defaultDeny {
		deny[k] = struct{}{}
	}
	for _, d := range extraDeny {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			deny[d] = struct{}{}
		}
	}
	return &Extractor{deny: deny}
}

// CleanName validates a person-name candidate.
// Accepts 2-3 space-separated tokens, every token in capitalized-word shape,
// returns the whitespace-normalized form or empty when rejected
func CleanName(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 || len(fields) > 3 {
		return ""
	}
	for _, f := range fields {
		if !capWordRe.MatchString(f) {
			return ""
		}
	}
	return strings.Join(fields, " ")
}

// People returns unique person candidates in first-seen order.
// Pair sides are emitted before the chunk that spans them
func (e *Extractor) People(text string) []string {
	type hit struct {
		pos  int
		name string
	}
	var hits []hit

	for _, m := range pairRe.FindAllStringSubmatchIndex(text, -1) {
		left := text[m[2]:m[3]]
		right := text[m[4]:m[5]]
		if n := CleanName(left); n != "" {
			hits = append(hits, hit{pos: m[2], name: n})
		}
		if n := CleanName(right); n != "" {
			hits = append(hits, hit{pos: m[4], name: n})
		}
	}

	for _, m := range chunkRe.FindAllStringIndex(text, -1) {
		if n := CleanName(text[m[0]:m[1]]); n != "" {
			hits = append(hits, hit{pos: m[0], name: n})
		}
	}

	// stable order by position, then dedupe and deny-filter
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	var out []string
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		key := strings.ToLower(h.name)
		if _, dup := seen[key]; dup {
			continue
		}
		if _, denied := e.deny[key]; denied {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h.name)
	}
	return out
}

// Titles returns unique quoted-span title candidates in first-seen order
func (e *Extractor) Titles(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
		t := strings.TrimSpace(m[1])
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		if _, denied := e.deny[key]; denied {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Candidates returns person and title candidates merged, people first
func (e *Extractor) Candidates(text string, kind Kind) []Candidate {
	var out []Candidate
	switch kind {
	case Title:
		for _, t := range e.Titles(text) {
			out = append(out, Candidate{Text: t, Kind: Title})
		}
		// capitalized chunks still matter for unquoted titles
		for _, p := range e.People(text) {
			out = append(out, Candidate{Text: p, Kind: Title})
		}
	default:
		for _, p := range e.People(text) {
			out = append(out, Candidate{Text: p, Kind: Person})
		}
	}
	return out
}

// Names flattens candidates to their strings
func Names(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Text)
	}
	return out
}
