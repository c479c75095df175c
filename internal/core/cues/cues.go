// Package cues loads and compiles the trigger phrase pack from the embedded
// cues.json. It prepares per-category regexes, guard patterns, and the deny
// and boundary token sets shared by the extractors
package cues

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed cues.json
var embedded []byte

type rawTrigger struct {
	Pattern  string `json:"pattern"`
	Strength int    `json:"strength"`
}

type rawCategory struct {
	ID       string       `json:"id"`
	Triggers []rawTrigger `json:"triggers"`
}

type rawGuards struct {
	Negation []string `json:"negation"`
	Future   []string `json:"future"`
}

type rawPack struct {
	Version    int                 `json:"version"`
	Meta       map[string]any      `json:"meta"`
	Categories []rawCategory       `json:"categories"`
	Guards     rawGuards           `json:"guards"`
	Deny       map[string][]string `json:"deny"`
	Boundaries []string            `json:"boundaries"`
	Stopwords  []string            `json:"stopwords"`
}

// Trigger is one compiled cue with its base strength
type Trigger struct {
	Pattern  string
	Strength int
	re       *regexp.Regexp
}

// Hit is one trigger occurrence inside a text
type Hit struct {
	Start    int
	End      int
	Strength int
}

// Category is a compiled trigger set
type Category struct {
	ID       string
	Triggers []Trigger
}

// Pack is the compiled cue pack
type Pack struct {
	Version    int
	Meta       map[string]any
	categories map[string]*Category
	negation   []*regexp.Regexp
	future     []*regexp.Regexp
	denyPerson map[string]struct{}
	denyAward  map[string]struct{}
	boundaries map[string]struct{}
	stopwords  map[string]struct{}
}

// Load returns the compiled pack from the embedded cues.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("cues: parse cues.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("cues: unsupported cues.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:    rp.Version,
		Meta:       rp.Meta,
		categories: make(map[string]*Category, len(rp.Categories)),
		denyPerson: toSet(rp.Deny["person"]),
		denyAward:  toSet(rp.Deny["award"]),
		boundaries: toSet(rp.Boundaries),
		stopwords:  toSet(rp.Stopwords),
	}

	for _, rc := range rp.Categories {
		c := &Category{ID: rc.ID}
		for _, rt := range rc.Triggers {
			re, err := regexp.Compile(rt.Pattern)
			if err != nil {
				return nil, fmt.Errorf("cues: compile %q in %s: %w", rt.Pattern, rc.ID, err)
			}
			c.Triggers = append(c.Triggers, Trigger{Pattern: rt.Pattern, Strength: rt.Strength, re: re})
		}
		// deterministic iteration for tests/debug
		sort.Slice(c.Triggers, func(i, j int) bool {
			if c.Triggers[i].Strength != c.Triggers[j].Strength {
				return c.Triggers[i].Strength > c.Triggers[j].Strength
			}
			return c.Triggers[i].Pattern < c.Triggers[j].Pattern
		})
		p.categories[rc.ID] = c
	}

	for _, g := range rp.Guards.Negation {
		re, err := regexp.Compile(g)
		if err != nil {
			return nil, fmt.Errorf("cues: compile negation %q: %w", g, err)
		}
		p.negation = append(p.negation, re)
	}
	for _, g := range rp.Guards.Future {
		re, err := regexp.Compile(g)
		if err != nil {
			return nil, fmt.Errorf("cues: compile future %q: %w", g, err)
		}
		p.future = append(p.future, re)
	}

	return p, nil
}

// MustLoad is Load or panic, for wiring in main
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Category returns the compiled trigger set for id, nil when unknown
func (p *Pack) Category(id string) *Category { return p.categories[id] }

// Negated reports whether folded text matches a negation guard
// such records describe a non-event and must not reach any tally
func (p *Pack) Negated(folded string) bool {
	for _, re := range p.negation {
		if re.MatchString(folded) {
			return true
		}
	}
	return false
}

// Future reports whether folded text matches a future-tense guard
func (p *Pack) Future(folded string) bool {
	for _, re := range p.future {
		if re.MatchString(folded) {
			return true
		}
	}
	return false
}

// DeniedPerson reports whether name is on the person deny list
func (p *Pack) DeniedPerson(name string) bool {
	_, ok := p.denyPerson[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Boundary reports whether the folded token ends an anchor phrase
func (p *Pack) Boundary(token string) bool {
	_, ok := p.boundaries[token]
	return ok
}

// Stopword reports whether the folded token is closed-class filler
func (p *Pack) Stopword(token string) bool {
	_, ok := p.stopwords[token]
	return ok
}

// PersonDeny returns the person deny list for seeding extractors
func (p *Pack) PersonDeny() []string {
	out := make([]string, 0, len(p.denyPerson))
	for k := range p.denyPerson {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Match returns the strongest trigger strength found in folded text
// ok is false when no trigger matches
func (c *Category) Match(folded string) (strength int, ok bool) {
	if c == nil {
		return 0, false
	}
	for _, t := range c.Triggers {
		if t.re.MatchString(folded) {
			// triggers are sorted strongest first
			return t.Strength, true
		}
	}
	return 0, false
}

// Find returns every trigger occurrence in folded text, ordered by position
func (c *Category) Find(folded string) []Hit {
	if c == nil {
		return nil
	}
	var hits []Hit
	for _, t := range c.Triggers {
		for _, loc := range t.re.FindAllStringIndex(folded, -1) {
			hits = append(hits, Hit{Start: loc[0], End: loc[1], Strength: t.Strength})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		return hits[i].Strength > hits[j].Strength
	})
	return hits
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}
