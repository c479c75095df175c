// Package performance rolls up who got talked about for performing:
// musical numbers, the monologue, acceptance speeches
package performance

import (
	"regexp"
	"sort"
	"strings"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/core/rank"
	"marquee/internal/core/tally"
)

// PeopleTagger supplies higher-precision person spans for a text.
// A nil tagger is fine, the regex extractor still runs
type PeopleTagger interface {
	People(text string) []string
}

// Config for the performer rollup
type Config struct {
	TopK int `validate:"gt=0"`
}

// DefaultConfig returns the tuned performer rollup settings
func DefaultConfig() Config {
	return Config{TopK: 8}
}

// Result lists the most mentioned performers and speakers
type Result struct {
	Performers []string      `json:"performers"`
	Scores     []rank.Scored `json:"scores"`
}

// Service counts performer mentions across the whole stream
type Service struct {
	pack   *cues.Pack
	ex     *extract.Extractor
	tagger PeopleTagger
	cfg    Config
}

// New constructs a performer rollup
func New(pack *cues.Pack, ex *extract.Extractor, tagger PeopleTagger, cfg Config) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = 8
	}
	return &Service{pack: pack, ex: ex, tagger: tagger, cfg: cfg}
}

var performanceRe = regexp.MustCompile(`\b(?:performance|perform|sing|monologue|speech)\b`)

// Predicate reports whether a record talks about a performance
func (s *Service) Predicate(r feed.Record) bool {
	return performanceRe.MatchString(normalize.Fold(r.Text))
}

// Run tallies person mentions in performance chatter and returns the
// top names after folding partial names into their longer forms
func (s *Service) Run(records []feed.Record) Result {
	t := tally.New()
	for _, r := range records {
		if !s.Predicate(r) {
			continue
		}
		clean := normalize.Clean(r.Text)
		t.Add(s.candidates(clean), 1)
	}

	merged := mergeContained(t)
	return Result{
		Performers: rank.TopK(merged, s.cfg.TopK),
		Scores:     rank.Sorted(merged),
	}
}

func (s *Service) candidates(clean string) []string {
	names := s.ex.People(clean)
	if s.tagger != nil {
		names = append(names, s.tagger.People(clean)...)
	}
	out := names[:0]
	for _, n := range names {
		n = extract.CleanName(n)
		if n == "" || s.pack.DeniedPerson(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// mergeContained folds the count of any name that appears inside a longer
// name into that longer form, so "Adele" and "Adele Adkins" score as one
func mergeContained(t tally.Tally) tally.Tally {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	// longest first so every short form finds its widest container
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	out := tally.New()
	for _, n := range names {
		folded := normalize.Fold(n)
		target := n
		for _, longer := range names {
			if longer == n || len(longer) <= len(n) {
				continue
			}
			if containsWord(normalize.Fold(longer), folded) {
				target = longer
				break
			}
		}
		out[target] += t[n]
	}
	return out
}

func containsWord(haystack, needle string) bool {
	return needle != "" && strings.Contains(" "+haystack+" ", " "+needle+" ")
}
