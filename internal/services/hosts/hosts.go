// Package hosts finds who hosted the broadcast from the burst of host
// chatter around the opening
package hosts

import (
	"strings"
	"time"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/core/rank"
	"marquee/internal/core/tally"
	"marquee/internal/core/window"
)

// PeopleTagger supplies higher-precision person spans for a text.
// A nil tagger is fine, the regex extractor still runs
type PeopleTagger interface {
	People(text string) []string
}

// Config for the host finder
type Config struct {
	WindowMinutes  int     `validate:"gt=0"`
	DominanceRatio float64 `validate:"gte=1"`
}

// DefaultConfig returns the tuned host finder settings
func DefaultConfig() Config {
	return Config{WindowMinutes: 40, DominanceRatio: rank.DefaultDominanceRatio}
}

// Result is the host answer plus the evidence that produced it
type Result struct {
	Hosts  []string      `json:"hosts"`
	Scores []rank.Scored `json:"scores"`
	Window window.Span   `json:"window"`
}

// Service scores host mentions inside the densest host-cue window
type Service struct {
	pack   *cues.Pack
	ex     *extract.Extractor
	tagger PeopleTagger
	cfg    Config
}

// New constructs a host finder
func New(pack *cues.Pack, ex *extract.Extractor, tagger PeopleTagger, cfg Config) *Service {
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = 40
	}
	if cfg.DominanceRatio < 1 {
		cfg.DominanceRatio = rank.DefaultDominanceRatio
	}
	return &Service{pack: pack, ex: ex, tagger: tagger, cfg: cfg}
}

// Predicate reports whether a record talks about hosting.
// A tag containing "host" counts even when the text itself does not
func (s *Service) Predicate(r feed.Record) bool {
	if _, ok := s.pack.Category("host").Match(normalize.Fold(r.Text)); ok {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), "host") {
			return true
		}
	}
	return false
}

// Run detects the host window and returns the dominance-gated host list.
// One dominant name means a solo host, two close names mean a pair
func (s *Service) Run(records []feed.Record, now func() time.Time) Result {
	dur := time.Duration(s.cfg.WindowMinutes) * time.Minute
	span := window.Detect(records, s.Predicate, dur, now)

	t := tally.New()
	for _, r := range window.Filter(records, span, s.Predicate) {
		if r.IsRetweet {
			continue
		}
		clean := normalize.Clean(r.Text)
		folded := normalize.Fold(clean)

		weight := 1.0
		if strings.Contains(folded, "opening monologue") || strings.Contains(folded, "please welcome") {
			weight = 2.0
		}

		t.Add(s.candidates(clean), weight)
	}

	return Result{
		Hosts:  rank.DominanceGate(t, s.cfg.DominanceRatio),
		Scores: rank.Sorted(t),
		Window: span,
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
