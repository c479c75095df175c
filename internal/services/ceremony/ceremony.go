// Package ceremony extracts winners, nominees, and presenters for a fixed
// canonical award list
package ceremony

import (
	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/match"
	"marquee/internal/core/normalize"
)

// PeopleTagger supplies higher-precision person spans for a text
type PeopleTagger interface {
	People(text string) []string
}

// Config for the ceremony extractors
type Config struct {
	NomineeFloor float64 `validate:"gt=0,lt=1"`
	NomineeTopK  int     `validate:"gt=0"`
	NearDist     int     `validate:"gt=0"`
	FarDist      int     `validate:"gt=0"`
}

// DefaultConfig returns the tuned ceremony settings
func DefaultConfig() Config {
	return Config{NomineeFloor: 0.35, NomineeTopK: 4, NearDist: 80, FarDist: 140}
}

// Service runs the award-list extractors over a record set
type Service struct {
	pack    *cues.Pack
	ex      *extract.Extractor
	tagger  PeopleTagger
	matcher *match.Matcher
	awards  []string
	cfg     Config
}

// New constructs the ceremony service over the canonical award names.
// tagger may be nil
func New(pack *cues.Pack, ex *extract.Extractor, tagger PeopleTagger, awards []string, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.NomineeFloor <= 0 {
		cfg.NomineeFloor = def.NomineeFloor
	}
	if cfg.NomineeTopK <= 0 {
		cfg.NomineeTopK = def.NomineeTopK
	}
	if cfg.NearDist <= 0 {
		cfg.NearDist = def.NearDist
	}
	if cfg.FarDist <= 0 {
		cfg.FarDist = def.FarDist
	}
	return &Service{
		pack:    pack,
		ex:      ex,
		tagger:  tagger,
		matcher: match.New(awards, pack, match.DefaultThresholds()),
		awards:  awards,
		cfg:     cfg,
	}
}

// Awards returns the canonical award list the service was built over
func (s *Service) Awards() []string { return s.awards }

// candidates extracts and cleans kind-appropriate candidates for an award
func (s *Service) candidates(clean, award string) []string {
	if match.IsPerson(award) {
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

	titles := extract.Names(s.ex.Candidates(clean, extract.Title))
	out := titles[:0]
	for _, t := range titles {
		folded := normalize.Fold(t)
		if folded == "" || s.pack.DeniedPerson(folded) {
			continue
		}
		out = append(out, t)
	}
	return out
}
