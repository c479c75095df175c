// Package redcarpet mines best and worst dressed claims from the arrival
// chatter that precedes the broadcast
package redcarpet

import (
	"time"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/core/rank"
	"marquee/internal/core/sentiment"
	"marquee/internal/core/tally"
	"marquee/internal/core/window"
)

// PeopleTagger supplies higher-precision person spans for a text
type PeopleTagger interface {
	People(text string) []string
}

// ImageFetcher retrieves a representative image for a name and returns a
// local path. Implementations hit the network; the default is a no-op
type ImageFetcher interface {
	Fetch(name string) (string, error)
}

// Config for the red carpet miner
type Config struct {
	SpanMinutes          int     `validate:"gt=0"`
	MaxPriorMinutes      int     `validate:"gt=0"`
	FallbackPriorMinutes int     `validate:"gt=0"`
	PosCutoff            float64 `validate:"gt=0,lte=1"`
	NegCutoff            float64 `validate:"lt=0,gte=-1"`
	TopK                 int     `validate:"gt=0"`
}

// DefaultConfig returns the tuned red carpet settings
func DefaultConfig() Config {
	return Config{
		SpanMinutes:          60,
		MaxPriorMinutes:      120,
		FallbackPriorMinutes: 75,
		PosCutoff:            0.3,
		NegCutoff:            -0.3,
		TopK:                 5,
	}
}

// Result is the dressed verdicts plus the window they came from
type Result struct {
	BestDressed  []string    `json:"best_dressed"`
	WorstDressed []string    `json:"worst_dressed"`
	BestImage    string      `json:"best_image,omitempty"`
	WorstImage   string      `json:"worst_image,omitempty"`
	Window       window.Span `json:"window"`
}

// Service tallies outfit praise and scorn inside the arrival window
type Service struct {
	pack   *cues.Pack
	ex     *extract.Extractor
	tagger PeopleTagger
	scorer *sentiment.Scorer
	images ImageFetcher
	cfg    Config
}

// New constructs the red carpet miner. tagger and images may be nil
func New(pack *cues.Pack, ex *extract.Extractor, tagger PeopleTagger, scorer *sentiment.Scorer, images ImageFetcher, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.SpanMinutes <= 0 {
		cfg.SpanMinutes = def.SpanMinutes
	}
	if cfg.MaxPriorMinutes <= 0 {
		cfg.MaxPriorMinutes = def.MaxPriorMinutes
	}
	if cfg.FallbackPriorMinutes <= 0 {
		cfg.FallbackPriorMinutes = def.FallbackPriorMinutes
	}
	if cfg.PosCutoff == 0 {
		cfg.PosCutoff = def.PosCutoff
	}
	if cfg.NegCutoff == 0 {
		cfg.NegCutoff = def.NegCutoff
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if scorer == nil {
		scorer = sentiment.Default()
	}
	return &Service{pack: pack, ex: ex, tagger: tagger, scorer: scorer, images: images, cfg: cfg}
}

// Predicate reports whether a record talks about arrival fashion
func (s *Service) Predicate(r feed.Record) bool {
	_, ok := s.pack.Category("redcarpet").Match(normalize.Fold(r.Text))
	return ok
}

// Run searches the stretch before ceremonyStart for the densest arrival
// window and tallies outfit sentiment per person inside it.
// Explicit best/worst dressed phrases override the lexicon score
func (s *Service) Run(records []feed.Record, ceremonyStart time.Time) Result {
	span := window.DetectBefore(
		records,
		s.Predicate,
		time.Duration(s.cfg.SpanMinutes)*time.Minute,
		ceremonyStart,
		time.Duration(s.cfg.MaxPriorMinutes)*time.Minute,
		time.Duration(s.cfg.FallbackPriorMinutes)*time.Minute,
	)

	pos, neg := tally.New(), tally.New()
	best := s.pack.Category("bestdressed")
	worst := s.pack.Category("worstdressed")

	for _, r := range window.Filter(records, span, s.Predicate) {
		clean := normalize.Clean(r.Text)
		folded := normalize.Fold(clean)

		var bucket tally.Tally
		switch {
		case matches(best, folded):
			bucket = pos
		case matches(worst, folded):
			bucket = neg
		default:
			score := s.scorer.Score(folded)
			if score >= s.cfg.PosCutoff {
				bucket = pos
			} else if score <= s.cfg.NegCutoff {
				bucket = neg
			} else {
				continue
			}
		}

		bucket.Add(s.people(clean), 1)
	}

	res := Result{
		BestDressed:  rank.TopK(pos, s.cfg.TopK),
		WorstDressed: rank.TopK(neg, s.cfg.TopK),
		Window:       span,
	}
	if s.images != nil {
		if len(res.BestDressed) > 0 {
			res.BestImage, _ = s.images.Fetch(res.BestDressed[0])
		}
		if len(res.WorstDressed) > 0 {
			res.WorstImage, _ = s.images.Fetch(res.WorstDressed[0])
		}
	}
	return res
}

func matches(c *cues.Category, folded string) bool {
	_, ok := c.Match(folded)
	return ok
}

func (s *Service) people(clean string) []string {
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
