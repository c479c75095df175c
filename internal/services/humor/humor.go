// Package humor finds who landed jokes and what the jokes were about
// during the opening stretch of the broadcast
package humor

import (
	"regexp"
	"strings"
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

// Config for the humor miner
type Config struct {
	SpanMinutes int     `validate:"gt=0"`
	PosCutoff   float64 `validate:"gt=0,lte=1"`
	NegCutoff   float64 `validate:"lt=0,gte=-1"`
	TopK        int     `validate:"gt=0"`
	MaxThemeLen int     `validate:"gt=0"`
}

// DefaultConfig returns the tuned humor settings
func DefaultConfig() Config {
	return Config{SpanMinutes: 75, PosCutoff: 0.25, NegCutoff: -0.4, TopK: 5, MaxThemeLen: 6}
}

// Result is the funniest-people list and the recurring joke subjects
type Result struct {
	People []string    `json:"people"`
	Themes []string    `json:"themes"`
	Window window.Span `json:"window"`
}

// Service tallies joke credit and joke subjects after the show opens
type Service struct {
	pack   *cues.Pack
	ex     *extract.Extractor
	tagger PeopleTagger
	scorer *sentiment.Scorer
	cfg    Config
}

// New constructs the humor miner. tagger may be nil
func New(pack *cues.Pack, ex *extract.Extractor, tagger PeopleTagger, scorer *sentiment.Scorer, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.SpanMinutes <= 0 {
		cfg.SpanMinutes = def.SpanMinutes
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
	if cfg.MaxThemeLen <= 0 {
		cfg.MaxThemeLen = def.MaxThemeLen
	}
	if scorer == nil {
		scorer = sentiment.Default()
	}
	return &Service{pack: pack, ex: ex, tagger: tagger, scorer: scorer, cfg: cfg}
}

var (
	jokeAboutRe = regexp.MustCompile(`\bjok(?:e[sd]?|ing)\s+about\s+([a-z0-9'\- ]+)`)
	theJokeRe   = regexp.MustCompile(`\b(?:that|the)\s+([a-z'\- ]+?)\s+jokes?\b`)
	jokeTokenRe = regexp.MustCompile(`\bjok(?:e[sd]?|ing)\b`)
)

// Predicate reports whether a record reacts to a joke
func (s *Service) Predicate(r feed.Record) bool {
	_, ok := s.pack.Category("humor").Match(normalize.Fold(r.Text))
	return ok
}

// Run tallies joke mentions inside [ceremonyStart, ceremonyStart+span).
// Strong reactions in either direction count, a roast landing is still a
// laugh. Middling records need an explicit joke token to survive
func (s *Service) Run(records []feed.Record, ceremonyStart time.Time) Result {
	span := window.Span{
		Start: ceremonyStart,
		End:   ceremonyStart.Add(time.Duration(s.cfg.SpanMinutes) * time.Minute),
	}

	people, themes := tally.New(), tally.New()
	seen := make(map[string]struct{})

	for _, r := range window.Filter(records, span, s.Predicate) {
		clean := normalize.Clean(r.Text)
		folded := normalize.Fold(clean)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}

		score := s.scorer.Score(folded)
		if score < s.cfg.PosCutoff && score > s.cfg.NegCutoff && !jokeTokenRe.MatchString(folded) {
			continue
		}

		people.Add(s.people(clean), 1)
		themes.Add(s.themes(folded), 1)
	}

	return Result{
		People: rank.TopK(people, s.cfg.TopK),
		Themes: rank.TopK(themes, s.cfg.TopK),
		Window: span,
	}
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

func (s *Service) themes(folded string) []string {
	var raw []string
	for _, m := range jokeAboutRe.FindAllStringSubmatch(folded, -1) {
		raw = append(raw, m[1])
	}
	for _, m := range theJokeRe.FindAllStringSubmatch(folded, -1) {
		raw = append(raw, m[1])
	}

	var out []string
	for _, r := range raw {
		if theme := s.trimTheme(r); theme != "" {
			out = append(out, theme)
		}
	}
	return out
}

// trimTheme bounds a captured subject to a short stopword-free phrase.
// Leading and trailing tokens of one or two characters are noise
func (s *Service) trimTheme(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) > s.cfg.MaxThemeLen {
		fields = fields[:s.cfg.MaxThemeLen]
	}

	kept := fields[:0]
	for _, f := range fields {
		if s.pack.Stopword(f) {
			continue
		}
		kept = append(kept, f)
	}
	for len(kept) > 0 && len(kept[0]) <= 2 {
		kept = kept[1:]
	}
	for len(kept) > 0 && len(kept[len(kept)-1]) <= 2 {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, " ")
}
