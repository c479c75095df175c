// Package awards discovers the ceremony's award names from the stream
// itself, with no canonical list supplied up front
package awards

import (
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"marquee/internal/core/feed"
	"marquee/internal/core/match"
	"marquee/internal/core/normalize"
)

// Config for award-name discovery
type Config struct {
	MinSupport     int     `validate:"gte=0"`
	MergeThreshold float64 `validate:"gt=0,lte=100"`
	TopN           int     `validate:"gt=0"`
}

// DefaultConfig returns the tuned discovery settings
func DefaultConfig() Config {
	return Config{MinSupport: 10, MergeThreshold: 85, TopN: 30}
}

// Discovered is one merged award name with its total mention support
type Discovered struct {
	Name    string `json:"name"`
	Support int    `json:"support"`
}

// Service mines "best ..." phrases around award verbs
type Service struct {
	cfg Config
	ro  *metrics.RatcliffObershelp
}

// New constructs the discovery service
func New(cfg Config) *Service {
	def := DefaultConfig()
	if cfg.MergeThreshold <= 0 {
		cfg.MergeThreshold = def.MergeThreshold
	}
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	return &Service{cfg: cfg, ro: metrics.NewRatcliffObershelp()}
}

var phraseRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:award for|wins|won|receives?|receiving|presenting|presented with|accepts?|accepting)\s+(?:the\s+)?(best [^.,;:!?]+)`),
	regexp.MustCompile(`(?:nominated for|nominee for|up for|contender for)\s+(?:the\s+)?(best [^.,;:!?]+)`),
	regexp.MustCompile(`(best [^.,;:!?]+?)\s+(?:award\s+)?goes to`),
	regexp.MustCompile(`(best [^.,;:!?]+?)\s+(?:is|was)\s+(?:won by|awarded to|received by)`),
	regexp.MustCompile(`(best [^.,;:!?]+?)\s+(?:award|trophy|prize)\b`),
	regexp.MustCompile(`(?:congrats|congratulations|props)\s+(?:on|for)\s+(?:the\s+)?(best [^.,;:!?]+)`),
}

// tailRe cuts a phrase at the first connective, everything after it names
// the winner rather than the award
var tailRe = regexp.MustCompile(`\b(?:for|to|by|from|goes|at|is|was)\b.*$`)

var nonPhraseRe = regexp.MustCompile(`[^a-z0-9\- ]+`)

// Run counts candidate phrases over the whole stream, filters thin ones,
// merges near-duplicates toward the longest surface form and returns the
// top names by support
func (s *Service) Run(records []feed.Record) []Discovered {
	counts := make(map[string]int)
	for _, r := range records {
		folded := normalize.Fold(normalize.Clean(r.Text))
		if !strings.Contains(folded, "best") {
			continue
		}
		for _, re := range phraseRes {
			for _, m := range re.FindAllStringSubmatch(folded, -1) {
				phrase := cleanPhrase(m[1])
				if len(strings.Fields(phrase)) >= 3 && strings.HasPrefix(phrase, "best") {
					counts[phrase]++
				}
			}
		}
	}

	filtered := make(map[string]int, len(counts))
	for phrase, n := range counts {
		if n > s.cfg.MinSupport {
			filtered[phrase] = n
		}
	}

	merged := s.merge(filtered)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Support != merged[j].Support {
			return merged[i].Support > merged[j].Support
		}
		return merged[i].Name < merged[j].Name
	})
	if len(merged) > s.cfg.TopN {
		merged = merged[:s.cfg.TopN]
	}
	return merged
}

// Names returns just the discovered award names
func Names(ds []Discovered) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}

func cleanPhrase(phrase string) string {
	phrase = tailRe.ReplaceAllString(phrase, "")
	phrase = nonPhraseRe.ReplaceAllString(phrase, " ")

	fields := strings.Fields(phrase)
	for i, f := range fields {
		switch f {
		case "tv":
			fields[i] = "television"
		case "miniseries":
			fields[i] = "mini-series"
		}
	}
	phrase = strings.Join(fields, " ")
	phrase = strings.ReplaceAll(phrase, "mini series", "mini-series")
	return strings.TrimSpace(phrase)
}

// merge folds near-duplicate phrases into the longest variant, keeping
// person and non-person awards apart so "best actor" never absorbs
// "best picture"
func (s *Service) merge(counts map[string]int) []Discovered {
	phrases := make([]string, 0, len(counts))
	for p := range counts {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})

	seen := make(map[string]bool, len(phrases))
	var out []Discovered
	for _, p := range phrases {
		if seen[p] {
			continue
		}
		group := []string{p}
		for _, q := range phrases {
			if q == p || seen[q] {
				continue
			}
			if match.IsPerson(p) != match.IsPerson(q) {
				continue
			}
			if strutil.Similarity(p, q, s.ro)*100 >= s.cfg.MergeThreshold {
				group = append(group, q)
			}
		}

		longest, total := p, 0
		for _, g := range group {
			seen[g] = true
			total += counts[g]
			if len(g) > len(longest) {
				longest = g
			}
		}
		out = append(out, Discovered{Name: longest, Support: total})
	}
	return out
}
