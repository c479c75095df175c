package ceremony

import (
	"strings"

	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/core/rank"
	"marquee/internal/core/tally"
)

// nominee relevance gate, cheap substring checks before any matching
var (
	nomineeHints = []string{"best ", " nominee", " nomin", "should win", "should have won", "wins", "won"}
	nomineeDrop  = []string{"dress", "red carpet", "monologue"}
)

// Nominees returns up to NomineeTopK candidates per award, most cited
// first. The blended category score is softer than the winner matcher so
// speculation and complaints still attach to the right award
func (s *Service) Nominees(records []feed.Record) map[string][]string {
	set := tally.NewSet()

	for _, r := range records {
		clean := normalize.Clean(r.Text)
		folded := normalize.Fold(clean)

		if !containsAny(folded, nomineeHints) || containsAny(folded, nomineeDrop) {
			continue
		}

		bestAward, bestScore := "", 0.0
		for _, award := range s.awards {
			if sc := s.matcher.Score(folded, award); sc > bestScore {
				bestScore, bestAward = sc, award
			}
		}
		if bestScore < s.cfg.NomineeFloor {
			continue
		}

		set.Accumulate(bestAward, s.candidates(clean, bestAward), 1)
	}

	out := make(map[string][]string, len(s.awards))
	for _, award := range s.awards {
		out[award] = rank.TopK(set[award], s.cfg.NomineeTopK)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
