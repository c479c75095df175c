package ceremony

import (
	"strings"

	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/core/rank"
	"marquee/internal/core/tally"
)

// strongWin phrases gate winner extraction. A bare category mention is
// never winner evidence
var strongWin = []string{
	" award goes to ",
	" goes to ",
	" wins ",
	" won ",
	" takes home ",
	" is awarded to ",
}

// Winners returns the single best-supported winner per award.
// Awards with no surviving evidence are absent from the map
func (s *Service) Winners(records []feed.Record) map[string]string {
	set := tally.NewSet()

	for _, r := range records {
		clean := normalize.Clean(r.Text)
		folded := normalize.Fold(clean)
		padded := " " + folded + " "

		// every strongWin phrase starts with a space, so the match index in
		// padded equals the folded offset of the cue word's first letter
		cueIdx := -1
		for _, phrase := range strongWin {
			if i := strings.Index(padded, phrase); i >= 0 {
				cueIdx = i
				break
			}
		}
		if cueIdx < 0 {
			continue
		}
		if s.pack.Negated(folded) || s.pack.Future(folded) {
			continue
		}

		award, ok := s.matcher.Match(folded)
		if !ok {
			continue
		}

		base := tally.Discount(winWeight(folded), r.IsRetweet)
		seen := make(map[string]struct{})
		for _, cand := range s.candidates(clean, award) {
			key := strings.ToLower(cand)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			dist := -1
			if pos := strings.Index(folded, normalize.Fold(cand)); pos >= 0 {
				dist = abs(pos - cueIdx)
			}
			w := tally.DistanceBoost(base, dist, s.cfg.NearDist, s.cfg.FarDist)
			set.Accumulate(award, []string{cand}, w)
		}
	}

	out := make(map[string]string, len(set))
	for award, t := range set {
		if name, ok := rank.Single(t); ok {
			out[award] = name
		}
	}
	return out
}

// winWeight grades how assertive the claim language is
func winWeight(folded string) float64 {
	switch {
	case strings.Contains(folded, "wins"),
		strings.Contains(folded, "winner"),
		strings.Contains(folded, "goes to"),
		strings.Contains(folded, "takes home"):
		return 2.0
	case strings.Contains(folded, "won"),
		strings.Contains(folded, "winning"),
		strings.Contains(folded, "accepts"):
		return 1.5
	case strings.Contains(folded, "congrats"):
		return 1.25
	}
	return 1.0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
