package ceremony

import (
	"regexp"
	"sort"
	"strings"

	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
)

var presenterKeywords = []string{"present", "announce", "introduc", "read the nominees", "give"}

// presenter patterns run over cleaned case-preserved text so the name
// capture keeps its capitalization for validation
var presenterRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\w' ,&]+?)\s+(?:is|are)\s+(?:presenting|introducing|announcing)\s+(?:the\s+)?(best\s+[^.,;:!?]+)`),
	regexp.MustCompile(`(?i)([\w' ,&]+?)\s+(?:present|announce|introduc|hand|give)\w*\s+(?:the\s+)?(?:award\s+)?(?:for\s+)?(best\s+[^.,;:!?]+)`),
	regexp.MustCompile(`(?i)([\w' ,&]+?)\s+(?:present|announce|introduc|hand)\w*\s+(?:the\s+)?(cecil b\.? demille(?:\s+award)?)`),
}

var nameSplitRe = regexp.MustCompile(`(?i)\band\b|,|&`)

// Presenters returns the validated presenter names per award, sorted.
// Partial names merge into the longest observed form, so "Poehler" and
// "Amy Poehler" come back as one entry
func (s *Service) Presenters(records []feed.Record) map[string][]string {
	byAward := make(map[string]map[string]struct{})

	for _, r := range records {
		clean := normalize.Clean(r.Text)
		folded := normalize.Fold(clean)
		if !containsAny(folded, presenterKeywords) {
			continue
		}

		for _, re := range presenterRes {
			m := re.FindStringSubmatch(clean)
			if m == nil {
				continue
			}
			names := s.presenterNames(m[1])
			if len(names) == 0 {
				continue
			}
			award, ok := s.matcher.Match(normalize.Fold(m[2]))
			if !ok {
				continue
			}
			if byAward[award] == nil {
				byAward[award] = make(map[string]struct{})
			}
			for _, n := range names {
				byAward[award][n] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(byAward))
	for award, names := range byAward {
		out[award] = mergePartialNames(names)
	}
	return out
}

func (s *Service) presenterNames(raw string) []string {
	var out []string
	for _, part := range nameSplitRe.Split(raw, -1) {
		name := extract.CleanName(strings.TrimSpace(part))
		if name == "" || s.pack.DeniedPerson(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// mergePartialNames folds names contained in a longer name into the
// longer one and returns a sorted list
func mergePartialNames(names map[string]struct{}) []string {
	list := make([]string, 0, len(names))
	for n := range names {
		list = append(list, n)
	}

	kept := make([]string, 0, len(list))
	for _, n := range list {
		partial := false
		for _, other := range list {
			if n == other {
				continue
			}
			if len(other) > len(n) && strings.Contains(strings.ToLower(other), strings.ToLower(n)) {
				partial = true
				break
			}
		}
		if !partial {
			kept = append(kept, n)
		}
	}

	sort.Strings(kept)
	return kept
}
