// Package rank converts a finished tally into the category's output shape.
// All orderings are explicit total orders so results are reproducible
package rank

import (
	"sort"

	"marquee/internal/core/tally"
)

// Scored pairs a candidate with its final score
type Scored struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Sorted returns the tally in descending score order.
// Ties break by shorter string, then lexicographic
func Sorted(t tally.Tally) []Scored {
	out := make([]Scored, 0, len(t))
	for name, score := range t {
		out = append(out, Scored{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if len(out[i].Name) != len(out[j].Name) {
			return len(out[i].Name) < len(out[j].Name)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Single returns the highest scored candidate.
// ok is false for an empty tally, absence of evidence is a valid outcome
func Single(t tally.Tally) (string, bool) {
	s := Sorted(t)
	if len(s) == 0 {
		return "", false
	}
	return s[0].Name, true
}

// TopK returns up to k candidates in descending score order
func TopK(t tally.Tally, k int) []string {
	s := Sorted(t)
	if k > len(s) {
		k = len(s)
	}
	out := make([]string, 0, k)
	for _, sc := range s[:k] {
		out = append(out, sc.Name)
	}
	return out
}

// DefaultDominanceRatio is the leader-vs-runner-up margin for a solo result
const DefaultDominanceRatio = 2.0

// DominanceGate returns the top candidate alone when the runner-up scores
// zero or the leader scores at least ratio times the runner-up, otherwise
// both. Encodes the solo-vs-pair bimodality without a classifier
func DominanceGate(t tally.Tally, ratio float64) []string {
	s := Sorted(t)
	switch len(s) {
	case 0:
		return nil
	case 1:
		return []string{s[0].Name}
	}
	lead, second := s[0], s[1]
	if second.Score == 0 || lead.Score >= ratio*second.Score {
		return []string{lead.Name}
	}
	return []string{lead.Name, second.Name}
}
