// Package tally accumulates weighted candidate scores with per-record dedup.
// One record may contribute to a given candidate at most once so a verbose
// post never dominates a category
package tally

// Tally maps candidate string to accumulated score within one category
type Tally map[string]float64

// New returns an empty tally
func New() Tally { return make(Tally) }

// Add applies weight to every unique candidate in the slice exactly once.
// One call corresponds to one record
func (t Tally) Add(candidates []string, weight float64) {
	if weight == 0 || len(candidates) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		t[c] += weight
	}
}

// Merge folds other into t. Accumulation is commutative and associative,
// so workers can own private tallies merged in a single combine step
func (t Tally) Merge(other Tally) {
	for c, w := range other {
		t[c] += w
	}
}

// Set maps category name to its tally
type Set map[string]Tally

// NewSet returns an empty tally set
func NewSet() Set { return make(Set) }

// Accumulate adds weight into the category's tally, creating it on first use
func (s Set) Accumulate(category string, candidates []string, weight float64) {
	t, ok := s[category]
	if !ok {
		t = New()
		s[category] = t
	}
	t.Add(candidates, weight)
}

// Merge folds every category of other into s
func (s Set) Merge(other Set) {
	for cat, t := range other {
		mine, ok := s[cat]
		if !ok {
			mine = New()
			s[cat] = mine
		}
		mine.Merge(t)
	}
}

// Weight helpers shared by the extractors

// RetweetFactor is the trust discount applied to retweeted posts
const RetweetFactor = 0.5

// Discount halves the weight for retweets; originals pass through
func Discount(w float64, isRetweet bool) float64 {
	if isRetweet {
		return w * RetweetFactor
	}
	return w
}

// DistanceBoost rewards textual closeness between two cue positions.
// The tiers stack: under farDist characters adds 1, under nearDist
// adds 2 more, so a tight pairing earns 3
func DistanceBoost(w float64, dist, nearDist, farDist int) float64 {
	if dist < 0 {
		return w
	}
	if dist < farDist {
		w++
	}
	if dist < nearDist {
		w += 2
	}
	return w
}
