// Package sentiment scores text polarity in [-1, 1] from an embedded
// weighted lexicon with negation flips and intensifiers. Pure function of
// its input, safe to memoize, never fails
package sentiment

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
)

//go:embed lexicon.json
var embedded []byte

type rawLexicon struct {
	Version      int                `json:"version"`
	Positive     map[string]float64 `json:"positive"`
	Negative     map[string]float64 `json:"negative"`
	Negators     []string           `json:"negators"`
	Intensifiers map[string]float64 `json:"intensifiers"`
}

// Scorer scores text against the compiled lexicon
type Scorer struct {
	valence      map[string]float64
	negators     map[string]struct{}
	intensifiers map[string]float64
}

var (
	defaultOnce   sync.Once
	defaultScorer *Scorer
	defaultErr    error
)

// Load compiles the embedded lexicon
func Load() (*Scorer, error) {
	var raw rawLexicon
	if err := json.Unmarshal(embedded, &raw); err != nil {
		return nil, fmt.Errorf("sentiment: parse lexicon.json: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("sentiment: unsupported lexicon version %d (want 1)", raw.Version)
	}

	s := &Scorer{
		valence:      make(map[string]float64, len(raw.Positive)+len(raw.Negative)),
		negators:     make(map[string]struct{}, len(raw.Negators)),
		intensifiers: raw.Intensifiers,
	}
	for w, v := range raw.Positive {
		s.valence[w] = v
	}
	for w, v := range raw.Negative {
		s.valence[w] = v
	}
	for _, n := range raw.Negators {
		s.negators[strings.ToLower(n)] = struct{}{}
	}
	return s, nil
}

// Default returns the process-wide scorer built from the embedded lexicon
func Default() *Scorer {
	defaultOnce.Do(func() {
		defaultScorer, defaultErr = Load()
		if defaultErr != nil {
			// embedded data is compiled in; failing to parse it is a build defect
			panic(defaultErr)
		}
	})
	return defaultScorer
}

// Score returns the polarity of text in [-1, 1].
// A negator within the two tokens before a lexicon word flips its sign,
// an intensifier directly before it scales the magnitude
func (s *Scorer) Score(text string) float64 {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return 0
	}

	sum := 0.0
	hits := 0
	for i, f := range fields {
		f = strings.Trim(f, ".,!?\"'()")
		v, ok := s.valence[f]
		if !ok {
			continue
		}
		hits++

		mult := 1.0
		if i > 0 {
			prev := strings.Trim(fields[i-1], ".,!?\"'()")
			if m, ok := s.intensifiers[prev]; ok {
				mult = m
			}
		}
		if s.negatedAt(fields, i) {
			v = -v
		}
		sum += v * mult
	}

	if hits == 0 {
		return 0
	}

	// dampen by hit count so one strong word doesn't saturate,
	// then clamp to the contract range
	score := sum / math.Sqrt(float64(hits))
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

// negatedAt reports whether a negator sits within two tokens before index i
func (s *Scorer) negatedAt(fields []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		tok := strings.Trim(fields[j], ".,!?\"'()")
		if _, ok := s.negators[tok]; ok {
			return true
		}
	}
	return false
}
