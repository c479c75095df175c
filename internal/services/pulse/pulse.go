// Package pulse rolls the whole stream up into one mood verdict
package pulse

import (
	"math"

	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/core/sentiment"
)

// verdict ladder indexed by rounded positive share
var labels = []string{
	"dumpster fire",
	"terrible",
	"bad",
	"not great",
	"fine",
	"pretty decent",
	"good",
	"really good",
	"excellent",
	"fantastic",
	"iconic",
}

// Config for the mood rollup
type Config struct {
	PosCutoff float64 `validate:"gt=0,lte=1"`
	NegCutoff float64 `validate:"lt=0,gte=-1"`
	VeryPos   float64 `validate:"gt=0,lte=1"`
	VeryNeg   float64 `validate:"lt=0,gte=-1"`
}

// DefaultConfig returns the tuned rollup cutoffs
func DefaultConfig() Config {
	return Config{PosCutoff: 0.05, NegCutoff: -0.05, VeryPos: 0.5, VeryNeg: -0.5}
}

// Summary is the stream-wide sentiment rollup
type Summary struct {
	Total       int     `json:"total_scored"`
	Positive    int     `json:"positive_count"`
	Neutral     int     `json:"neutral_count"`
	Negative    int     `json:"negative_count"`
	VeryPos     int     `json:"very_positive_count"`
	VeryNeg     int     `json:"very_negative_count"`
	AvgPositive float64 `json:"avg_positive"`
	AvgNegative float64 `json:"avg_negative"`
	AvgOverall  float64 `json:"avg_overall"`
	PosShare    float64 `json:"pos_share"`
	NegShare    float64 `json:"neg_share"`
	NeuShare    float64 `json:"neu_share"`
	Verdict     string  `json:"verdict"`
}

// Service scores every record and buckets the stream's mood
type Service struct {
	scorer *sentiment.Scorer
	cfg    Config
}

// New constructs the rollup. A nil scorer gets the embedded lexicon
func New(scorer *sentiment.Scorer, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.PosCutoff == 0 {
		cfg.PosCutoff = def.PosCutoff
	}
	if cfg.NegCutoff == 0 {
		cfg.NegCutoff = def.NegCutoff
	}
	if cfg.VeryPos == 0 {
		cfg.VeryPos = def.VeryPos
	}
	if cfg.VeryNeg == 0 {
		cfg.VeryNeg = def.VeryNeg
	}
	if scorer == nil {
		scorer = sentiment.Default()
	}
	return &Service{scorer: scorer, cfg: cfg}
}

// Run scores every record once. An empty stream lands in the middle of
// the ladder rather than at either extreme
func (s *Service) Run(records []feed.Record) Summary {
	var sum Summary
	var posSum, negSum, allSum float64

	for _, r := range records {
		folded := normalize.Fold(normalize.Clean(r.Text))
		if folded == "" {
			continue
		}
		score := s.scorer.Score(folded)
		allSum += score
		sum.Total++

		switch {
		case score > s.cfg.PosCutoff:
			sum.Positive++
			posSum += score
			if score >= s.cfg.VeryPos {
				sum.VeryPos++
			}
		case score < s.cfg.NegCutoff:
			sum.Negative++
			negSum += score
			if score <= s.cfg.VeryNeg {
				sum.VeryNeg++
			}
		default:
			sum.Neutral++
		}
	}

	bucket := 5
	if sum.Total > 0 {
		sum.PosShare = float64(sum.Positive) / float64(sum.Total)
		sum.NegShare = float64(sum.Negative) / float64(sum.Total)
		sum.NeuShare = float64(sum.Neutral) / float64(sum.Total)
		sum.AvgOverall = allSum / float64(sum.Total)
		bucket = int(math.Round(sum.PosShare * 10))
		if bucket < 0 {
			bucket = 0
		}
		if bucket > 10 {
			bucket = 10
		}
	}
	if sum.Positive > 0 {
		sum.AvgPositive = posSum / float64(sum.Positive)
	}
	if sum.Negative > 0 {
		sum.AvgNegative = negSum / float64(sum.Negative)
	}
	sum.Verdict = labels[bucket]
	return sum
}
