package pulse

import (
	"testing"
	"time"

	"marquee/internal/core/feed"
)

func recs(texts ...string) []feed.Record {
	base := time.Date(2026, 1, 11, 1, 0, 0, 0, time.UTC)
	out := make([]feed.Record, 0, len(texts))
	for i, txt := range texts {
		out = append(out, feed.Record{Timestamp: base.Add(time.Duration(i) * time.Minute), Text: txt})
	}
	return out
}

func TestRunCountsBuckets(t *testing.T) {
	t.Parallel()

	sum := New(nil, DefaultConfig()).Run(recs(
		"what a wonderful amazing show",
		"this is terrible and boring",
		"the broadcast continues",
	))
	if sum.Total != 3 || sum.Positive != 1 || sum.Negative != 1 || sum.Neutral != 1 {
		t.Fatalf("counts = %+v, want 1/1/1 over 3", sum)
	}
	if sum.AvgPositive <= 0 || sum.AvgNegative >= 0 {
		t.Fatalf("averages have wrong sign: %+v", sum)
	}
}

func TestVeryStrongReactions(t *testing.T) {
	t.Parallel()

	sum := New(nil, DefaultConfig()).Run(recs(
		"absolutely incredible fantastic amazing",
		"nice",
	))
	if sum.VeryPos != 1 {
		t.Fatalf("very positive = %d, want 1 (%+v)", sum.VeryPos, sum)
	}
}

func TestVerdictLadder(t *testing.T) {
	t.Parallel()

	s := New(nil, DefaultConfig())

	all := s.Run(recs("amazing", "wonderful", "fantastic", "gorgeous", "incredible"))
	if all.Verdict != "iconic" {
		t.Fatalf("verdict = %q, want iconic for an all-positive stream", all.Verdict)
	}

	none := s.Run(recs("terrible", "awful", "horrible"))
	if none.Verdict != "dumpster fire" {
		t.Fatalf("verdict = %q, want dumpster fire for an all-negative stream", none.Verdict)
	}

	half := s.Run(recs("amazing", "wonderful", "terrible", "awful"))
	if half.Verdict != "pretty decent" {
		t.Fatalf("verdict = %q, want the middle label at an even split", half.Verdict)
	}
}

func TestEmptyStreamLandsMidLadder(t *testing.T) {
	t.Parallel()

	sum := New(nil, DefaultConfig()).Run(nil)
	if sum.Verdict != "pretty decent" {
		t.Fatalf("verdict = %q, want the middle label for no data", sum.Verdict)
	}
	if sum.Total != 0 {
		t.Fatalf("total = %d, want 0", sum.Total)
	}
}
