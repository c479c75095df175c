package match

import (
	"testing"

	"marquee/internal/core/cues"
)

var canon = []string{
	"best motion picture - drama",
	"best motion picture - comedy or musical",
	"best performance by an actor in a motion picture - drama",
	"best performance by an actress in a motion picture - drama",
	"best director - motion picture",
	"best television series - drama",
}

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	return New(canon, cues.MustLoad(), DefaultThresholds())
}

func TestMatchHighOverlap(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	got, ok := m.Match("argo wins best motion picture drama tonight")
	if !ok || got != "best motion picture - drama" {
		t.Fatalf("Match = %q ok=%v", got, ok)
	}
}

func TestMatchActorVsActress(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	got, ok := m.Match("best actress in a motion picture drama goes to jessica chastain")
	if !ok || got != "best performance by an actress in a motion picture - drama" {
		t.Fatalf("Match = %q ok=%v", got, ok)
	}
}

func TestMatchNoMeaningfulTokens(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	if got, ok := m.Match("what a fun party with friends"); ok {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestMatchFuzzyAnchorFallback(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	// lossy phrasing that still starts with the anchor keyword
	got, ok := m.Match("so happy about best tv series drama homeland")
	if !ok || got != "best television series - drama" {
		t.Fatalf("Match = %q ok=%v", got, ok)
	}
}

func TestMatchDeterministic(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	in := "best director motion picture goes to ben affleck"
	first, ok1 := m.Match(in)
	for i := 0; i < 20; i++ {
		got, ok := m.Match(in)
		if got != first || ok != ok1 {
			t.Fatalf("unstable match: %q vs %q", got, first)
		}
	}
}

func TestScoreBlended(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	close := m.Score("best motion picture drama", "best motion picture - drama")
	far := m.Score("red carpet looks", "best motion picture - drama")
	if close <= far {
		t.Fatalf("blended score ordering wrong: close=%v far=%v", close, far)
	}
	if close < 0.35 {
		t.Fatalf("close score below floor: %v", close)
	}
}

func TestIsPerson(t *testing.T) {
	t.Parallel()

	if !IsPerson("best performance by an actor in a motion picture - drama") {
		t.Fatalf("actor category should be a person")
	}
	if IsPerson("best motion picture - drama") {
		t.Fatalf("picture category should be a title")
	}
}
