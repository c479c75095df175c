package rank

import (
	"reflect"
	"testing"

	"marquee/internal/core/tally"
)

func TestSortedTotalOrder(t *testing.T) {
	t.Parallel()

	tl := tally.Tally{
		"Charlie": 5,
		"Al":      5, // same score, shorter wins
		"Bo":      5, // same score and length, lexicographic
		"Dana":    9,
	}
	got := Sorted(tl)
	want := []Scored{
		{Name: "Dana", Score: 9},
		{Name: "Al", Score: 5},
		{Name: "Bo", Score: 5},
		{Name: "Charlie", Score: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted = %v, want %v", got, want)
	}
}

func TestSingle(t *testing.T) {
	t.Parallel()

	name, ok := Single(tally.Tally{"Jane Doe": 2, "Bob Jones": 1})
	if !ok || name != "Jane Doe" {
		t.Fatalf("Single = %q ok=%v", name, ok)
	}

	if _, ok := Single(tally.Tally{}); ok {
		t.Fatalf("empty tally must report no result")
	}
}

func TestTopK(t *testing.T) {
	t.Parallel()

	tl := tally.Tally{"a": 1, "b": 3, "c": 2}
	if got := TopK(tl, 2); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("TopK = %v", got)
	}
	if got := TopK(tl, 10); len(got) != 3 {
		t.Fatalf("TopK overflow = %v", got)
	}
}

func TestDominanceGate(t *testing.T) {
	t.Parallel()

	solo := DominanceGate(tally.Tally{"Alice Smith": 10, "Bob Jones": 4}, DefaultDominanceRatio)
	if !reflect.DeepEqual(solo, []string{"Alice Smith"}) {
		t.Fatalf("10 vs 4 should gate to solo, got %v", solo)
	}

	pair := DominanceGate(tally.Tally{"Alice Smith": 10, "Bob Jones": 6}, DefaultDominanceRatio)
	if !reflect.DeepEqual(pair, []string{"Alice Smith", "Bob Jones"}) {
		t.Fatalf("10 vs 6 should keep both, got %v", pair)
	}

	zero := DominanceGate(tally.Tally{"Alice Smith": 3, "Bob Jones": 0}, DefaultDominanceRatio)
	if !reflect.DeepEqual(zero, []string{"Alice Smith"}) {
		t.Fatalf("zero runner-up should gate to solo, got %v", zero)
	}

	if got := DominanceGate(tally.Tally{}, DefaultDominanceRatio); got != nil {
		t.Fatalf("empty tally = %v, want nil", got)
	}
}
