package window

import (
	"strings"
	"testing"
	"time"

	"marquee/internal/core/feed"
)

func at(h, m int) time.Time {
	return time.Date(2013, 1, 14, h, m, 0, 0, time.UTC)
}

func rec(t time.Time, text string) feed.Record {
	return feed.Record{Timestamp: t, Text: text}
}

func containsHost(r feed.Record) bool {
	return strings.Contains(strings.ToLower(r.Text), "host")
}

func TestDetectPicksDensestWindow(t *testing.T) {
	t.Parallel()

	recs := []feed.Record{
		rec(at(19, 0), "host mention"),
		rec(at(20, 0), "host mention"),
		rec(at(20, 1), "host mention"),
		rec(at(20, 2), "host mention"),
		rec(at(21, 30), "host mention"),
	}

	w := Detect(recs, containsHost, 10*time.Minute, nil)
	if !w.Start.Equal(at(20, 0)) {
		t.Fatalf("start = %v, want %v", w.Start, at(20, 0))
	}
	if !w.End.Equal(at(20, 10)) {
		t.Fatalf("end = %v, want %v", w.End, at(20, 10))
	}
}

func TestDetectDeterministic(t *testing.T) {
	t.Parallel()

	recs := []feed.Record{
		rec(at(20, 0), "host"),
		rec(at(20, 30), "host"),
		rec(at(21, 0), "host"),
	}

	first := Detect(recs, containsHost, 5*time.Minute, nil)
	for i := 0; i < 50; i++ {
		if got := Detect(recs, containsHost, 5*time.Minute, nil); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestDetectEarliestStartWinsTies(t *testing.T) {
	t.Parallel()

	// two equally dense windows, one at 20:00 and one at 21:00
	recs := []feed.Record{
		rec(at(20, 0), "host"),
		rec(at(20, 1), "host"),
		rec(at(21, 0), "host"),
		rec(at(21, 1), "host"),
	}

	w := Detect(recs, containsHost, 5*time.Minute, nil)
	if !w.Start.Equal(at(20, 0)) {
		t.Fatalf("tie should break to earliest start, got %v", w.Start)
	}
}

func TestDetectFallbackToMinTimestamp(t *testing.T) {
	t.Parallel()

	recs := []feed.Record{
		rec(at(20, 5), "nothing relevant"),
		rec(at(19, 30), "also nothing"),
	}

	w := Detect(recs, containsHost, 40*time.Minute, nil)
	if !w.Start.Equal(at(19, 30)) {
		t.Fatalf("fallback start = %v, want min timestamp %v", w.Start, at(19, 30))
	}
	if w.Duration() != 40*time.Minute {
		t.Fatalf("fallback duration = %v", w.Duration())
	}
}

func TestDetectEmptySetUsesNow(t *testing.T) {
	t.Parallel()

	fixed := at(22, 13)
	w := Detect(nil, containsHost, 15*time.Minute, func() time.Time { return fixed })
	if !w.Start.Equal(at(22, 13)) {
		t.Fatalf("empty-set start = %v, want %v", w.Start, fixed)
	}
	if w.Duration() != 15*time.Minute {
		t.Fatalf("duration = %v", w.Duration())
	}
}

func TestDetectBeforeConstrainsToRange(t *testing.T) {
	t.Parallel()

	ceremony := at(20, 0)
	recs := []feed.Record{
		// dense cluster after the deadline must be ignored
		rec(at(20, 10), "host"),
		rec(at(20, 11), "host"),
		rec(at(20, 12), "host"),
		// in-range signal
		rec(at(18, 50), "host"),
		rec(at(18, 51), "host"),
	}

	w := DetectBefore(recs, containsHost, 60*time.Minute, ceremony, 120*time.Minute, 75*time.Minute)
	if !w.Start.Equal(at(18, 50)) {
		t.Fatalf("start = %v, want %v", w.Start, at(18, 50))
	}
}

func TestDetectBeforeFallback(t *testing.T) {
	t.Parallel()

	ceremony := at(20, 0)
	w := DetectBefore(nil, containsHost, 60*time.Minute, ceremony, 120*time.Minute, 75*time.Minute)
	if !w.Start.Equal(at(18, 45)) {
		t.Fatalf("fallback start = %v, want %v", w.Start, at(18, 45))
	}
	if !w.End.Equal(ceremony) {
		t.Fatalf("fallback end = %v, want the %v deadline", w.End, ceremony)
	}
}

func TestFilterHalfOpenInterval(t *testing.T) {
	t.Parallel()

	w := Span{Start: at(20, 0), End: at(20, 5)}
	recs := []feed.Record{
		rec(at(19, 59), "host out"),
		rec(at(20, 0), "host in"),
		rec(at(20, 4), "host in"),
		rec(at(20, 5), "host out, end exclusive"),
	}

	got := Filter(recs, w, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 in-window records, got %d", len(got))
	}
}
