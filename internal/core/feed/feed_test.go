package feed

import (
	"strings"
	"testing"
	"time"
)

func TestReadSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		`{"timestamp":"2013-01-14T01:00:00Z","text":"hello there"}`,
		`not json at all`,
		`{"timestamp":"garbage","text":"bad clock"}`,
		`{"timestamp":"2013-01-14T01:01:00Z","text":""}`,
		`{"timestamp":"2013-01-14T01:02:00Z","text":"second","is_retweet":true}`,
	}, "\n")

	recs, stats, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if stats.Total != 5 || stats.Malformed != 3 || stats.Loaded != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if !recs[1].IsRetweet {
		t.Fatalf("retweet flag lost: %+v", recs[1])
	}
}

func TestReadSortsChronologically(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		`{"timestamp":"2013-01-14T01:05:00Z","text":"later"}`,
		`{"timestamp":"2013-01-14T01:00:00Z","text":"earlier"}`,
	}, "\n")

	recs, _, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if recs[0].Text != "earlier" || recs[1].Text != "later" {
		t.Fatalf("not sorted: %v", recs)
	}
}

func TestMinuteBucket(t *testing.T) {
	t.Parallel()

	ts := time.Date(2013, 1, 14, 1, 2, 45, 0, time.UTC)
	r := Record{Timestamp: ts}
	want := time.Date(2013, 1, 14, 1, 2, 0, 0, time.UTC)
	if got := r.Minute(); !got.Equal(want) {
		t.Fatalf("Minute = %v, want %v", got, want)
	}
}

func TestHasTag(t *testing.T) {
	t.Parallel()

	r := Record{Tags: []string{"GoldenGlobes", "awards"}}
	if !r.HasTag("goldenglobes") {
		t.Fatalf("expected case-insensitive tag match")
	}
	if r.HasTag("oscars") {
		t.Fatalf("unexpected tag match")
	}
}
