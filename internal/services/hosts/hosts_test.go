package hosts

import (
	"testing"
	"time"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
)

var base = time.Date(2026, 1, 11, 1, 0, 0, 0, time.UTC)

func rec(min int, text string) feed.Record {
	return feed.Record{Timestamp: base.Add(time.Duration(min) * time.Minute), Text: text}
}

func fixedNow() time.Time { return base }

func newService(t *testing.T) *Service {
	t.Helper()
	return New(cues.MustLoad(), extract.New(), nil, DefaultConfig())
}

func TestRunPicksDominantPair(t *testing.T) {
	t.Parallel()

	var records []feed.Record
	for i := 0; i < 6; i++ {
		records = append(records, rec(i, "Tina Fey and Amy Poehler are hosting tonight"))
	}
	records = append(records, rec(2, "please welcome your hosts Tina Fey and Amy Poehler"))
	records = append(records, rec(3, "Ricky Gervais is the host apparently"))

	res := newService(t).Run(records, fixedNow)
	if len(res.Hosts) != 2 {
		t.Fatalf("hosts = %v, want a pair", res.Hosts)
	}
	got := map[string]bool{res.Hosts[0]: true, res.Hosts[1]: true}
	if !got["Tina Fey"] || !got["Amy Poehler"] {
		t.Fatalf("hosts = %v, want Tina Fey and Amy Poehler", res.Hosts)
	}
}

func TestRunSoloHostWhenDominant(t *testing.T) {
	t.Parallel()

	var records []feed.Record
	for i := 0; i < 10; i++ {
		records = append(records, rec(i%5, "Ricky Gervais opening monologue was brutal, great host"))
	}
	records = append(records, rec(1, "Steve Carell hosting next year maybe"))

	res := newService(t).Run(records, fixedNow)
	if len(res.Hosts) != 1 || res.Hosts[0] != "Ricky Gervais" {
		t.Fatalf("hosts = %v, want solo Ricky Gervais", res.Hosts)
	}
}

func TestRunDropsRetweets(t *testing.T) {
	t.Parallel()

	r := rec(0, "Tina Fey is hosting")
	r.IsRetweet = true
	res := newService(t).Run([]feed.Record{r}, fixedNow)
	if len(res.Hosts) != 0 {
		t.Fatalf("hosts = %v, want none from retweets alone", res.Hosts)
	}
}

func TestMonologueMentionOutweighsPlainMention(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, "loved the opening monologue from Tina Fey tonight's host"),
		rec(0, "Amy Poehler host"),
	}
	res := newService(t).Run(records, fixedNow)
	if len(res.Scores) == 0 || res.Scores[0].Name != "Tina Fey" {
		t.Fatalf("scores = %v, want Tina Fey on top", res.Scores)
	}
}

func TestPredicateTagTrigger(t *testing.T) {
	t.Parallel()

	s := newService(t)
	r := feed.Record{Timestamp: base, Text: "so excited", Tags: []string{"GoldenGlobesHost"}}
	if !s.Predicate(r) {
		t.Fatalf("tag containing host should satisfy the predicate")
	}
	if s.Predicate(feed.Record{Timestamp: base, Text: "so excited"}) {
		t.Fatalf("plain excitement should not satisfy the predicate")
	}
}
