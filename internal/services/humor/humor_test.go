package humor

import (
	"testing"
	"time"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
)

var ceremony = time.Date(2026, 1, 11, 1, 0, 0, 0, time.UTC)

func rec(min int, text string) feed.Record {
	return feed.Record{Timestamp: ceremony.Add(time.Duration(min) * time.Minute), Text: text}
}

func newService(t *testing.T) *Service {
	t.Helper()
	return New(cues.MustLoad(), extract.New(), nil, nil, DefaultConfig())
}

func TestRunRanksFunniestPerson(t *testing.T) {
	t.Parallel()

	var records []feed.Record
	for i := 0; i < 3; i++ {
		records = append(records, rec(10+i, "Tina Fey is hilarious tonight"))
	}
	records = append(records, rec(12, "Amy Poehler made a funny joke"))

	res := newService(t).Run(records, ceremony)
	if len(res.People) == 0 || res.People[0] != "Tina Fey" {
		t.Fatalf("people = %v, want Tina Fey first", res.People)
	}
}

func TestRoastsStillCount(t *testing.T) {
	t.Parallel()

	// strongly negative reaction to a joke that landed
	records := []feed.Record{
		rec(5, "Ricky Gervais joke about the studio was absolutely horrible lmao"),
	}
	res := newService(t).Run(records, ceremony)
	if len(res.People) == 0 || res.People[0] != "Ricky Gervais" {
		t.Fatalf("people = %v, want Ricky Gervais from a roast reaction", res.People)
	}
}

func TestNeutralNeedsJokeToken(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(5, "Steve Carell laughing on camera"),
	}
	res := newService(t).Run(records, ceremony)
	if len(res.People) != 0 {
		t.Fatalf("people = %v, want none from a neutral non-joke record", res.People)
	}
}

func TestDuplicateTextCountsOnce(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(5, "Tina Fey joke was so funny"),
		rec(6, "Tina Fey joke was so funny"),
		rec(7, "Amy Poehler is hilarious"),
		rec(8, "Amy Poehler is so hilarious honestly"),
	}
	res := newService(t).Run(records, ceremony)
	if len(res.People) == 0 || res.People[0] != "Amy Poehler" {
		t.Fatalf("people = %v, want Amy Poehler ahead after dedup", res.People)
	}
}

func TestJokeThemes(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(5, "cannot believe they joked about the hollywood foreign press, hilarious"),
		rec(6, "that hollywood foreign press joke was so funny"),
	}
	res := newService(t).Run(records, ceremony)
	if len(res.Themes) == 0 {
		t.Fatalf("no themes extracted")
	}
	if res.Themes[0] != "hollywood foreign press" {
		t.Fatalf("themes = %v, want hollywood foreign press first", res.Themes)
	}
}

func TestRecordsOutsideWindowIgnored(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(200, "Tina Fey is hilarious"),
		rec(-30, "Amy Poehler so funny already"),
	}
	res := newService(t).Run(records, ceremony)
	if len(res.People) != 0 {
		t.Fatalf("people = %v, want none outside the humor window", res.People)
	}
}
