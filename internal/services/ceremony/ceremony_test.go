package ceremony

import (
	"testing"
	"time"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
)

var testAwards = []string{
	"best performance by an actor in a motion picture - drama",
	"best performance by an actress in a supporting role in a motion picture",
	"best motion picture - drama",
	"best television series - drama",
}

var base = time.Date(2026, 1, 11, 1, 30, 0, 0, time.UTC)

func rec(min int, text string) feed.Record {
	return feed.Record{Timestamp: base.Add(time.Duration(min) * time.Minute), Text: text}
}

func newService(t *testing.T) *Service {
	t.Helper()
	return New(cues.MustLoad(), extract.New(), nil, testAwards, DefaultConfig())
}

func TestWinnersPersonAward(t *testing.T) {
	t.Parallel()

	var records []feed.Record
	for i := 0; i < 3; i++ {
		records = append(records, rec(i, "Hugh Jackman wins best actor in a motion picture drama"))
	}
	records = append(records, rec(4, "Bradley Cooper wins best actor in a motion picture drama"))

	got := newService(t).Winners(records)
	want := "best performance by an actor in a motion picture - drama"
	if got[want] != "Hugh Jackman" {
		t.Fatalf("winner = %q, want Hugh Jackman (full map %v)", got[want], got)
	}
}

func TestWinnersTitleAward(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, `"Homeland" wins best television series drama`),
		rec(1, `so glad "Homeland" wins best television series drama`),
	}
	got := newService(t).Winners(records)
	if got["best television series - drama"] != "Homeland" {
		t.Fatalf("winner = %v, want Homeland for the series award", got)
	}
}

func TestWinnersNegationGuard(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, "Hugh Jackman should have won best actor in a motion picture drama"),
	}
	got := newService(t).Winners(records)
	if len(got) != 0 {
		t.Fatalf("winners = %v, want none from a negated claim", got)
	}
}

func TestWinnersFutureGuard(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, "really hope Hugh Jackman wins best actor in a motion picture drama"),
	}
	got := newService(t).Winners(records)
	if len(got) != 0 {
		t.Fatalf("winners = %v, want none from a prediction", got)
	}
}

func TestWinnersRetweetDiscount(t *testing.T) {
	t.Parallel()

	rt := rec(0, "Bradley Cooper wins best actor in a motion picture drama")
	rt.IsRetweet = true
	records := []feed.Record{
		rt,
		rec(1, "Hugh Jackman wins best actor in a motion picture drama"),
	}
	got := newService(t).Winners(records)
	want := "best performance by an actor in a motion picture - drama"
	if got[want] != "Hugh Jackman" {
		t.Fatalf("winner = %q, retweet should carry half weight", got[want])
	}
}

func TestWinnersNeedStrongCue(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, "Hugh Jackman best actor in a motion picture drama maybe"),
	}
	got := newService(t).Winners(records)
	if len(got) != 0 {
		t.Fatalf("winners = %v, want none without a strong claim phrase", got)
	}
}

func TestNomineesTopPerAward(t *testing.T) {
	t.Parallel()

	var records []feed.Record
	for i := 0; i < 3; i++ {
		records = append(records, rec(i, "Anne Hathaway should win best supporting actress in a motion picture"))
	}
	records = append(records, rec(4, "Sally Field should win best supporting actress in a motion picture"))

	got := newService(t).Nominees(records)
	names := got["best performance by an actress in a supporting role in a motion picture"]
	if len(names) < 2 || names[0] != "Anne Hathaway" {
		t.Fatalf("nominees = %v, want Anne Hathaway cited most", names)
	}
}

func TestNomineesDropRedCarpetChatter(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, "Anne Hathaway best dressed on the red carpet, should win"),
	}
	got := newService(t).Nominees(records)
	for award, names := range got {
		if len(names) != 0 {
			t.Fatalf("award %q got %v from red carpet chatter", award, names)
		}
	}
}

func TestPresentersPairSplit(t *testing.T) {
	t.Parallel()

	records := []feed.Record{
		rec(0, "Robert Downey and Jodie Foster present best motion picture drama"),
	}
	got := newService(t).Presenters(records)
	names := got["best motion picture - drama"]
	if len(names) != 2 || names[0] != "Jodie Foster" || names[1] != "Robert Downey" {
		t.Fatalf("presenters = %v, want the sorted pair", names)
	}
}

func TestMergePartialNames(t *testing.T) {
	t.Parallel()

	in := map[string]struct{}{
		"Amy Poehler":       {},
		"Amy Poehler Smith": {},
		"Tina Fey":          {},
	}
	got := mergePartialNames(in)
	if len(got) != 2 || got[0] != "Amy Poehler Smith" || got[1] != "Tina Fey" {
		t.Fatalf("merged = %v, want the partial folded into the longer form", got)
	}
}
