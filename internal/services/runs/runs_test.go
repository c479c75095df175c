package runs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
	"marquee/internal/core/rank"
	"marquee/internal/core/tally"
	"marquee/internal/core/window"
	"marquee/internal/services/awards"
	"marquee/internal/services/hosts"
	"marquee/internal/services/humor"
	"marquee/internal/services/performance"
	"marquee/internal/services/pulse"
	"marquee/internal/services/redcarpet"
)

// the canonical three-record walk through window, tally, and finalizer
func TestWinnerScenario(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 1, 11, 20, 0, 0, 0, time.UTC)
	records := []feed.Record{
		{Timestamp: day, Text: "the award goes to Jane Doe"},
		{Timestamp: day.Add(time.Minute), Text: "RT congrats Jane Doe", IsRetweet: true},
		{Timestamp: day.Add(2 * time.Minute), Text: "no mention here"},
	}
	pred := func(r feed.Record) bool {
		low := strings.ToLower(r.Text)
		return strings.Contains(low, "award") || strings.Contains(low, "goes to")
	}

	span := window.Detect(records, pred, 5*time.Minute, func() time.Time { return day })
	if !span.Start.Equal(day) || !span.End.Equal(day.Add(5*time.Minute)) {
		t.Fatalf("window = [%v, %v), want [20:00, 20:05)", span.Start, span.End)
	}

	ex := extract.New()
	tl := tally.New()
	for _, r := range window.Filter(records, span, pred) {
		tl.Add(ex.People(r.Text), tally.Discount(1, r.IsRetweet))
	}
	if got, want := tl["Jane Doe"], 1+tally.RetweetFactor; got != want {
		t.Fatalf("tally for Jane Doe = %v, want %v (direct plus discounted retweet)", got, want)
	}

	winner, ok := rank.Single(tl)
	if !ok || winner != "Jane Doe" {
		t.Fatalf("winner = %q ok=%v, want Jane Doe", winner, ok)
	}
}

type memRepo struct {
	inserted []Report
}

func (m *memRepo) InsertRun(_ context.Context, rep Report) error {
	m.inserted = append(m.inserted, rep)
	return nil
}

func (m *memRepo) ListRuns(context.Context, int) ([]RunMeta, error) { return nil, nil }

func (m *memRepo) GetReport(context.Context, string) (Report, error) { return Report{}, nil }

type memArchive struct {
	runs []string
}

func (m *memArchive) Archive(_ context.Context, runID string, _ []feed.Record) error {
	m.runs = append(m.runs, runID)
	return nil
}

func writeFeed(t *testing.T) string {
	t.Helper()

	base := time.Date(2026, 1, 11, 20, 0, 0, 0, time.UTC)
	var sb strings.Builder
	line := func(min int, text string) {
		fmt.Fprintf(&sb, "{\"timestamp\":%q,\"text\":%q}\n", base.Add(time.Duration(min)*time.Minute).Format(time.RFC3339), text)
	}
	for i := 0; i < 5; i++ {
		line(i, "please welcome your hosts Tina Fey and Amy Poehler")
		line(60+i, "Hugh Jackman wins best actor in a motion picture drama")
		line(10+i, "Tina Fey joke was hilarious")
	}
	line(70, "Anne Hathaway should win best actor in a motion picture drama")
	line(80, "what a wonderful show")

	path := filepath.Join(t.TempDir(), "feed.jsonl")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func newOrchestrator(t *testing.T, cfg Config, repo Repo, arch Archiver) *Service {
	t.Helper()

	pack := cues.MustLoad()
	ex := extract.New()
	deps := Deps{
		Hosts:       hosts.New(pack, ex, nil, hosts.DefaultConfig()),
		RedCarpet:   redcarpet.New(pack, ex, nil, nil, nil, redcarpet.DefaultConfig()),
		Humor:       humor.New(pack, ex, nil, nil, humor.DefaultConfig()),
		Performance: performance.New(pack, ex, nil, performance.DefaultConfig()),
		Discovery:   awards.New(awards.DefaultConfig()),
		Pulse:       pulse.New(nil, pulse.DefaultConfig()),
		Pack:        pack,
		Extractor:   ex,
		Repo:        repo,
		Archive:     arch,
	}
	s, err := New(deps, cfg)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return s
}

func TestRunProducesReport(t *testing.T) {
	t.Parallel()

	repo := &memRepo{}
	arch := &memArchive{}
	cfg := DefaultConfig()
	cfg.FeedPath = writeFeed(t)
	cfg.Awards = []string{"best performance by an actor in a motion picture - drama"}

	rep, err := newOrchestrator(t, cfg, repo, arch).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.RunID == "" {
		t.Fatalf("missing run id")
	}
	if len(rep.Hosts) != 2 {
		t.Fatalf("hosts = %v, want the pair", rep.Hosts)
	}
	res := rep.Awards["best performance by an actor in a motion picture - drama"]
	if res.Winner != "Hugh Jackman" {
		t.Fatalf("winner = %q, want Hugh Jackman", res.Winner)
	}
	if rep.Pulse.Verdict == "" {
		t.Fatalf("missing verdict")
	}
	if len(repo.inserted) != 1 || repo.inserted[0].RunID != rep.RunID {
		t.Fatalf("repo saw %v, want the run persisted once", repo.inserted)
	}
	if len(arch.runs) != 1 || arch.runs[0] != rep.RunID {
		t.Fatalf("archive saw %v, want the run archived", arch.runs)
	}
}

func TestRunRejectsMissingFeedPath(t *testing.T) {
	t.Parallel()

	_, err := New(Deps{Pack: cues.MustLoad(), Extractor: extract.New()}, DefaultConfig())
	if err == nil {
		t.Fatalf("expected a validation error for an empty feed path")
	}
}

func TestJSONList(t *testing.T) {
	t.Parallel()

	if got := string(jsonList(nil)); got != "[]" {
		t.Fatalf("nil slice encoded as %q, want []", got)
	}
	if got := string(jsonList([]string{"a"})); got != `["a"]` {
		t.Fatalf("encoded as %q", got)
	}
}
