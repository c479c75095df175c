package runs

import (
	"context"
	"strings"
	"testing"

	"marquee/internal/platform/store"
	"marquee/internal/services/pulse"
)

// fakeQuerier records every statement issued through the sql seam
type fakeQuerier struct {
	execs []string
	args  [][]any
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) error {
	f.execs = append(f.execs, sql)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return nil, nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	return nil
}

func (f *fakeQuerier) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(f)
}

func TestInsertRunWritesRunAndResults(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	repo := NewRepo(q)

	rep := Report{
		RunID:    "run-1",
		FeedPath: "feed.jsonl",
		Awards: map[string]CategoryResult{
			"best motion picture - drama": {
				Winner:   "Argo",
				Nominees: []string{"Argo", "Lincoln"},
			},
		},
		Pulse: pulse.Summary{Verdict: "pretty decent"},
	}

	if err := repo.InsertRun(context.Background(), rep); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(q.execs) != 2 {
		t.Fatalf("statements = %d, want the run row plus the results batch", len(q.execs))
	}
	if !strings.Contains(q.execs[0], "INSERT INTO runs") {
		t.Fatalf("first statement %q, want the runs insert", q.execs[0])
	}
	if !strings.Contains(q.execs[1], "INSERT INTO run_results") {
		t.Fatalf("second statement %q, want the results insert", q.execs[1])
	}
	if got := string(q.args[1][3].([]byte)); got != `["Argo","Lincoln"]` {
		t.Fatalf("nominees arg = %q", got)
	}
}

func TestInsertRunSkipsResultsWithoutAwards(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	if err := NewRepo(q).InsertRun(context.Background(), Report{RunID: "run-2"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(q.execs) != 1 {
		t.Fatalf("statements = %d, want only the run row", len(q.execs))
	}
}
