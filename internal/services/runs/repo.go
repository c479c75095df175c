package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/store"
)

// pgRepo persists runs in postgres behind the store seam
type pgRepo struct {
	db store.TxRunner
}

// NewRepo returns the postgres-backed Repo
func NewRepo(db store.TxRunner) Repo { return &pgRepo{db: db} }

// InsertRun writes the run row and its per-award results in one tx
func (r *pgRepo) InsertRun(ctx context.Context, rep Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode report")
	}

	return r.db.Tx(ctx, func(q store.RowQuerier) error {
		const ins = `
			INSERT INTO runs (run_id, generated_at, feed_path, verdict, report)
			VALUES ($1, $2, $3, $4, $5)`
		if err := q.Exec(ctx, ins, rep.RunID, rep.GeneratedAt, rep.FeedPath, rep.Pulse.Verdict, body); err != nil {
			return perr.FromPg(err)
		}
		if len(rep.Awards) == 0 {
			return nil
		}

		var sb strings.Builder
		sb.WriteString(`INSERT INTO run_results (run_id, award, winner, nominees, presenters) VALUES `)
		args := make([]any, 0, len(rep.Awards)*5)
		i := 0
		for award, res := range rep.Awards {
			if i > 0 {
				sb.WriteByte(',')
			}
			base := i*5 + 1
			fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d)", base, base+1, base+2, base+3, base+4)
			args = append(args, rep.RunID, award, res.Winner, jsonList(res.Nominees), jsonList(res.Presenters))
			i++
		}
		if err := q.Exec(ctx, sb.String(), args...); err != nil {
			return perr.FromPg(err)
		}
		return nil
	})
}

// ListRuns returns stored runs, newest first
func (r *pgRepo) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT run_id, generated_at, feed_path, verdict
		FROM runs
		ORDER BY generated_at DESC
		LIMIT $1`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, perr.FromPg(err)
	}
	defer rows.Close()

	var out []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.RunID, &m.GeneratedAt, &m.FeedPath, &m.Verdict); err != nil {
			return nil, perr.FromPg(err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetReport returns one stored report by run id
func (r *pgRepo) GetReport(ctx context.Context, runID string) (Report, error) {
	const q = `SELECT report FROM runs WHERE run_id = $1`
	var body []byte
	if err := r.db.QueryRow(ctx, q, runID).Scan(&body); err != nil {
		if perr.IsNoRows(err) {
			return Report{}, perr.NotFoundf("run %s", runID)
		}
		return Report{}, perr.FromPg(err)
	}
	var rep Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return Report{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode report")
	}
	return rep, nil
}

// jsonList encodes a string slice as a jsonb literal, never null
func jsonList(xs []string) []byte {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return b
}
