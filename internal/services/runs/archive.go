package runs

import (
	"context"

	"marquee/internal/core/cues"
	"marquee/internal/core/feed"
	"marquee/internal/core/normalize"
	"marquee/internal/platform/store"
)

// archived cue categories, kept stable so the columnar table stays queryable
var archiveCategories = []string{"host", "win", "nominate", "present", "redcarpet", "humor"}

var archiveCols = []string{"run_id", "category", "cue_start", "cue_end", "strength", "minute"}

// chArchive records every cue occurrence per record into clickhouse for
// offline threshold tuning
type chArchive struct {
	ch   store.Clickhouse
	pack *cues.Pack
}

// NewArchive returns the clickhouse-backed Archiver
func NewArchive(ch store.Clickhouse, pack *cues.Pack) Archiver {
	return &chArchive{ch: ch, pack: pack}
}

// Archive scans every record against the archived categories and writes
// one row per cue occurrence
func (a *chArchive) Archive(ctx context.Context, runID string, records []feed.Record) error {
	const flushAt = 10000

	rows := make([][]any, 0, flushAt)
	for _, r := range records {
		folded := normalize.Fold(r.Text)
		minute := r.Minute()
		for _, catID := range archiveCategories {
			for _, h := range a.pack.Category(catID).Find(folded) {
				rows = append(rows, []any{runID, catID, int32(h.Start), int32(h.End), int32(h.Strength), minute})
			}
		}
		if len(rows) >= flushAt {
			if err := a.ch.Insert(ctx, "cue_hits", archiveCols, rows); err != nil {
				return err
			}
			rows = rows[:0]
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return a.ch.Insert(ctx, "cue_hits", archiveCols, rows)
}
