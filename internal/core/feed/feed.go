// Package feed loads timestamped post records from JSONL input.
// Records are immutable once loaded; the store never mutates them
package feed

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	perr "marquee/internal/platform/errors"
)

// Record is one post. Text keeps its original casing so the
// capitalization heuristics downstream still work
type Record struct {
	Timestamp time.Time
	Text      string
	Author    string
	Tags      []string
	IsRetweet bool
	IsQuote   bool
}

// Minute returns the record timestamp truncated to the minute,
// the histogram key used by the window detector
func (r Record) Minute() time.Time { return r.Timestamp.Truncate(time.Minute) }

// HasTag reports whether tag is present, case insensitive
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Stats counts load outcomes. A malformed line is skipped, never fatal
type Stats struct {
	Total     int `json:"total"`
	Loaded    int `json:"loaded"`
	Malformed int `json:"malformed"`
}

type wireRecord struct {
	Timestamp string   `json:"timestamp"`
	Text      string   `json:"text"`
	Author    string   `json:"author,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	IsRetweet bool     `json:"is_retweet,omitempty"`
	IsQuote   bool     `json:"is_quote,omitempty"`
}

// timestamp layouts accepted in input, tried in order
var tsLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Load reads a JSONL file of records
func Load(path string) ([]Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "feed: open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes records line by line from r.
// Lines that fail to parse are counted and skipped
func Read(r io.Reader) ([]Record, Stats, error) {
	var (
		out   []Record
		stats Stats
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		stats.Total++

		var w wireRecord
		if err := json.Unmarshal([]byte(line), &w); err != nil {
			stats.Malformed++
			continue
		}
		ts, ok := parseTS(w.Timestamp)
		if !ok || strings.TrimSpace(w.Text) == "" {
			stats.Malformed++
			continue
		}
		out = append(out, Record{
			Timestamp: ts,
			Text:      w.Text,
			Author:    w.Author,
			Tags:      w.Tags,
			IsRetweet: w.IsRetweet,
			IsQuote:   w.IsQuote,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, stats, perr.Wrap(err, perr.ErrorCodeUnknown, "feed: read")
	}

	// input is usually chronological already; sort to make it a guarantee
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })

	stats.Loaded = len(out)
	return out, stats, nil
}

func parseTS(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range tsLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
