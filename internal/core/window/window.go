// Package window locates the time interval where a topic is being discussed
// by sliding-window maximization over a per-minute histogram of records that
// match a trigger predicate
package window

import (
	"sort"
	"time"

	"marquee/internal/core/feed"
)

// Predicate marks a record as on-topic for a category
type Predicate func(feed.Record) bool

// Span is a half-open time interval [Start, End)
type Span struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the span
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Duration returns End - Start
func (s Span) Duration() time.Duration { return s.End.Sub(s.Start) }

// Detect finds the duration-long window with the densest trigger activity.
//
// Every minute bucket holding at least one matching record is a candidate
// window start; the start whose [start, start+duration) sum is maximal wins,
// ties broken by earliest start. When nothing matches, the window starts at
// the minimum timestamp of the full record set, or now() for an empty set
func Detect(records []feed.Record, pred Predicate, duration time.Duration, now func() time.Time) Span {
	if now == nil {
		now = time.Now
	}

	hist := make(map[time.Time]int)
	for _, r := range records {
		if pred != nil && !pred(r) {
			continue
		}
		if pred == nil {
			continue
		}
		hist[r.Minute()]++
	}

	if len(hist) == 0 {
		start := fallbackStart(records, now)
		return Span{Start: start, End: start.Add(duration)}
	}

	buckets := make([]time.Time, 0, len(hist))
	for b := range hist {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	best := buckets[0]
	bestSum := -1
	for _, start := range buckets {
		end := start.Add(duration)
		sum := 0
		for _, b := range buckets {
			if !b.Before(start) && b.Before(end) {
				sum += hist[b]
			}
		}
		// strictly greater keeps the earliest start on ties
		if sum > bestSum {
			bestSum = sum
			best = start
		}
	}

	return Span{Start: best, End: best.Add(duration)}
}

// DetectBefore finds the best span-long window whose start lies inside
// [deadline - maxPrior, deadline). Used for pre-show coverage that must end
// before the main event. When nothing matches in that range the window is
// [deadline - fallbackPrior, deadline)
func DetectBefore(records []feed.Record, pred Predicate, span time.Duration, deadline time.Time, maxPrior, fallbackPrior time.Duration) Span {
	lo := deadline.Add(-maxPrior)

	hist := make(map[time.Time]int)
	for _, r := range records {
		if pred == nil || !pred(r) {
			continue
		}
		b := r.Minute()
		if b.Before(lo) || !b.Before(deadline) {
			continue
		}
		hist[b]++
	}

	if len(hist) == 0 {
		return Span{Start: deadline.Add(-fallbackPrior), End: deadline}
	}

	buckets := make([]time.Time, 0, len(hist))
	for b := range hist {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	best := buckets[0]
	bestSum := -1
	for _, start := range buckets {
		end := start.Add(span)
		sum := 0
		for _, b := range buckets {
			if !b.Before(start) && b.Before(end) {
				sum += hist[b]
			}
		}
		if sum > bestSum {
			bestSum = sum
			best = start
		}
	}

	return Span{Start: best, End: best.Add(span)}
}

// Filter returns the records inside span that also satisfy pred.
// A nil pred keeps every in-window record
func Filter(records []feed.Record, span Span, pred Predicate) []feed.Record {
	var out []feed.Record
	for _, r := range records {
		if !span.Contains(r.Timestamp) {
			continue
		}
		if pred != nil && !pred(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func fallbackStart(records []feed.Record, now func() time.Time) time.Time {
	if len(records) == 0 {
		return now().Truncate(time.Minute)
	}
	min := records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.Before(min) {
			min = r.Timestamp
		}
	}
	return min
}
