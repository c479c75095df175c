package runs

import (
	"time"

	"marquee/internal/core/feed"
	"marquee/internal/services/pulse"
)

// CategoryResult is everything extracted for one canonical award
type CategoryResult struct {
	Presenters []string `json:"presenters"`
	Nominees   []string `json:"nominees"`
	Winner     string   `json:"winner"`
}

// Report is the full output of one analysis run
type Report struct {
	RunID         string                    `json:"run_id"`
	GeneratedAt   time.Time                 `json:"generated_at"`
	FeedPath      string                    `json:"feed_path"`
	Stats         feed.Stats                `json:"feed_stats"`
	CeremonyStart time.Time                 `json:"ceremony_start"`
	Hosts         []string                  `json:"hosts"`
	Awards        map[string]CategoryResult `json:"awards"`
	BestDressed   []string                  `json:"best_dressed"`
	WorstDressed  []string                  `json:"worst_dressed"`
	BestImage     string                    `json:"best_image,omitempty"`
	WorstImage    string                    `json:"worst_image,omitempty"`
	Funniest      []string                  `json:"funniest_people"`
	JokeThemes    []string                  `json:"joke_themes"`
	Performers    []string                  `json:"performers"`
	Pulse         pulse.Summary             `json:"pulse"`
}

// RunMeta is the listing row for a stored run
type RunMeta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	FeedPath    string    `json:"feed_path"`
	Verdict     string    `json:"verdict"`
}
