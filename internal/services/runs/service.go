// Package runs orchestrates a full analysis pass over one feed file and
// owns persistence of the finished report
package runs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/core/feed"
	"marquee/internal/core/langhint"
	"marquee/internal/core/normalize"
	"marquee/internal/core/window"
	perr "marquee/internal/platform/errors"
	"marquee/internal/platform/logger"
	"marquee/internal/platform/validate"
	"marquee/internal/services/awards"
	"marquee/internal/services/ceremony"
	"marquee/internal/services/hosts"
	"marquee/internal/services/humor"
	"marquee/internal/services/performance"
	"marquee/internal/services/pulse"
	"marquee/internal/services/redcarpet"
)

// PeopleTagger supplies higher-precision person spans for a text
type PeopleTagger interface {
	People(text string) []string
}

// Repo persists finished runs and serves them back to the read side
type Repo interface {
	InsertRun(ctx context.Context, rep Report) error
	ListRuns(ctx context.Context, limit int) ([]RunMeta, error)
	GetReport(ctx context.Context, runID string) (Report, error)
}

// Archiver records per-record cue evidence for offline threshold tuning
type Archiver interface {
	Archive(ctx context.Context, runID string, records []feed.Record) error
}

// Config for one analysis run
type Config struct {
	FeedPath              string   `json:"feed_path" validate:"required"`
	Awards                []string `json:"awards"`
	CeremonyWindowMinutes int      `json:"ceremony_window_minutes" validate:"gt=0"`
	EnglishOnly           bool     `json:"english_only"`
}

// DefaultConfig returns the orchestrator settings with an empty feed path
func DefaultConfig() Config {
	return Config{CeremonyWindowMinutes: 45, EnglishOnly: true}
}

// Deps are the collaborators the orchestrator fans work out to.
// Repo, Archive, Tagger and Images may be nil
type Deps struct {
	Hosts       *hosts.Service
	RedCarpet   *redcarpet.Service
	Humor       *humor.Service
	Performance *performance.Service
	Discovery   *awards.Service
	Pulse       *pulse.Service
	Pack        *cues.Pack
	Extractor   *extract.Extractor
	Tagger      PeopleTagger
	Repo        Repo
	Archive     Archiver
}

// Service runs the full extraction pass
type Service struct {
	log  logger.Logger
	deps Deps
	cfg  Config
	now  func() time.Time
}

// New constructs the orchestrator, validating its config up front
func New(deps Deps, cfg Config) (*Service, error) {
	if cfg.CeremonyWindowMinutes <= 0 {
		cfg.CeremonyWindowMinutes = 45
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return &Service{
		log:  *logger.Named("runs"),
		deps: deps,
		cfg:  cfg,
		now:  time.Now,
	}, nil
}

// Run loads the feed once and fans every extractor out over the shared
// immutable record slice. Results merge into one report which is then
// persisted when a repo is configured
func (s *Service) Run(ctx context.Context) (Report, error) {
	records, stats, err := feed.Load(s.cfg.FeedPath)
	if err != nil {
		return Report{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "load feed %s", s.cfg.FeedPath)
	}
	if s.cfg.EnglishOnly {
		records = englishOnly(records)
	}
	s.log.Info().
		Int("loaded", stats.Loaded).
		Int("malformed", stats.Malformed).
		Int("kept", len(records)).
		Msg("feed ready")

	ceremonyStart := s.ceremonyStart(records)

	awardNames := s.cfg.Awards
	if len(awardNames) == 0 && s.deps.Discovery != nil {
		awardNames = awards.Names(s.deps.Discovery.Run(records))
		s.log.Info().Int("discovered", len(awardNames)).Msg("award list discovered from stream")
	}
	cer := ceremony.New(s.deps.Pack, s.deps.Extractor, s.deps.Tagger, awardNames, ceremony.DefaultConfig())

	rep := Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   s.now().UTC(),
		FeedPath:      s.cfg.FeedPath,
		Stats:         stats,
		CeremonyStart: ceremonyStart,
	}

	var (
		wg         sync.WaitGroup
		hostsRes   hosts.Result
		carpetRes  redcarpet.Result
		humorRes   humor.Result
		perfRes    performance.Result
		pulseRes   pulse.Summary
		winners    map[string]string
		nominees   map[string][]string
		presenters map[string][]string
	)
	stage := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t0 := time.Now()
			fn()
			s.log.Debug().Str("stage", name).Dur("took", time.Since(t0)).Msg("stage done")
		}()
	}

	stage("hosts", func() { hostsRes = s.deps.Hosts.Run(records, s.now) })
	stage("redcarpet", func() { carpetRes = s.deps.RedCarpet.Run(records, ceremonyStart) })
	stage("humor", func() { humorRes = s.deps.Humor.Run(records, ceremonyStart) })
	stage("performance", func() { perfRes = s.deps.Performance.Run(records) })
	stage("pulse", func() { pulseRes = s.deps.Pulse.Run(records) })
	stage("winners", func() { winners = cer.Winners(records) })
	stage("nominees", func() { nominees = cer.Nominees(records) })
	stage("presenters", func() { presenters = cer.Presenters(records) })
	wg.Wait()

	rep.Hosts = hostsRes.Hosts
	rep.BestDressed = carpetRes.BestDressed
	rep.WorstDressed = carpetRes.WorstDressed
	rep.BestImage = carpetRes.BestImage
	rep.WorstImage = carpetRes.WorstImage
	rep.Funniest = humorRes.People
	rep.JokeThemes = humorRes.Themes
	rep.Performers = perfRes.Performers
	rep.Pulse = pulseRes

	rep.Awards = make(map[string]CategoryResult, len(awardNames))
	for _, award := range awardNames {
		rep.Awards[award] = CategoryResult{
			Presenters: presenters[award],
			Nominees:   nominees[award],
			Winner:     winners[award],
		}
	}

	if s.deps.Repo != nil {
		if err := s.deps.Repo.InsertRun(ctx, rep); err != nil {
			return Report{}, perr.Wrap(err, perr.ErrorCodeDB, "persist run")
		}
	}
	if s.deps.Archive != nil {
		if err := s.deps.Archive.Archive(ctx, rep.RunID, records); err != nil {
			// archive loss is not worth failing the run over
			s.log.Warn().Err(err).Msg("cue archive failed")
		}
	}

	s.log.Info().Str("run_id", rep.RunID).Str("verdict", rep.Pulse.Verdict).Msg("run complete")
	return rep, nil
}

// ceremonyStart anchors the broadcast timeline on the host chatter burst
func (s *Service) ceremonyStart(records []feed.Record) time.Time {
	pred := func(r feed.Record) bool {
		_, ok := s.deps.Pack.Category("host").Match(normalize.Fold(r.Text))
		return ok
	}
	dur := time.Duration(s.cfg.CeremonyWindowMinutes) * time.Minute
	return window.Detect(records, pred, dur, s.now).Start
}

func englishOnly(records []feed.Record) []feed.Record {
	out := records[:0]
	for _, r := range records {
		if langhint.English(r.Text) {
			out = append(out, r)
		}
	}
	return out
}
