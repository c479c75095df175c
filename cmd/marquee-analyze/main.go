package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"marquee/internal/adapters/ner"
	"marquee/internal/core/cues"
	"marquee/internal/core/extract"
	"marquee/internal/platform/config"
	"marquee/internal/platform/logger"
	"marquee/internal/platform/store"
	"marquee/internal/services/awards"
	"marquee/internal/services/hosts"
	"marquee/internal/services/humor"
	"marquee/internal/services/performance"
	"marquee/internal/services/pulse"
	"marquee/internal/services/redcarpet"
	"marquee/internal/services/runs"
)

func main() {
	var (
		feedPath   = flag.String("feed", "", "path to the JSONL feed file")
		outPath    = flag.String("out", "report.json", "where to write the report")
		awardsPath = flag.String("awards", "", "optional JSON file with the canonical award list; empty means discover from the stream")
	)
	flag.Parse()

	logger.Init(logger.FromEnv())
	l := logger.Named("analyze")

	root := config.New()
	anaCfg := root.Prefix("ANALYZE_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	if *feedPath == "" {
		*feedPath = anaCfg.MayString("FEED", "")
	}
	if *feedPath == "" {
		l.Fatal().Msg("no feed file, pass -feed or set ANALYZE_FEED")
	}

	ctx := context.Background()

	var (
		repo    runs.Repo
		archive runs.Archiver
	)
	pack := cues.MustLoad()
	if pgCfg.MayBool("ENABLED", false) || chCfg.MayBool("ENABLED", false) {
		st, err := store.Open(ctx, store.Config{
			AppName: "marquee",
			PG: store.PGConfig{
				Enabled:     pgCfg.MayBool("ENABLED", false),
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", false),
				URL:     chCfg.MayString("DBURL", ""),
				Role:    "analyze",
			},
		}, store.WithLogger(*logger.Get()))
		if err != nil {
			l.Fatal().Err(err).Msg("store open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("store close failed")
			}
		}()
		if st.PG != nil {
			repo = runs.NewRepo(st.PG)
		}
		if st.CH != nil {
			archive = runs.NewArchive(st.CH, pack)
		}
	}

	ex := extract.New()
	tagger := ner.New()

	hostCfg := hosts.DefaultConfig()
	hostCfg.WindowMinutes = anaCfg.MayInt("HOST_WINDOW_MINUTES", hostCfg.WindowMinutes)
	hostCfg.DominanceRatio = anaCfg.MayFloat64("DOMINANCE_RATIO", hostCfg.DominanceRatio)

	carpetCfg := redcarpet.DefaultConfig()
	carpetCfg.PosCutoff = anaCfg.MayFloat64("DRESSED_POS_CUTOFF", carpetCfg.PosCutoff)
	carpetCfg.NegCutoff = anaCfg.MayFloat64("DRESSED_NEG_CUTOFF", carpetCfg.NegCutoff)

	humorCfg := humor.DefaultConfig()
	humorCfg.PosCutoff = anaCfg.MayFloat64("HUMOR_POS_CUTOFF", humorCfg.PosCutoff)
	humorCfg.NegCutoff = anaCfg.MayFloat64("HUMOR_NEG_CUTOFF", humorCfg.NegCutoff)

	runCfg := runs.DefaultConfig()
	runCfg.FeedPath = *feedPath
	runCfg.EnglishOnly = anaCfg.MayBool("ENGLISH_ONLY", true)
	runCfg.Awards = loadAwards(l, *awardsPath)

	svc, err := runs.New(runs.Deps{
		Hosts:       hosts.New(pack, ex, tagger, hostCfg),
		RedCarpet:   redcarpet.New(pack, ex, tagger, nil, nil, carpetCfg),
		Humor:       humor.New(pack, ex, tagger, nil, humorCfg),
		Performance: performance.New(pack, ex, tagger, performance.DefaultConfig()),
		Discovery:   awards.New(awards.DefaultConfig()),
		Pulse:       pulse.New(nil, pulse.DefaultConfig()),
		Pack:        pack,
		Extractor:   ex,
		Tagger:      tagger,
		Repo:        repo,
		Archive:     archive,
	}, runCfg)
	if err != nil {
		l.Fatal().Err(err).Msg("bad run configuration")
	}

	rep, err := svc.Run(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("run failed")
	}

	body, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("encode report")
	}
	if err := os.WriteFile(*outPath, body, 0o644); err != nil {
		l.Fatal().Err(err).Str("path", *outPath).Msg("write report")
	}
	l.Info().Str("run_id", rep.RunID).Str("out", *outPath).Msg("report written")
}

// loadAwards reads a JSON array of canonical award names.
// An empty path means the run discovers the list from the stream
func loadAwards(l *logger.Logger, path string) []string {
	if path == "" {
		return nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		l.Fatal().Err(err).Str("path", path).Msg("read awards file")
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		l.Fatal().Err(err).Str("path", path).Msg("parse awards file")
	}
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return names
}
