package main

import (
	"context"
	"time"

	"marquee/internal/platform/config"
	"marquee/internal/platform/logger"
	phttp "marquee/internal/platform/net/http"
	"marquee/internal/platform/net/middleware"
	"marquee/internal/platform/store"
	"marquee/internal/services/api"
	"marquee/internal/services/runs"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("MARQUEE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "marquee",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()

	srv := phttp.NewServer(apiCfg)
	r := srv.Router()
	r.Use(
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.RecoverJSON,
		middleware.Timeout(apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		}),
		middleware.AccessLog(middleware.AccessLogOptions{
			Slow: apiCfg.MayDuration("SLOW_REQUEST", time.Second),
		}),
		middleware.Heartbeat("/healthz"),
	)
	api.New(runs.NewRepo(st.PG)).Mount(r)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
