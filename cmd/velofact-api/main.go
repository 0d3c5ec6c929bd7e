// @title         Velofact API
// @version       0.1.0
// @description   Read only endpoints for counter facts and history summary

package main

import (
	"context"

	"velofact/internal/adapters/ecocounter"
	"velofact/internal/core/lexicon"
	"velofact/internal/platform/config"
	"velofact/internal/platform/logger"
	phttp "velofact/internal/platform/net/http"

	"velofact/internal/services/api"
	digestsvc "velofact/internal/services/digest/service"
)

func main() {
	// service-scoped config for HTTP etc (VELOFACT_API_*)
	root := config.New()
	apiCfg := root.Prefix("VELOFACT_API_")
	feedCfg := root.Prefix("VELOFACT_FEED_")

	// bring up logging early
	l := logger.Get()

	lex, err := lexicon.Load()
	if err != nil {
		l.Panic().Err(err).Msg("lexicon.Load failed")
	}

	fetcher, err := ecocounter.NewClient(ecocounter.Options{
		FeedURL:    feedCfg.MustString("URL"),
		Timeout:    feedCfg.MayDuration("TIMEOUT", 0),
		MaxRetries: feedCfg.MayInt("MAX_RETRIES", 0),
		RetryBase:  feedCfg.MayDuration("RETRY_BASE", 0),
	})
	if err != nil {
		l.Panic().Err(err).Msg("ecocounter.NewClient failed")
	}

	// the API never publishes, so the service carries no publishers
	svc := digestsvc.New(fetcher, lex, nil)

	// http server (reads VELOFACT_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: apiCfg,
			Digest: svc,
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
