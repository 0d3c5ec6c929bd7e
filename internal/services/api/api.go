// Package api provides the HTTP API for the application
package api

import (
	"time"

	"velofact/internal/platform/config"
	phttp "velofact/internal/platform/net/http"
	"velofact/internal/platform/net/middleware"
	digesthttp "velofact/internal/services/api/digest/http"
	metahttp "velofact/internal/services/api/meta/http"
	digestsvc "velofact/internal/services/digest/service"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Digest digestsvc.Service

	// Now is the clock handlers compose against, defaults to time.Now
	Now func() time.Time
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	now := opt.Now
	if now == nil {
		now = time.Now
	}

	r.Use(middleware.Defaults()...)
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}))
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: opt.Config.MayCSV("CORS_ORIGINS", []string{"*"}),
	}))

	r.Route("/v1", func(v1 phttp.Router) {
		digesthttp.Register(v1, opt.Digest, now)
	})
	r.Route("/meta", func(meta phttp.Router) {
		metahttp.Register(meta, metahttp.Deps{
			ServiceName: "velofact-api",
			StartedAt:   now(),
		})
	})
}
