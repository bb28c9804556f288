package main

import (
	"fmt"
	"net/http"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/csrf"
	"fyyur/internal/http/middleware"
	"fyyur/internal/httpapi"
	"fyyur/internal/metrics"
	"fyyur/internal/render"
	"fyyur/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, met *metrics.Metrics) (http.Handler, error) {
	// Base services
	venueSvc := venues.New(dataStore)
	artistSvc := artists.New(dataStore)

	// Shows check both sides of the booking before inserting
	showSvc := shows.New(dataStore, venueSvc, artistSvc)

	pages, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	tokens, err := csrf.New(cfg.Security.SecretKey, cfg.Security.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("csrf tokens: %w", err)
	}

	router := httpapi.New(venueSvc, artistSvc, showSvc, pages, tokens, met).Routes()
	router.Handle("/metrics", met.Handler()).Methods(http.MethodGet)
	middleware.InstrumentRouter(router, met)

	var handler http.Handler = router
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)
	return handler, nil
}
