package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/leaguefc/go/internal/config"
	"github.com/mcdev12/leaguefc/go/internal/httpapi"
)

func setupServer(services *Services, cfg *config.Config) *http.Server {
	api := httpapi.New(httpapi.Deps{
		Auth:           services.Auth,
		FreeAgency:     services.FreeAgency,
		Packs:          services.Packs,
		Finances:       services.Finances,
		Leagues:        services.Leagues,
		RPCPath:        services.SeasonPath,
		RPC:            services.SeasonHandler,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	// Setup HTTP/2 server so connect clients can use h2c
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(c.Handler(api.Handler()), &http2.Server{}),
	}
}
