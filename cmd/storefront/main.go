package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gadgeto/storefront/internal/config"
	"github.com/gadgeto/storefront/internal/logger"
	"github.com/gadgeto/storefront/internal/router"
	"github.com/gadgeto/storefront/internal/setup"
)

const (
	defaultPort  = "8081"
	configFolder = "config"
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setting up dependencies", "error", err)
		os.Exit(1)
	}

	server := configureServer(router.SetupRouter(deps))
	logger.Log.Info("starting storefront", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func configureServer(handler http.Handler) *http.Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
