package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"vodmesh/api"
	"vodmesh/config"
	"vodmesh/handlers"
	"vodmesh/services/aggregator"
	"vodmesh/services/sources"
	"vodmesh/utils"
)

func main() {
	settingsPath := flag.String("settings", "settings.json", "path to the settings file")
	flag.Parse()

	cfg, err := config.NewManager(afero.NewOsFs(), *settingsPath)
	if err != nil {
		log.Fatalf("[server] config: %v", err)
	}
	settings := cfg.Get()

	setupLogging(settings.LogFile)

	aggSvc := aggregator.NewService(time.Duration(settings.FetchTimeoutMs) * time.Millisecond)
	srcSvc := sources.NewService(cfg)

	videoHandler := handlers.NewVideoHandler(aggSvc, srcSvc)
	sourcesHandler := handlers.NewSourcesHandler(srcSvc)

	r := utils.NewRouter()
	r.Use(api.LoggingMiddleware())
	r.Use(api.RecoveryMiddleware())
	r.HandleFunc("/category", videoHandler.Category).Methods(http.MethodGet)
	r.HandleFunc("/hot", videoHandler.Hot).Methods(http.MethodGet)
	r.HandleFunc("/sources", sourcesHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/sources/reload", sourcesHandler.Reload).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Aggregation holds the response open until every source finishes or
		// times out, so the write timeout must exceed the fetch deadline.
		WriteTimeout: 2 * time.Duration(settings.FetchTimeoutMs) * time.Millisecond,
	}

	log.Printf("[server] listening on %s (%d sources configured)", settings.ListenAddr, len(cfg.Sources()))
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[server] %v", err)
	}
}

// setupLogging routes both the stdlib logger and slog through stdout, plus a
// rotating file when one is configured.
func setupLogging(logFile string) {
	var out io.Writer = os.Stdout
	if logFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}
	log.SetOutput(out)
	slog.SetDefault(slog.New(slog.NewTextHandler(out, nil)))
}
