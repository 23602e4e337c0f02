package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/triangle/cliparse"
	"github.com/danielhkuo/triangle/handlers"
	"github.com/danielhkuo/triangle/middleware"
	"github.com/danielhkuo/triangle/orchestrator"
	"github.com/danielhkuo/triangle/results"
	"github.com/danielhkuo/triangle/router"
	"github.com/danielhkuo/triangle/surveyapi"
)

func main() {
	var err error

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseConsoleFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Survey API client
	client, err := surveyapi.New(surveyapi.Config{
		BaseURL:           cfg.SurveyAPIURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		slog.Error("survey API client setup failed", "error", err)
		os.Exit(1)
	}

	orch, err := orchestrator.New(orchestrator.Dependencies{
		Backend:  client,
		Notifier: client,
		Metrics:  orchestrator.MustNewMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		slog.Error("orchestrator setup failed", "error", err)
		os.Exit(1)
	}

	viewer, err := results.NewViewer(client, cfg.ResultsCacheSize, results.MustNewMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		slog.Error("results viewer setup failed", "error", err)
		os.Exit(1)
	}

	// Create router
	r := router.NewRouter(router.Dependencies{
		Drafts:    handlers.NewDraftStore(cfg.DraftCapacity, cfg.DraftTTL),
		Submitter: orch,
		Results:   viewer,
	})

	// Create server
	server := http.Server{
		Handler: middleware.CORS(r),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "survey_api", cfg.SurveyAPIURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
