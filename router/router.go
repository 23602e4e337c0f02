// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/triangle/backend"
	"github.com/danielhkuo/triangle/handlers"
	"github.com/danielhkuo/triangle/middleware"
)

// Dependencies wires the console routes to their collaborators.
type Dependencies struct {
	Drafts    *handlers.DraftStore
	Submitter handlers.Submitter
	Results   handlers.ResultsSource

	// Registry backs /metrics and the HTTP collectors. Nil uses the
	// process-wide default registry.
	Registry *prometheus.Registry
}

// NewRouter builds the console route table
func NewRouter(deps Dependencies) *mux.Router {
	r := mux.NewRouter()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	r.Use(middleware.NewHTTPMetrics(registerer).Middleware)

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(deps.Drafts)
	surveyHandler := handlers.NewSurveyHandler(deps.Drafts, deps.Submitter)
	resultsHandler := handlers.NewResultsHandler(deps.Results)

	addHealth(r)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// Authoring sessions
	r.HandleFunc("/drafts", middleware.WithLogging(draftHandler.CreateDraft)).Methods("POST")
	r.HandleFunc("/drafts/{id}", middleware.WithLogging(draftHandler.GetDraft)).Methods("GET")
	r.HandleFunc("/drafts/{id}", middleware.WithLogging(draftHandler.UpdateDraft)).Methods("PATCH")
	r.HandleFunc("/drafts/{id}", middleware.WithLogging(draftHandler.DiscardDraft)).Methods("DELETE")
	r.HandleFunc("/drafts/{id}/questions", middleware.WithLogging(draftHandler.AddQuestion)).Methods("POST")
	r.HandleFunc("/drafts/{id}/questions/{q}", middleware.WithLogging(draftHandler.UpdateQuestion)).Methods("PUT")
	r.HandleFunc("/drafts/{id}/questions/{q}", middleware.WithLogging(draftHandler.RemoveQuestion)).Methods("DELETE")
	r.HandleFunc("/drafts/{id}/questions/{q}/answers", middleware.WithLogging(draftHandler.AddAnswer)).Methods("POST")
	r.HandleFunc("/drafts/{id}/questions/{q}/answers/{a}", middleware.WithLogging(draftHandler.UpdateAnswer)).Methods("PUT")
	r.HandleFunc("/drafts/{id}/questions/{q}/answers/{a}", middleware.WithLogging(draftHandler.RemoveAnswer)).Methods("DELETE")

	// Submission
	r.HandleFunc("/drafts/{id}/submit", middleware.WithLogging(surveyHandler.SubmitDraft)).Methods("POST")
	r.HandleFunc("/surveys", middleware.WithLogging(surveyHandler.CreateSurvey)).Methods("POST")

	// Results view
	r.HandleFunc("/survey/{surveyId}/results", middleware.WithLogging(resultsHandler.GetResults)).Methods("GET")

	// Root endpoint
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("triangle console v1"))
	}).Methods("GET")

	return r
}

// NewBackendRouter builds the route table of the stand-in Survey API
func NewBackendRouter(db *sql.DB) *mux.Router {
	r := mux.NewRouter()

	surveyHandler := backend.NewSurveyHandler(db)
	resultsHandler := backend.NewResultsHandler(db)

	addHealth(r)

	r.HandleFunc("/surveys", middleware.WithLogging(surveyHandler.CreateSurvey)).Methods("POST")
	r.HandleFunc("/questions/{survey_id}", middleware.WithLogging(surveyHandler.CreateQuestion)).Methods("POST")
	r.HandleFunc("/answers/{question_id}", middleware.WithLogging(surveyHandler.CreateAnswer)).Methods("POST")
	r.HandleFunc("/send-emails", middleware.WithLogging(surveyHandler.SendEmails)).Methods("POST")

	r.HandleFunc("/survey/{surveyId}/results", middleware.WithLogging(resultsHandler.GetResults)).Methods("GET")
	r.HandleFunc("/survey/{surveyId}/responses", middleware.WithLogging(resultsHandler.RecordResponse)).Methods("POST")

	return r
}

func addHealth(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}
