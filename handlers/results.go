// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/triangle/middleware"
	"github.com/danielhkuo/triangle/models"
)

// ResultsSource fetches fresh results and remembers the last good view.
type ResultsSource interface {
	Refresh(ctx context.Context, surveyID string) (models.ResultsView, error)
	Last(surveyID string) (models.ResultsView, bool)
}

type ResultsHandler struct {
	source ResultsSource
}

func NewResultsHandler(source ResultsSource) *ResultsHandler {
	return &ResultsHandler{source: source}
}

// GetResults handles GET /survey/{surveyId}/results
// When the fetch fails the previous view is served marked stale.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	view, err := h.source.Refresh(r.Context(), surveyID)
	if err == nil {
		middleware.JSONResponse(w, http.StatusOK, view)
		return
	}

	if last, ok := h.source.Last(surveyID); ok {
		last.Stale = true
		middleware.JSONResponse(w, http.StatusOK, last)
		return
	}

	middleware.ErrorResponse(w, http.StatusBadGateway, "Error loading survey results")
}
