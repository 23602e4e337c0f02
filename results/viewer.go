// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/danielhkuo/triangle/models"
)

const defaultCacheSize = 256

// Fetcher is the read side of the Survey API.
type Fetcher interface {
	GetResults(ctx context.Context, surveyID string) (models.SurveyResults, error)
}

// Viewer keeps the last successfully aggregated view per survey. A failed
// fetch never replaces it.
type Viewer struct {
	fetcher Fetcher
	views   *lru.Cache[string, models.ResultsView]
	metrics *Metrics
}

// NewViewer creates a Viewer remembering up to size surveys.
func NewViewer(fetcher Fetcher, size int, metrics *Metrics) (*Viewer, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if size <= 0 {
		size = defaultCacheSize
	}
	views, err := lru.New[string, models.ResultsView](size)
	if err != nil {
		return nil, fmt.Errorf("create view cache: %w", err)
	}
	return &Viewer{fetcher: fetcher, views: views, metrics: metrics}, nil
}

// Refresh fetches and aggregates the survey's results. On failure the error
// is logged and returned, and the remembered view is left as it was.
func (v *Viewer) Refresh(ctx context.Context, surveyID string) (models.ResultsView, error) {
	rs, err := v.fetcher.GetResults(ctx, surveyID)
	if err != nil {
		v.metrics.incFetch("failed")
		slog.Error("failed to fetch survey results", "survey_id", surveyID, "error", err)
		return models.ResultsView{}, fmt.Errorf("fetch results for survey %s: %w", surveyID, err)
	}

	view := Aggregate(surveyID, rs)
	v.views.Add(surveyID, view)
	v.metrics.incFetch("ok")
	return view, nil
}

// Last returns the view from the most recent successful Refresh.
func (v *Viewer) Last(surveyID string) (models.ResultsView, bool) {
	return v.views.Get(surveyID)
}
