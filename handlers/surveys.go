// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/triangle/draft"
	"github.com/danielhkuo/triangle/middleware"
	"github.com/danielhkuo/triangle/models"
	"github.com/danielhkuo/triangle/orchestrator"
)

// Submitter validates a draft and creates it remotely, resetting it on success.
type Submitter interface {
	Submit(ctx context.Context, d *draft.Survey) (string, error)
}

type SurveyHandler struct {
	store     *DraftStore
	submitter Submitter
}

func NewSurveyHandler(store *DraftStore, submitter Submitter) *SurveyHandler {
	return &SurveyHandler{store: store, submitter: submitter}
}

// SubmitDraft handles POST /drafts/{id}/submit
// The draft stays locked for the whole sequence, so edits wait for it.
func (h *SurveyHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var surveyID string
	_, err := h.store.With(id, func(d *draft.Survey) error {
		var err error
		surveyID, err = h.submitter.Submit(r.Context(), d)
		return err
	})
	if errors.Is(err, ErrDraftNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}

	h.respond(w, surveyID, err)
}

// CreateSurvey handles POST /surveys
// The body is a complete draft submitted in one request.
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var body models.DraftBody
	if err := middleware.ParseJSONBody(r, &body); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	surveyID, err := h.submitter.Submit(r.Context(), draft.FromBody(body))
	h.respond(w, surveyID, err)
}

func (h *SurveyHandler) respond(w http.ResponseWriter, surveyID string, err error) {
	var verr *draft.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.FieldErrorResponse(w, http.StatusBadRequest, verr.Error(), verr.Fields)
	case errors.Is(err, orchestrator.ErrCreateFailed):
		// Details were logged by the orchestrator; the user gets one message
		middleware.ErrorResponse(w, http.StatusBadGateway, "Error creating survey")
	case err != nil:
		slog.Error("survey submission failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error creating survey")
	default:
		location := "/survey/" + url.PathEscape(surveyID)
		w.Header().Set("Location", location)
		middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
			SurveyID: surveyID,
			Location: location,
		})
	}
}
