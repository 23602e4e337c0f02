// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/triangle/draft"
	"github.com/danielhkuo/triangle/middleware"
	"github.com/danielhkuo/triangle/models"
)

// DraftHandler exposes the draft editing operations over HTTP. Every
// mutation answers with the full draft so the form can re-render.
type DraftHandler struct {
	store *DraftStore
}

func NewDraftHandler(store *DraftStore) *DraftHandler {
	return &DraftHandler{store: store}
}

// CreateDraft handles POST /drafts
// An empty body starts from one blank question with one blank answer.
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var body models.DraftBody
	err := middleware.ParseJSONBody(r, &body)
	if err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var d *draft.Survey
	if err == nil {
		d = draft.FromBody(body)
	}

	id, state := h.store.Create(d)
	middleware.JSONResponse(w, http.StatusCreated, models.DraftResponse{DraftID: id, Draft: state})
}

// GetDraft handles GET /drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(d *draft.Survey) error { return nil })
}

// DiscardDraft handles DELETE /drafts/{id}
func (h *DraftHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDraft handles PATCH /drafts/{id}
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.apply(w, r, func(d *draft.Survey) error {
		if req.Title != nil {
			d.SetTitle(*req.Title)
		}
		if req.Description != nil {
			d.SetDescription(*req.Description)
		}
		return nil
	})
}

// AddQuestion handles POST /drafts/{id}/questions
func (h *DraftHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	text, ok := optionalText(w, r)
	if !ok {
		return
	}
	h.apply(w, r, func(d *draft.Survey) error {
		d.AddQuestion(text)
		return nil
	})
}

// UpdateQuestion handles PUT /drafts/{id}/questions/{q}
func (h *DraftHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := pathIndex(w, r, "q")
	if !ok {
		return
	}
	var req models.TextRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.apply(w, r, func(d *draft.Survey) error {
		return d.SetQuestionText(q, req.Text)
	})
}

// RemoveQuestion handles DELETE /drafts/{id}/questions/{q}
func (h *DraftHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := pathIndex(w, r, "q")
	if !ok {
		return
	}
	h.apply(w, r, func(d *draft.Survey) error {
		return d.RemoveQuestion(q)
	})
}

// AddAnswer handles POST /drafts/{id}/questions/{q}/answers
func (h *DraftHandler) AddAnswer(w http.ResponseWriter, r *http.Request) {
	q, ok := pathIndex(w, r, "q")
	if !ok {
		return
	}
	text, ok := optionalText(w, r)
	if !ok {
		return
	}
	h.apply(w, r, func(d *draft.Survey) error {
		_, err := d.AddAnswer(q, text)
		return err
	})
}

// UpdateAnswer handles PUT /drafts/{id}/questions/{q}/answers/{a}
func (h *DraftHandler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	q, ok := pathIndex(w, r, "q")
	if !ok {
		return
	}
	a, ok := pathIndex(w, r, "a")
	if !ok {
		return
	}
	var req models.TextRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.apply(w, r, func(d *draft.Survey) error {
		return d.SetAnswerText(q, a, req.Text)
	})
}

// RemoveAnswer handles DELETE /drafts/{id}/questions/{q}/answers/{a}
func (h *DraftHandler) RemoveAnswer(w http.ResponseWriter, r *http.Request) {
	q, ok := pathIndex(w, r, "q")
	if !ok {
		return
	}
	a, ok := pathIndex(w, r, "a")
	if !ok {
		return
	}
	h.apply(w, r, func(d *draft.Survey) error {
		return d.RemoveAnswer(q, a)
	})
}

func (h *DraftHandler) apply(w http.ResponseWriter, r *http.Request, fn func(d *draft.Survey) error) {
	id := mux.Vars(r)["id"]
	state, err := h.store.With(id, fn)

	switch {
	case errors.Is(err, ErrDraftNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
	case errors.Is(err, draft.ErrIndexOutOfRange):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case err != nil:
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		middleware.JSONResponse(w, http.StatusOK, models.DraftResponse{DraftID: id, Draft: state})
	}
}

// pathIndex reads a non-negative integer path variable
func pathIndex(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	i, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || i < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid "+name+" index")
		return 0, false
	}
	return i, true
}

// optionalText reads {"text": ...}, treating an empty body as ""
func optionalText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.TextRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return "", false
	}
	return req.Text, true
}
