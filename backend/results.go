// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/danielhkuo/triangle/middleware"
	"github.com/danielhkuo/triangle/models"
)

// ResultsHandler serves recorded responses and the per-survey results mapping.
type ResultsHandler struct {
	db *sql.DB
}

func NewResultsHandler(db *sql.DB) *ResultsHandler {
	return &ResultsHandler{db: db}
}

// GetResults handles GET /survey/{surveyId}/results
// Questions and answers are emitted in creation order.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	err := surveyExists(r, h.db, surveyID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT q.id, q.question_text, a.id, a.answer_text, r.user_id
		FROM question q
		LEFT JOIN answer_option a ON a.question_id = q.id
		LEFT JOIN response r ON r.answer_id = a.id
		WHERE q.survey_id = $1
		ORDER BY q.position, a.position, r.user_id
	`, surveyID)
	if err != nil {
		slog.Error("failed to query results", "survey_id", surveyID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load results")
		return
	}
	defer rows.Close()

	results := models.SurveyResults{}
	for rows.Next() {
		var (
			questionID, questionText string
			answerID, answerText     sql.NullString
			userID                   sql.NullString
		)
		if err := rows.Scan(&questionID, &questionText, &answerID, &answerText, &userID); err != nil {
			slog.Error("failed to scan result row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load results")
			return
		}

		// Rows arrive grouped by question then answer
		if len(results) == 0 || results[len(results)-1].QuestionID != questionID {
			results = append(results, models.ResultQuestion{
				QuestionID:   questionID,
				QuestionText: questionText,
				Answers:      []models.ResultAnswer{},
			})
		}
		if !answerID.Valid {
			continue
		}

		q := &results[len(results)-1]
		if len(q.Answers) == 0 || q.Answers[len(q.Answers)-1].AnswerID != answerID.String {
			q.Answers = append(q.Answers, models.ResultAnswer{
				AnswerID:   answerID.String,
				AnswerText: answerText.String,
				HasCount:   true,
			})
		}
		if userID.Valid {
			a := &q.Answers[len(q.Answers)-1]
			a.UserIDs = append(a.UserIDs, userID.String)
			a.ResponseCount++
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyResultsResponse{SurveyResults: results})
}

// RecordResponse handles POST /survey/{surveyId}/responses
// A member picking the same option twice counts once.
func (h *ResultsHandler) RecordResponse(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	var req models.RecordResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if len(req.AnswerIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answer_ids must not be empty")
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, answerID := range req.AnswerIDs {
		var owner string
		err := tx.QueryRowContext(r.Context(), `
			SELECT q.survey_id
			FROM answer_option a
			JOIN question q ON q.id = a.question_id
			WHERE a.id = $1
		`, answerID).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != surveyID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown answer: "+answerID)
			return
		}
		if err != nil {
			slog.Error("failed to query answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO response (answer_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (answer_id, user_id) DO NOTHING
		`, answerID, req.UserID)
		if err != nil {
			slog.Error("failed to insert response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record response")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record response")
		return
	}

	slog.Info("response recorded", "survey_id", surveyID, "answers", len(req.AnswerIDs))

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "Response recorded"})
}
