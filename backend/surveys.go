// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/danielhkuo/triangle/middleware"
	"github.com/danielhkuo/triangle/models"
)

// SurveyHandler serves the create side of the Survey API.
type SurveyHandler struct {
	db *sql.DB
}

func NewSurveyHandler(db *sql.DB) *SurveyHandler {
	return &SurveyHandler{db: db}
}

// CreateSurvey handles POST /surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	surveyID := uuid.NewString()
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO survey (id, title, description)
		VALUES ($1, $2, $3)
	`, surveyID, req.Title, req.Description)

	if err != nil {
		slog.Error("failed to insert survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	slog.Info("survey created", "survey_id", surveyID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSurveyResponse{SurveyID: surveyID})
}

// CreateQuestion handles POST /questions/{survey_id}
// Questions are appended after the survey's current last question.
func (h *SurveyHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["survey_id"]
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey_id is required")
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.QuestionText) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionText is required")
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Check the parent survey exists
	var exists int
	err = tx.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM survey WHERE id = $1", surveyID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}

	var position int
	err = tx.QueryRowContext(r.Context(), `
		SELECT COALESCE(MAX(position), -1) + 1 FROM question WHERE survey_id = $1
	`, surveyID).Scan(&position)
	if err != nil {
		slog.Error("failed to compute question position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questionID := uuid.NewString()
	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO question (id, survey_id, position, question_text)
		VALUES ($1, $2, $3, $4)
	`, questionID, surveyID, position, req.QuestionText)
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "survey_id", surveyID, "question_id", questionID, "position", position)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{QuestionID: questionID})
}

// CreateAnswer handles POST /answers/{question_id}
func (h *SurveyHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["question_id"]
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	var req models.CreateAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.AnswerText) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answerText is required")
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM question WHERE id = $1", questionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	var position int
	err = tx.QueryRowContext(r.Context(), `
		SELECT COALESCE(MAX(position), -1) + 1 FROM answer_option WHERE question_id = $1
	`, questionID).Scan(&position)
	if err != nil {
		slog.Error("failed to compute answer position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	answerID := uuid.NewString()
	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO answer_option (id, question_id, position, answer_text)
		VALUES ($1, $2, $3, $4)
	`, answerID, questionID, position, req.AnswerText)
	if err != nil {
		slog.Error("failed to insert answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create answer")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create answer")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAnswerResponse{AnswerID: answerID})
}

// SendEmails handles POST /send-emails
// Email delivery lives elsewhere; the request is recorded and acknowledged.
func (h *SurveyHandler) SendEmails(w http.ResponseWriter, r *http.Request) {
	var req models.SendEmailsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SurveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	err := surveyExists(r, h.db, req.SurveyID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO notification (id, survey_id)
		VALUES ($1, $2)
	`, uuid.NewString(), req.SurveyID)
	if err != nil {
		slog.Error("failed to record notification", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send emails")
		return
	}

	slog.Info("member notification requested", "survey_id", req.SurveyID)

	middleware.JSONResponse(w, http.StatusAccepted, models.MessageResponse{Message: "Emails queued"})
}

func surveyExists(r *http.Request, db *sql.DB, surveyID string) error {
	var id string
	return db.QueryRowContext(r.Context(), "SELECT id FROM survey WHERE id = $1", surveyID).Scan(&id)
}
