// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/triangle/models"
	"github.com/danielhkuo/triangle/testutil"
)

func TestCreateSurvey(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(conn)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"valid survey", models.CreateSurveyRequest{Title: "Picnic", Description: "Summer outing"}, http.StatusCreated},
		{"no description", models.CreateSurveyRequest{Title: "Picnic"}, http.StatusCreated},
		{"missing title", models.CreateSurveyRequest{Description: "no title"}, http.StatusBadRequest},
		{"blank title", models.CreateSurveyRequest{Title: "   "}, http.StatusBadRequest},
		{"invalid json", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/surveys", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CreateSurvey(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateSurveyResponse
				testutil.AssertJSON(t, w, &resp)
				assert.NotEmpty(t, resp.SurveyID)
			}
		})
	}

	assert.Equal(t, 2, testutil.CountRows(t, conn, "survey"))
}

func TestCreateQuestion_AppendsInOrder(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(conn)
	surveyID := testutil.CreateTestSurvey(t, conn, "Picnic")

	var ids []string
	for _, text := range []string{"When?", "Where?", "Who brings food?"} {
		req := testutil.MakeRequest("POST", "/questions/"+surveyID, models.CreateQuestionRequest{QuestionText: text}, nil)
		req = mux.SetURLVars(req, map[string]string{"survey_id": surveyID})
		w := httptest.NewRecorder()

		handler.CreateQuestion(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.CreateQuestionResponse
		testutil.AssertJSON(t, w, &resp)
		require.NotEmpty(t, resp.QuestionID)
		ids = append(ids, resp.QuestionID)
	}

	rows, err := conn.Query("SELECT id FROM question WHERE survey_id = $1 ORDER BY position", surveyID)
	require.NoError(t, err)
	defer rows.Close()

	var stored []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		stored = append(stored, id)
	}
	assert.Equal(t, ids, stored)
}

func TestCreateQuestion_Errors(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(conn)
	surveyID := testutil.CreateTestSurvey(t, conn, "Picnic")

	tests := []struct {
		name           string
		surveyID       string
		body           interface{}
		expectedStatus int
	}{
		{"unknown survey", "nope", models.CreateQuestionRequest{QuestionText: "When?"}, http.StatusNotFound},
		{"empty text", surveyID, models.CreateQuestionRequest{}, http.StatusBadRequest},
		{"missing path id", "", models.CreateQuestionRequest{QuestionText: "When?"}, http.StatusBadRequest},
		{"invalid json", surveyID, 42, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/questions/"+tt.surveyID, tt.body, nil)
			req = mux.SetURLVars(req, map[string]string{"survey_id": tt.surveyID})
			w := httptest.NewRecorder()

			handler.CreateQuestion(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	assert.Equal(t, 0, testutil.CountRows(t, conn, "question"))
}

func TestCreateAnswer(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(conn)
	surveyID := testutil.CreateTestSurvey(t, conn, "Picnic")
	questionID := testutil.AddTestQuestion(t, conn, surveyID, 0, "When?")

	for _, text := range []string{"Saturday", "Sunday"} {
		req := testutil.MakeRequest("POST", "/answers/"+questionID, models.CreateAnswerRequest{AnswerText: text}, nil)
		req = mux.SetURLVars(req, map[string]string{"question_id": questionID})
		w := httptest.NewRecorder()

		handler.CreateAnswer(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.CreateAnswerResponse
		testutil.AssertJSON(t, w, &resp)
		assert.NotEmpty(t, resp.AnswerID)
	}

	var maxPosition int
	require.NoError(t, conn.QueryRow("SELECT MAX(position) FROM answer_option WHERE question_id = $1", questionID).Scan(&maxPosition))
	assert.Equal(t, 1, maxPosition)

	t.Run("unknown question", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/answers/nope", models.CreateAnswerRequest{AnswerText: "x"}, nil)
		req = mux.SetURLVars(req, map[string]string{"question_id": "nope"})
		w := httptest.NewRecorder()

		handler.CreateAnswer(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("empty text", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/answers/"+questionID, models.CreateAnswerRequest{}, nil)
		req = mux.SetURLVars(req, map[string]string{"question_id": questionID})
		w := httptest.NewRecorder()

		handler.CreateAnswer(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSendEmails(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewSurveyHandler(conn)
	surveyID := testutil.CreateTestSurvey(t, conn, "Picnic")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"known survey", models.SendEmailsRequest{SurveyID: surveyID}, http.StatusAccepted},
		{"unknown survey", models.SendEmailsRequest{SurveyID: "nope"}, http.StatusNotFound},
		{"missing survey id", models.SendEmailsRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/send-emails", tt.body, nil)
			w := httptest.NewRecorder()

			handler.SendEmails(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	assert.Equal(t, 1, testutil.CountRows(t, conn, "notification"))
}

func TestCreateSurvey_DatabaseError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO survey").
		WithArgs(sqlmock.AnyArg(), "Picnic", "").
		WillReturnError(assert.AnError)

	handler := NewSurveyHandler(conn)
	req := testutil.MakeRequest("POST", "/surveys", models.CreateSurveyRequest{Title: "Picnic"}, nil)
	w := httptest.NewRecorder()

	handler.CreateSurvey(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateQuestion_InsertFailureRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM survey").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(position\\), -1\\) \\+ 1 FROM question").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(0))
	mock.ExpectExec("INSERT INTO question").
		WithArgs(sqlmock.AnyArg(), "s1", 0, "When?").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	handler := NewSurveyHandler(conn)
	req := testutil.MakeRequest("POST", "/questions/s1", models.CreateQuestionRequest{QuestionText: "When?"}, nil)
	req = mux.SetURLVars(req, map[string]string{"survey_id": "s1"})
	w := httptest.NewRecorder()

	handler.CreateQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
