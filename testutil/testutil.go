// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/triangle/db"
)

// TestDBURL opens a private in-memory SQLite database with foreign keys on
const TestDBURL = "file::memory:?_pragma=foreign_keys(1)"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// CreateTestSurvey inserts a survey and returns its ID
func CreateTestSurvey(t *testing.T, conn *sql.DB, title string) string {
	t.Helper()

	surveyID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO survey (id, title, description)
		VALUES ($1, $2, 'A test survey')
	`, surveyID, title)
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}

	return surveyID
}

// AddTestQuestion adds a question at the given position and returns its ID
func AddTestQuestion(t *testing.T, conn *sql.DB, surveyID string, position int, text string) string {
	t.Helper()

	questionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO question (id, survey_id, position, question_text)
		VALUES ($1, $2, $3, $4)
	`, questionID, surveyID, position, text)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestAnswer adds an answer option at the given position and returns its ID
func AddTestAnswer(t *testing.T, conn *sql.DB, questionID string, position int, text string) string {
	t.Helper()

	answerID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO answer_option (id, question_id, position, answer_text)
		VALUES ($1, $2, $3, $4)
	`, answerID, questionID, position, text)
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}

	return answerID
}

// RecordTestResponse records that a member picked the given answer options
func RecordTestResponse(t *testing.T, conn *sql.DB, userID string, answerIDs ...string) {
	t.Helper()

	for _, answerID := range answerIDs {
		_, err := conn.Exec(`
			INSERT INTO response (answer_id, user_id)
			VALUES ($1, $2)
		`, answerID, userID)
		if err != nil {
			t.Fatalf("Failed to record test response: %v", err)
		}
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
