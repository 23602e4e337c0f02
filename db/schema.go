// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed by the stand-in Survey API.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Driver maps a configured database type to its database/sql driver name.
func Driver(databaseType string) (string, error) {
	switch databaseType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// Works on both SQLite and PostgreSQL.
const schema = `
-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Questions, ordered by position within a survey
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    question_text TEXT NOT NULL,
    UNIQUE (survey_id, position)
);

CREATE INDEX IF NOT EXISTS idx_question_survey_id ON question(survey_id);

-- Answer options, ordered by position within a question
CREATE TABLE IF NOT EXISTS answer_option (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    answer_text TEXT NOT NULL,
    UNIQUE (question_id, position)
);

CREATE INDEX IF NOT EXISTS idx_answer_option_question_id ON answer_option(question_id);

-- Member responses: one row per picked option
CREATE TABLE IF NOT EXISTS response (
    answer_id TEXT NOT NULL REFERENCES answer_option(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (answer_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_response_user_id ON response(user_id);

-- Member notification requests
CREATE TABLE IF NOT EXISTS notification (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    requested_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notification_survey_id ON notification(survey_id);
`
