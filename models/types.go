package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Step kinds of the creation sequence
const (
	StepSurvey   = "survey"
	StepQuestion = "question"
	StepAnswer   = "answer"
	StepNotify   = "notify"
)

// Survey API request types

type CreateSurveyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateQuestionRequest struct {
	QuestionText string `json:"questionText"`
}

type CreateAnswerRequest struct {
	AnswerText string `json:"answerText"`
}

type SendEmailsRequest struct {
	SurveyID string `json:"surveyId"`
}

// user_id -> the answer options picked by that member
type RecordResponseRequest struct {
	UserID    string   `json:"user_id"`
	AnswerIDs []string `json:"answer_ids"`
}

// Survey API response types

type CreateSurveyResponse struct {
	SurveyID string `json:"survey_id"`
}

type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

type CreateAnswerResponse struct {
	AnswerID string `json:"answer_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Persisted records

type Survey struct {
	ID          string    `json:"survey_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Question struct {
	ID       string `json:"question_id"`
	SurveyID string `json:"survey_id"`
	Text     string `json:"question_text"`
}

// Results read path

type ResultAnswer struct {
	AnswerID      string   `json:"answer_id"`
	AnswerText    string   `json:"answer_text"`
	ResponseCount int      `json:"response_count"`
	UserIDs       []string `json:"user_ids,omitempty"`

	// HasCount is false when the backend omitted response_count.
	HasCount bool `json:"-"`
}

type ResultQuestion struct {
	QuestionID   string         `json:"-"`
	QuestionText string         `json:"question_text"`
	Answers      []ResultAnswer `json:"answers"`
}

// SurveyResults is the question_id -> ResultQuestion mapping in backend order.
// It encodes as a JSON object whose keys keep that order.
type SurveyResults []ResultQuestion

func (rs SurveyResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, q := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(q.QuestionID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(q)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type SurveyResultsResponse struct {
	SurveyResults SurveyResults `json:"survey_results"`
}

// Console types

type DraftQuestion struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

type DraftBody struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []DraftQuestion `json:"questions"`
}

type DraftResponse struct {
	DraftID string    `json:"draft_id"`
	Draft   DraftBody `json:"draft"`
}

type UpdateDraftRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type SubmitResponse struct {
	SurveyID string `json:"survey_id"`
	Location string `json:"location"`
}

type AnswerTally struct {
	AnswerID      string `json:"answer_id"`
	AnswerText    string `json:"answer_text"`
	ResponseCount int    `json:"response_count"`
}

type QuestionTally struct {
	QuestionID   string        `json:"question_id"`
	QuestionText string        `json:"question_text"`
	Answers      []AnswerTally `json:"answers"`
}

type ResultsView struct {
	SurveyID      string          `json:"survey_id"`
	ResponseCount int             `json:"response_count"`
	Questions     []QuestionTally `json:"questions"`
	FetchedAt     time.Time       `json:"fetched_at"`
	Stale         bool            `json:"stale,omitempty"`
}

// Error response

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}
