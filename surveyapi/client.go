// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package surveyapi is the HTTP client for the club's Survey API.
package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/triangle/models"
)

var (
	ErrMissingID       = errors.New("response carries no identifier")
	ErrInvalidResponse = errors.New("invalid response body")
)

// StatusError is returned for any non-2xx answer from the Survey API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client

	// RequestsPerSecond paces outgoing calls; zero means unlimited.
	RequestsPerSecond float64
}

// Client talks to the remote Survey API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a new Survey API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// CreateSurvey handles POST /surveys and returns the new survey_id.
func (c *Client) CreateSurvey(ctx context.Context, req models.CreateSurveyRequest) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/surveys", req)
	if err != nil {
		return "", err
	}
	return extractID(body, "survey_id")
}

// CreateQuestion handles POST /questions/{survey_id} and returns the new question_id.
func (c *Client) CreateQuestion(ctx context.Context, surveyID string, req models.CreateQuestionRequest) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/questions/"+url.PathEscape(surveyID), req)
	if err != nil {
		return "", err
	}
	return extractID(body, "question_id")
}

// CreateAnswer handles POST /answers/{question_id}. Only success matters.
func (c *Client) CreateAnswer(ctx context.Context, questionID string, req models.CreateAnswerRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/answers/"+url.PathEscape(questionID), req)
	return err
}

// SendEmails asks the backend to email every club member about the survey.
func (c *Client) SendEmails(ctx context.Context, surveyID string) error {
	_, err := c.do(ctx, http.MethodPost, "/send-emails", models.SendEmailsRequest{SurveyID: surveyID})
	return err
}

// GetResults handles GET /survey/{surveyId}/results.
func (c *Client) GetResults(ctx context.Context, surveyID string) (models.SurveyResults, error) {
	body, err := c.do(ctx, http.MethodGet, "/survey/"+url.PathEscape(surveyID)+"/results", nil)
	if err != nil {
		return nil, err
	}
	return decodeResults(body)
}

// RecordResponse stores one member's picks. The console never calls it; it is
// used to seed results against the stand-in backend.
func (c *Client) RecordResponse(ctx context.Context, surveyID string, req models.RecordResponseRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/survey/"+url.PathEscape(surveyID)+"/responses", req)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

// extractID reads an identifier that the backend may send as a string or a number.
func extractID(body []byte, field string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%s: %w", field, ErrInvalidResponse)
	}
	if id := idString(gjson.GetBytes(body, field)); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%s: %w", field, ErrMissingID)
}

func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	return gjson.GetBytes(body, "error").String()
}
