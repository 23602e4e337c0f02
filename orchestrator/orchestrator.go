// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/triangle/draft"
	"github.com/danielhkuo/triangle/models"
)

// ErrCreateFailed is the single failure every aborted sequence reports.
var ErrCreateFailed = errors.New("error creating survey")

var (
	errNoParent = errors.New("parent identifier not confirmed")
	errEmptyID  = errors.New("backend returned an empty identifier")
)

// Backend is the create side of the Survey API.
type Backend interface {
	CreateSurvey(ctx context.Context, req models.CreateSurveyRequest) (string, error)
	CreateQuestion(ctx context.Context, surveyID string, req models.CreateQuestionRequest) (string, error)
	CreateAnswer(ctx context.Context, questionID string, req models.CreateAnswerRequest) error
}

// Notifier asks the backend to email club members about a new survey.
type Notifier interface {
	SendEmails(ctx context.Context, surveyID string) error
}

// Created is what the backend holds after a run, complete or not.
type Created struct {
	SurveyID    string
	QuestionIDs []string
	Answers     int
	Notified    bool
}

// StepError reports the step that stopped a run. Records in Created stay in
// the backend; nothing is rolled back.
type StepError struct {
	Step    Step
	Created Created
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v: %s step failed: %v", ErrCreateFailed, e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrCreateFailed, e.Err}
}

// Partial reports whether the failed run left records behind.
func (e *StepError) Partial() bool {
	return e.Created.SurveyID != ""
}

type Dependencies struct {
	Backend  Backend
	Notifier Notifier
	Metrics  *Metrics
}

// Orchestrator turns a draft into persisted survey, question and answer
// records, one dependent call at a time.
type Orchestrator struct {
	backend  Backend
	notifier Notifier
	metrics  *Metrics
}

func New(deps Dependencies) (*Orchestrator, error) {
	if deps.Backend == nil {
		return nil, errors.New("backend is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("notifier is required")
	}
	return &Orchestrator{
		backend:  deps.Backend,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
	}, nil
}

// Submit validates the draft, runs the creation sequence and, on full
// success, resets the draft and returns the new survey_id. Validation
// failures return a *draft.ValidationError before any call is made.
func (o *Orchestrator) Submit(ctx context.Context, d *draft.Survey) (string, error) {
	if err := draft.Validate(d); err != nil {
		return "", err
	}
	created, err := o.Run(ctx, d)
	if err != nil {
		return "", err
	}
	d.Reset()
	return created.SurveyID, nil
}

// Run executes Plan(d) in order and halts on the first failing step.
func (o *Orchestrator) Run(ctx context.Context, d *draft.Survey) (Created, error) {
	o.metrics.runStarted()
	defer o.metrics.runFinished()

	var (
		created    Created
		questionID string
	)

	for _, step := range Plan(d) {
		start := time.Now()
		err := ctx.Err()
		if err == nil {
			err = o.execute(ctx, step, &created, &questionID)
		}
		if err != nil {
			o.metrics.observeStep(step.Kind, "failed", time.Since(start))
			o.metrics.incAborted(step.Kind, created.SurveyID != "")
			slog.Error("survey creation aborted",
				"step", step.String(),
				"survey_id", created.SurveyID,
				"questions_created", len(created.QuestionIDs),
				"answers_created", created.Answers,
				"error", err,
			)
			return created, &StepError{Step: step, Created: created, Err: err}
		}
		o.metrics.observeStep(step.Kind, "ok", time.Since(start))
	}

	o.metrics.incCreated()
	slog.Info("survey created",
		"survey_id", created.SurveyID,
		"questions", len(created.QuestionIDs),
		"answers", created.Answers,
	)
	return created, nil
}

func (o *Orchestrator) execute(ctx context.Context, step Step, created *Created, questionID *string) error {
	switch step.Kind {
	case models.StepSurvey:
		id, err := o.backend.CreateSurvey(ctx, models.CreateSurveyRequest{
			Title:       step.Text,
			Description: step.Description,
		})
		if err != nil {
			return err
		}
		if id == "" {
			return errEmptyID
		}
		created.SurveyID = id

	case models.StepQuestion:
		if created.SurveyID == "" {
			return errNoParent
		}
		id, err := o.backend.CreateQuestion(ctx, created.SurveyID, models.CreateQuestionRequest{QuestionText: step.Text})
		if err != nil {
			return err
		}
		if id == "" {
			return errEmptyID
		}
		*questionID = id
		created.QuestionIDs = append(created.QuestionIDs, id)

	case models.StepAnswer:
		if *questionID == "" {
			return errNoParent
		}
		if err := o.backend.CreateAnswer(ctx, *questionID, models.CreateAnswerRequest{AnswerText: step.Text}); err != nil {
			return err
		}
		created.Answers++

	case models.StepNotify:
		if created.SurveyID == "" {
			return errNoParent
		}
		if err := o.notifier.SendEmails(ctx, created.SurveyID); err != nil {
			return err
		}
		created.Notified = true

	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
	return nil
}
