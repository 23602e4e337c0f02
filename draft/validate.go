// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draft

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/triangle/models"
)

// ValidationError lists every field that blocks submission.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		switch f.Rule {
		case "min":
			parts = append(parts, f.Field+" needs at least one entry")
		default:
			parts = append(parts, f.Field+" is required")
		}
	}
	return "invalid survey draft: " + strings.Join(parts, ", ")
}

type submission struct {
	Title     string               `json:"title" validate:"required"`
	Questions []submissionQuestion `json:"questions" validate:"dive"`
}

type submissionQuestion struct {
	Text    string   `json:"text" validate:"required"`
	Answers []string `json:"answers" validate:"min=1,dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the draft before any network call: a non-blank title, and
// for every question a non-blank text and at least one non-blank answer.
// Whitespace-only text counts as empty. The description is optional.
func Validate(s *Survey) error {
	sub := submission{
		Title:     strings.TrimSpace(s.Title),
		Questions: make([]submissionQuestion, len(s.Questions)),
	}
	for i, q := range s.Questions {
		answers := make([]string, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = strings.TrimSpace(a)
		}
		sub.Questions[i] = submissionQuestion{Text: strings.TrimSpace(q.Text), Answers: answers}
	}

	err := validate.Struct(sub)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		ve.Fields = append(ve.Fields, models.FieldError{Field: field, Rule: fe.Tag()})
	}
	return ve
}
