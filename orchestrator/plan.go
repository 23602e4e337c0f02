// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orchestrator

import (
	"fmt"

	"github.com/danielhkuo/triangle/draft"
	"github.com/danielhkuo/triangle/models"
)

// Step is one remote call of the creation sequence. Question and Answer are
// draft indexes, -1 where they do not apply.
type Step struct {
	Kind        string
	Question    int
	Answer      int
	Text        string
	Description string
}

func (s Step) String() string {
	switch s.Kind {
	case models.StepQuestion:
		return fmt.Sprintf("question[%d]", s.Question)
	case models.StepAnswer:
		return fmt.Sprintf("question[%d].answer[%d]", s.Question, s.Answer)
	default:
		return s.Kind
	}
}

// Plan flattens a draft into the exact call order: the survey, then each
// question followed by its answers, then the notification.
// It always holds 1 + N + sum(M_i) + 1 steps.
func Plan(d *draft.Survey) []Step {
	steps := make([]Step, 0, 2+len(d.Questions)+d.AnswerCount())
	steps = append(steps, Step{
		Kind:        models.StepSurvey,
		Question:    -1,
		Answer:      -1,
		Text:        d.Title,
		Description: d.Description,
	})
	for qi, q := range d.Questions {
		steps = append(steps, Step{Kind: models.StepQuestion, Question: qi, Answer: -1, Text: q.Text})
		for ai, a := range q.Answers {
			steps = append(steps, Step{Kind: models.StepAnswer, Question: qi, Answer: ai, Text: a})
		}
	}
	steps = append(steps, Step{Kind: models.StepNotify, Question: -1, Answer: -1})
	return steps
}
