// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package draft holds the survey an organizer is authoring and the rules it
// must meet before it can be submitted.
package draft

import (
	"errors"
	"fmt"
	"slices"

	"github.com/danielhkuo/triangle/models"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Question is a question being authored. Its index in Survey.Questions is its
// only identity until the backend assigns a question_id.
type Question struct {
	Text    string
	Answers []string
}

// Survey is the in-memory survey being authored.
type Survey struct {
	Title       string
	Description string
	Questions   []Question
}

// New returns a draft in its initial state: one empty question holding one
// empty answer slot, the way the creation form opens.
func New() *Survey {
	s := &Survey{}
	s.Reset()
	return s
}

// FromBody builds a draft from a console request body.
func FromBody(body models.DraftBody) *Survey {
	s := &Survey{
		Title:       body.Title,
		Description: body.Description,
		Questions:   make([]Question, 0, len(body.Questions)),
	}
	for _, q := range body.Questions {
		s.Questions = append(s.Questions, Question{
			Text:    q.Text,
			Answers: slices.Clone(q.Answers),
		})
	}
	return s
}

// Reset discards everything and returns the draft to its initial state.
func (s *Survey) Reset() {
	s.Title = ""
	s.Description = ""
	s.Questions = []Question{{Answers: []string{""}}}
}

func (s *Survey) SetTitle(title string) {
	s.Title = title
}

func (s *Survey) SetDescription(description string) {
	s.Description = description
}

// AddQuestion appends a question and returns its index. Without answers the
// question gets a single empty answer slot.
func (s *Survey) AddQuestion(text string, answers ...string) int {
	if len(answers) == 0 {
		answers = []string{""}
	}
	s.Questions = append(s.Questions, Question{
		Text:    text,
		Answers: slices.Clone(answers),
	})
	return len(s.Questions) - 1
}

// RemoveQuestion deletes the question at index i and compacts the list.
func (s *Survey) RemoveQuestion(i int) error {
	if err := s.checkQuestion(i); err != nil {
		return err
	}
	s.Questions = slices.Delete(s.Questions, i, i+1)
	return nil
}

func (s *Survey) SetQuestionText(i int, text string) error {
	if err := s.checkQuestion(i); err != nil {
		return err
	}
	s.Questions[i].Text = text
	return nil
}

// AddAnswer appends an answer to question q and returns its index.
func (s *Survey) AddAnswer(q int, text string) (int, error) {
	if err := s.checkQuestion(q); err != nil {
		return 0, err
	}
	s.Questions[q].Answers = append(s.Questions[q].Answers, text)
	return len(s.Questions[q].Answers) - 1, nil
}

// RemoveAnswer deletes answer a of question q. Removing the last answer is
// allowed; an empty answer list is rejected only by Validate.
func (s *Survey) RemoveAnswer(q, a int) error {
	if err := s.checkAnswer(q, a); err != nil {
		return err
	}
	s.Questions[q].Answers = slices.Delete(s.Questions[q].Answers, a, a+1)
	return nil
}

func (s *Survey) SetAnswerText(q, a int, text string) error {
	if err := s.checkAnswer(q, a); err != nil {
		return err
	}
	s.Questions[q].Answers[a] = text
	return nil
}

// AnswerCount is the total number of answers across all questions.
func (s *Survey) AnswerCount() int {
	n := 0
	for _, q := range s.Questions {
		n += len(q.Answers)
	}
	return n
}

// Clone returns a deep copy.
func (s *Survey) Clone() *Survey {
	c := &Survey{
		Title:       s.Title,
		Description: s.Description,
		Questions:   make([]Question, len(s.Questions)),
	}
	for i, q := range s.Questions {
		c.Questions[i] = Question{Text: q.Text, Answers: slices.Clone(q.Answers)}
	}
	return c
}

// Body converts the draft to its console wire form.
func (s *Survey) Body() models.DraftBody {
	body := models.DraftBody{
		Title:       s.Title,
		Description: s.Description,
		Questions:   make([]models.DraftQuestion, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		answers := slices.Clone(q.Answers)
		if answers == nil {
			answers = []string{}
		}
		body.Questions = append(body.Questions, models.DraftQuestion{Text: q.Text, Answers: answers})
	}
	return body
}

func (s *Survey) checkQuestion(i int) error {
	if i < 0 || i >= len(s.Questions) {
		return fmt.Errorf("question %d: %w", i, ErrIndexOutOfRange)
	}
	return nil
}

func (s *Survey) checkAnswer(q, a int) error {
	if err := s.checkQuestion(q); err != nil {
		return err
	}
	if a < 0 || a >= len(s.Questions[q].Answers) {
		return fmt.Errorf("question %d answer %d: %w", q, a, ErrIndexOutOfRange)
	}
	return nil
}
