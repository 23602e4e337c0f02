// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package results turns the Survey API results mapping into the view shown
// to organizers.
package results

import (
	"time"

	"github.com/danielhkuo/triangle/models"
)

// respondentSet accumulates distinct user ids across a whole survey.
type respondentSet map[string]struct{}

func (s respondentSet) add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
}

// Aggregate builds the results view for one fetch. ResponseCount is the
// number of distinct user ids over every answer of every question, so a
// member who answered several questions counts once. Question and answer
// order follow the backend.
//
// An answer's tally is the backend's response_count when present, otherwise
// the number of distinct user ids recorded on that answer.
func Aggregate(surveyID string, rs models.SurveyResults) models.ResultsView {
	respondents := respondentSet{}
	view := models.ResultsView{
		SurveyID:  surveyID,
		Questions: make([]models.QuestionTally, 0, len(rs)),
		FetchedAt: time.Now(),
	}

	for _, q := range rs {
		tally := models.QuestionTally{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
			Answers:      make([]models.AnswerTally, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			respondents.add(a.UserIDs...)
			tally.Answers = append(tally.Answers, models.AnswerTally{
				AnswerID:      a.AnswerID,
				AnswerText:    a.AnswerText,
				ResponseCount: answerCount(a),
			})
		}
		view.Questions = append(view.Questions, tally)
	}

	view.ResponseCount = len(respondents)
	return view
}

func answerCount(a models.ResultAnswer) int {
	if a.HasCount {
		return max(a.ResponseCount, 0)
	}
	own := respondentSet{}
	own.add(a.UserIDs...)
	return len(own)
}
