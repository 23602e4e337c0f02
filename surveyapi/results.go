// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package surveyapi

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/danielhkuo/triangle/models"
)

// decodeResults walks the question_id -> question mapping in document order.
// The mapping may sit under "survey_results" or be the whole body. Each
// answer's respondents arrive as "user_ids" (array) or "user_id" (scalar).
func decodeResults(body []byte) (models.SurveyResults, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("results: %w", ErrInvalidResponse)
	}

	root := gjson.ParseBytes(body)
	mapping := root
	if env := root.Get("survey_results"); env.Exists() {
		mapping = env
	}
	if mapping.Type == gjson.Null {
		return models.SurveyResults{}, nil
	}
	if !mapping.IsObject() {
		return nil, fmt.Errorf("results mapping is not an object: %w", ErrInvalidResponse)
	}

	results := models.SurveyResults{}
	var decodeErr error
	mapping.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			decodeErr = fmt.Errorf("question %s: %w", key.String(), ErrInvalidResponse)
			return false
		}
		q := models.ResultQuestion{
			QuestionID:   key.String(),
			QuestionText: value.Get("question_text").String(),
			Answers:      []models.ResultAnswer{},
		}
		value.Get("answers").ForEach(func(_, a gjson.Result) bool {
			q.Answers = append(q.Answers, decodeAnswer(a))
			return true
		})
		results = append(results, q)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return results, nil
}

func decodeAnswer(a gjson.Result) models.ResultAnswer {
	ans := models.ResultAnswer{
		AnswerID:   idString(a.Get("answer_id")),
		AnswerText: a.Get("answer_text").String(),
	}
	if count := a.Get("response_count"); count.Exists() && count.Type != gjson.Null {
		ans.ResponseCount = int(count.Int())
		ans.HasCount = true
	}

	if ids := a.Get("user_ids"); ids.IsArray() {
		for _, id := range ids.Array() {
			if s := idString(id); s != "" {
				ans.UserIDs = append(ans.UserIDs, s)
			}
		}
	}
	if id := idString(a.Get("user_id")); id != "" {
		ans.UserIDs = append(ans.UserIDs, id)
	}
	return ans
}

func idString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Number:
		return v.Raw
	}
	return ""
}
