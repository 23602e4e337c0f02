// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend implements a stand-in for the club's Survey API over SQL.

It exists so the console can be developed and tested end to end without
the production backend. Handlers follow the remote contract:

	POST /surveys                      {title, description}  → 201 {survey_id}
	POST /questions/{survey_id}        {questionText}        → 201 {question_id}
	POST /answers/{question_id}        {answerText}          → 201 {answer_id}
	POST /send-emails                  {surveyId}            → 202 {message}
	GET  /survey/{surveyId}/results                          → 200 {survey_results}
	POST /survey/{surveyId}/responses  {user_id, answer_ids} → 201 {message}

Identifiers are random UUID strings. Questions and answer options keep
their creation position, and the results mapping is emitted in that order
with the member ids behind every option.

Email delivery is out of scope: POST /send-emails records a notification
row and acknowledges it.
*/
package backend
