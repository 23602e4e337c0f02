// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types of the Survey API and the console.

# Survey API

Request bodies, with the remote field names:

  - CreateSurveyRequest: title, description
  - CreateQuestionRequest: questionText
  - CreateAnswerRequest: answerText
  - SendEmailsRequest: surveyId
  - RecordResponseRequest: user_id, answer_ids

Responses:

  - CreateSurveyResponse: survey_id
  - CreateQuestionResponse: question_id
  - CreateAnswerResponse: answer_id
  - SurveyResultsResponse: survey_results

SurveyResults is the question_id → question mapping of the results
endpoint. It is kept as an ordered slice and encodes as a JSON object whose
keys follow that order.

# Console

  - DraftBody, DraftQuestion: a draft on the wire
  - DraftResponse: draft_id and the current draft
  - SubmitResponse: survey_id and the results location
  - ResultsView: the aggregated results shown to organizers
  - ErrorResponse: error, message and, for invalid drafts, fields
*/
package models
