// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the console's HTTP request handlers.

# Handler Types

  - DraftHandler: authoring sessions and the draft editing operations
  - SurveyHandler: submission of a session draft or a one-shot draft body
  - ResultsHandler: the aggregated results view of a survey

Sessions live in a DraftStore, an in-memory LRU whose entries expire when
left untouched:

	store := handlers.NewDraftStore(cfg.DraftCapacity, cfg.DraftTTL)
	draftHandler := handlers.NewDraftHandler(store)

# Drafts

Questions and answers are addressed by their zero-based position; removal
closes the gap. Every mutation answers with the full draft.

	POST   /drafts                                   → CreateDraft
	PATCH  /drafts/{id}                              → UpdateDraft
	POST   /drafts/{id}/questions                    → AddQuestion
	DELETE /drafts/{id}/questions/{q}/answers/{a}    → RemoveAnswer

# Submission

	POST /drafts/{id}/submit → SubmitDraft
	POST /surveys            → CreateSurvey

A draft that fails validation is answered 400 with the offending fields
and nothing is sent. A failure anywhere in the creation sequence is
answered 502 "Error creating survey" and the draft is kept for another
attempt. On success the draft is reset, and the response carries
Location: /survey/{survey_id}.

# Results

	GET /survey/{surveyId}/results → GetResults

When the Survey API cannot be reached the last view shown for the survey
is served again with "stale": true.
*/
package handlers
