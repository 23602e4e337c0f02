// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of both binaries.

# Console

NewRouter builds the console's gorilla/mux router:

	r := router.NewRouter(router.Dependencies{
		Drafts:    store,
		Submitter: orch,
		Results:   viewer,
	})

Endpoints:

	GET    /health
	GET    /metrics
	POST   /drafts
	GET    /drafts/{id}
	PATCH  /drafts/{id}
	DELETE /drafts/{id}
	POST   /drafts/{id}/questions
	PUT    /drafts/{id}/questions/{q}
	DELETE /drafts/{id}/questions/{q}
	POST   /drafts/{id}/questions/{q}/answers
	PUT    /drafts/{id}/questions/{q}/answers/{a}
	DELETE /drafts/{id}/questions/{q}/answers/{a}
	POST   /drafts/{id}/submit
	POST   /surveys
	GET    /survey/{surveyId}/results

Every route is counted by middleware.HTTPMetrics under its path template.

# Stand-in Survey API

NewBackendRouter serves the backend contract over a database:

	POST /surveys
	POST /questions/{survey_id}
	POST /answers/{question_id}
	POST /send-emails
	GET  /survey/{surveyId}/results
	POST /survey/{surveyId}/responses
*/
package router
