// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Triangle club console.

The console lets organizers author a survey, create it on the club's Survey
API and read back how members answered. It keeps no records of its own:
surveys, questions, answers and responses all live in the Survey API.

# Starting the Server

	go run . -api http://localhost:3001

A stand-in Survey API backed by SQLite or PostgreSQL lives in cmd/surveyd:

	go run ./cmd/surveyd -d "file:triangle.db"

# Configuration

Both binaries read flags, then environment variables, then a .env file in
the working directory.

Console settings:

  - PORT (-p): Server port (default: 3000)
  - SURVEY_API_URL (-api): Survey API base URL (default: http://localhost:3001)
  - SURVEY_API_TIMEOUT (-timeout): Per-request timeout (default: 10s)
  - SURVEY_API_RPS (-rps): Outgoing request pacing, 0 for none (default: 0)
  - DRAFT_TTL (-draft-ttl): How long an untouched draft is kept (default: 2h)
  - DRAFT_CAPACITY: Drafts held at once (default: 1024)
  - RESULTS_CACHE_SIZE: Surveys whose last results view is kept (default: 256)

# Architecture

  - draft: the survey being authored and its submission rules
  - orchestrator: the ordered creation sequence and member notification
  - results: aggregation of the results mapping into a view
  - surveyapi: HTTP client for the Survey API
  - handlers: console HTTP handlers
  - backend, db: the stand-in Survey API
  - router: route tables for both binaries
  - middleware: logging, metrics, CORS, JSON helpers
  - models: wire types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
