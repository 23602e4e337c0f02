// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseConsoleFlags returns the console's settings and ParseBackendFlags those
of the stand-in Survey API:

	cfg, err := cliparse.ParseConsoleFlags(os.Args[1:])

# CLI Flags

Console:

	-p          Server port
	-api        Survey API base URL
	-timeout    Survey API request timeout
	-rps        Survey API requests per second (0 = unlimited)
	-draft-ttl  How long an untouched draft is kept

Stand-in:

	-p  Server port
	-d  Database URL
	-t  Database type (sqlite or postgres)

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	SURVEY_API_URL      → -api
	SURVEY_API_TIMEOUT  → -timeout
	SURVEY_API_RPS      → -rps
	DRAFT_TTL           → -draft-ttl
	DRAFT_CAPACITY
	RESULTS_CACHE_SIZE
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t

CLI flags take precedence over environment variables. LoadDotEnv fills the
environment from a .env file first, without overriding variables that are
already set.

# Validation

  - durations and SURVEY_API_RPS must not be negative
  - DATABASE_URL must be provided to the stand-in
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
