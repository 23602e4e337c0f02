// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the stand-in Survey API's schema.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite and PostgreSQL; Driver maps the configured
database type to its driver name.

# Tables

  - survey: title and description
  - question: question text and position within its survey
  - answer_option: answer text and position within its question
  - response: one row per member per picked answer option
  - notification: member notification requests

# Relationships

	survey 1──* question 1──* answer_option 1──* response
	survey 1──* notification

All foreign keys use ON DELETE CASCADE.
*/
package db
