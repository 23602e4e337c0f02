// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared helpers for tests.

SetupTestDB opens a private in-memory SQLite database with the stand-in
schema and closes it when the test ends. The fixture helpers insert
surveys, questions, answer options and member responses directly:

	conn := testutil.SetupTestDB(t)
	surveyID := testutil.CreateTestSurvey(t, conn, "Picnic")
	q := testutil.AddTestQuestion(t, conn, surveyID, 0, "When?")
	a := testutil.AddTestAnswer(t, conn, q, 0, "Saturday")
	testutil.RecordTestResponse(t, conn, "u1", a)

MakeRequest, AssertStatus and AssertJSON cover the request/response
plumbing shared by handler tests.
*/
package testutil
