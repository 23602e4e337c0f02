// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package orchestrator creates a survey on the Survey API from a draft.

# Sequence

Plan lists the calls a draft needs, in the order they must happen:

	survey
	question[0]
	question[0].answer[0]
	question[0].answer[1]
	question[1]
	...
	notify

A question is only created once its survey has an id, and an answer once
its question has one. The member notification goes last, after every
question and answer exists. A draft with N questions and M answers takes
1 + N + M + 1 calls.

# Failure

The first failing call stops the run. Nothing is retried and nothing already
created is deleted; the returned *StepError names the failed step and
carries the ids created so far. Every such error matches ErrCreateFailed.

# Metrics

MustNewMetrics registers per-step latency, failures by step, created and
partially created surveys, and runs in progress.
*/
package orchestrator
