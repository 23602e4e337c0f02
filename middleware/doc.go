// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.HandleFunc("/health", middleware.WithLogging(handler)).Methods("GET")

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# Metrics

HTTPMetrics counts requests and observes latency per route template:

	m := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
	r.Use(m.Middleware)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(r),
	}

Allows methods GET, POST, PUT, PATCH, DELETE, OPTIONS and exposes the
Location header set by survey submission.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.FieldErrorResponse(w, http.StatusBadRequest, "message", fields)

Parse JSON request bodies:

	var req models.TextRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
