// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with request_id (from chi's RequestID middleware), status,
bytes and duration_ms. 5xx responses log at error level.

# Admin Sessions

API routes answer 401 without a session; admin pages redirect to /login:

	mux.HandleFunc("GET /api/admin/dashboard",
		middleware.WithLogging(middleware.RequireAdmin(authn, h.Dashboard)))

	mux.HandleFunc("GET /admin",
		middleware.WithLogging(middleware.RequireAdminPage(authn, pages.Dashboard)))

The session is available downstream via SessionFromContext.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.ContactInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

CORS is handled by go-chi/cors in the router.
*/
package middleware
