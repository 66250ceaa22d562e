// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the news bot admin server.
//
// The client is a thin transport: it knows how to issue form-encoded
// requests, decode JSON bodies and report redirects, while the payload
// types for each endpoint family live next to the code that interprets
// them (connectivity tests, dashboard stats, confirmed actions).
//
// # Key Types
//
//   - Client: HTTP client bound to one server base URL
//   - ClientError: Typed error with an ErrorType for handling
//   - TestResponse: JSON body returned by the connectivity-test endpoints
//   - Redirect: Result of a navigational (form submit) request
//
// # Usage
//
//	client := backend.NewClient("http://127.0.0.1:5000")
//	var resp backend.TestResponse
//	err := client.DecodeJSON(ctx, http.MethodGet, backend.PathTestGemini, nil, &resp)
//
// The client never follows redirects and sets no request timeout; a call
// that never completes blocks until its context is done.
package backend
