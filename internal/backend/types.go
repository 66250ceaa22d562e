// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "strconv"

// =============================================================================
// ENDPOINTS
// =============================================================================

// Endpoint paths served by the admin server.
const (
	PathTestChannel    = "/test_channel"
	PathTestOpenRouter = "/test_openrouter_api"
	PathTestGemini     = "/test_gemini_api"
	PathTestTelegram   = "/test_telegram_message"
	PathStats          = "/api/stats"
	PathSettings       = "/settings"
	PathManualScrape   = "/manual_scrape"
	PathDashboard      = "/"
	pathRegenerate     = "/regenerate_summary/"
	pathPostArticle    = "/post_article/"
	pathDeleteArticle  = "/delete_article/"
	pathArticleDetail  = "/article/"
	PathArticles       = "/articles"
)

// RegeneratePath returns the summary regeneration endpoint for an article.
func RegeneratePath(id int) string {
	return pathRegenerate + strconv.Itoa(id)
}

// PostArticlePath returns the publish endpoint for an article.
func PostArticlePath(id int) string {
	return pathPostArticle + strconv.Itoa(id)
}

// DeleteArticlePath returns the delete endpoint for an article.
func DeleteArticlePath(id int) string {
	return pathDeleteArticle + strconv.Itoa(id)
}

// ArticlePath returns the detail page of an article.
func ArticlePath(id int) string {
	return pathArticleDetail + strconv.Itoa(id)
}

// =============================================================================
// PAYLOADS
// =============================================================================

// TestResponse is the JSON body of every connectivity-test endpoint.
// On success Message (or ChatTitle for channel lookup) may be set; on
// failure Error may be set. Either may be absent.
type TestResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ChatTitle string `json:"chat_title,omitempty"`
}

// Redirect is the outcome of a navigational request. Location is empty
// when the server answered without redirecting.
type Redirect struct {
	StatusCode int
	Location   string
}

// ErrorBody is the JSON error shape returned by the API endpoints on 5xx.
type ErrorBody struct {
	Error string `json:"error"`
}
