// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conntest

import (
	"context"
	"log"

	"github.com/jeranaias/newsbot-console/internal/backend"
)

// Execute sends req through client and converts the answer into an Outcome.
// Transport failures are logged with their cause and reported generically.
func Execute(ctx context.Context, client *backend.Client, req Request) Outcome {
	var resp backend.TestResponse
	if err := client.DecodeJSON(ctx, req.Method, req.Path, req.Form, &resp); err != nil {
		log.Printf("CONNTEST_TRANSPORT_FAILED | target=%s path=%s error=%v", req.Target, req.Path, err)
		return Outcome{Transport: true, Error: err.Error()}
	}

	log.Printf("CONNTEST_SETTLED | target=%s success=%v", req.Target, resp.Success)
	return FromResponse(resp)
}

// FromResponse maps a decoded test response to an Outcome.
func FromResponse(resp backend.TestResponse) Outcome {
	return Outcome{
		Success:   resp.Success,
		Message:   resp.Message,
		Error:     resp.Error,
		ChatTitle: resp.ChatTitle,
	}
}
