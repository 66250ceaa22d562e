// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conntest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jeranaias/newsbot-console/internal/backend"
)

// Surface names.
const (
	SurfaceChannel = "channel"
	SurfaceAPI     = "api"
)

// Target identifies one of the connectivity-test controls.
type Target int

const (
	ChannelLookup Target = iota
	MessagingTest
	ProviderA
	ProviderB
)

// Targets lists every control in display order.
func Targets() []Target {
	return []Target{ChannelLookup, ProviderA, ProviderB, MessagingTest}
}

// ParseTarget maps a CLI name to a Target.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "channel", "channel-lookup":
		return ChannelLookup, nil
	case "telegram", "message", "messaging":
		return MessagingTest, nil
	case "openrouter":
		return ProviderA, nil
	case "gemini":
		return ProviderB, nil
	}
	return 0, fmt.Errorf("unknown test target %q (want channel, openrouter, gemini or telegram)", name)
}

// String returns the CLI name of the target.
func (t Target) String() string {
	switch t {
	case ChannelLookup:
		return "channel"
	case MessagingTest:
		return "telegram"
	case ProviderA:
		return "openrouter"
	case ProviderB:
		return "gemini"
	default:
		return "unknown"
	}
}

// Label is the idle button label.
func (t Target) Label() string {
	switch t {
	case ChannelLookup:
		return "Test channel"
	case MessagingTest:
		return "Send test message"
	case ProviderA:
		return "Test OpenRouter"
	case ProviderB:
		return "Test Gemini"
	default:
		return "Test"
	}
}

// ProgressText is shown on the surface while the request is in flight.
func (t Target) ProgressText() string {
	switch t {
	case ChannelLookup:
		return "Looking up channel..."
	case MessagingTest:
		return "Sending test message..."
	case ProviderA:
		return "Checking OpenRouter API..."
	case ProviderB:
		return "Checking Gemini API..."
	default:
		return "Testing..."
	}
}

// Surface returns the name of the shared result surface the target renders into.
func (t Target) Surface() string {
	if t == ChannelLookup {
		return SurfaceChannel
	}
	return SurfaceAPI
}

// Method returns the HTTP method of the target's endpoint.
func (t Target) Method() string {
	switch t {
	case ChannelLookup, MessagingTest:
		return http.MethodPost
	default:
		return http.MethodGet
	}
}

// Path returns the endpoint path of the target.
func (t Target) Path() string {
	switch t {
	case ChannelLookup:
		return backend.PathTestChannel
	case MessagingTest:
		return backend.PathTestTelegram
	case ProviderA:
		return backend.PathTestOpenRouter
	case ProviderB:
		return backend.PathTestGemini
	default:
		return ""
	}
}

func (t Target) successFallback() string {
	switch t {
	case MessagingTest:
		return "Test message sent!"
	case ProviderA:
		return "OpenRouter API is reachable"
	case ProviderB:
		return "Gemini API is reachable"
	default:
		return "OK"
	}
}

func (t Target) failureFallback() string {
	switch t {
	case ChannelLookup:
		return "Channel lookup failed"
	case MessagingTest:
		return "Send failed"
	default:
		return "Check failed"
	}
}
