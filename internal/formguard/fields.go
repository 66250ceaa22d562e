// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package formguard

// FieldKind selects how a field is edited and validated.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindBool
	KindChoice
)

// Field describes one form input.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Choices  []string
	Min      int
}

// Settings field names.
const (
	FieldChannelID         = "channel_id"
	FieldPostingEnabled    = "posting_enabled"
	FieldPostingInterval   = "posting_interval"
	FieldMaxArticlesPerDay = "max_articles_per_day"
	FieldCustomHashtags    = "custom_hashtags"
	FieldSummaryStyle      = "summary_style"
	FieldAIProvider        = "ai_provider"
)

// SettingsFields is the bot settings form in display order.
var SettingsFields = []Field{
	{Name: FieldChannelID, Label: "Channel ID", Kind: KindText},
	{Name: FieldPostingEnabled, Label: "Posting enabled", Kind: KindBool},
	{Name: FieldPostingInterval, Label: "Posting interval (min)", Kind: KindNumber, Required: true, Min: 1},
	{Name: FieldMaxArticlesPerDay, Label: "Max articles per day", Kind: KindNumber, Required: true, Min: 1},
	{Name: FieldCustomHashtags, Label: "Custom hashtags", Kind: KindText},
	{Name: FieldSummaryStyle, Label: "Summary style", Kind: KindChoice, Required: true, Choices: []string{"engaging", "formal", "casual"}},
	{Name: FieldAIProvider, Label: "AI provider", Kind: KindChoice, Required: true, Choices: []string{"openrouter", "gemini"}},
}

// DefaultSettings are the server-side defaults of a fresh bot.
func DefaultSettings() Values {
	return Values{
		FieldChannelID:         "",
		FieldPostingEnabled:    "",
		FieldPostingInterval:   "60",
		FieldMaxArticlesPerDay: "100",
		FieldCustomHashtags:    "",
		FieldSummaryStyle:      "formal",
		FieldAIProvider:        "openrouter",
	}
}
