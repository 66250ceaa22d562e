// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/newsbot-console/internal/backend"
)

// =============================================================================
// ARTICLE VIEW
// =============================================================================

// articleView selects one article by ID for the per-article actions.
type articleView struct {
	input textinput.Model
	id    int
}

func newArticleView() articleView {
	ti := textinput.New()
	ti.Placeholder = "article id"
	ti.Prompt = "# "
	ti.CharLimit = 10
	ti.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	return articleView{input: ti}
}

// setID selects id and shows it in the input. Zero clears the selection.
func (a *articleView) setID(id int) {
	a.id = id
	if id > 0 {
		a.input.SetValue(strconv.Itoa(id))
	} else {
		a.input.SetValue("")
	}
}

func (a *articleView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	id, err := strconv.Atoi(strings.TrimSpace(a.input.Value()))
	if err != nil || id <= 0 {
		a.id = 0
	} else {
		a.id = id
	}
	return cmd
}

// link is the server URL of the selected article.
func (a articleView) link(baseURL string) string {
	if a.id <= 0 {
		return ""
	}
	return baseURL + backend.ArticlePath(a.id)
}
