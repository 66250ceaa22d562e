// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoForm is returned when a page has no form posting to the wanted path.
var ErrNoForm = errors.New("no matching form on page")

// FetchForm loads the HTML page at path and returns what its form would
// submit unchanged. The settings page has no JSON twin, so this is how the
// console learns the stored values.
func (c *Client) FetchForm(ctx context.Context, path string) (url.Values, error) {
	resp, err := c.doAccept(ctx, http.MethodGet, path, nil, "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	values, err := ParseForm(resp.Body, path)
	if err != nil {
		return nil, &ClientError{
			Type:       ErrTypeInvalidResponse,
			Message:    "cannot read form on " + path,
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}
	return values, nil
}

// ParseForm finds the first form in r whose action is empty or equals
// action, and collects its fields the way a browser submits them: checked
// boxes only, the selected option of each select, textarea text. Disabled
// fields and buttons are skipped.
func ParseForm(r io.Reader, action string) (url.Values, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	form := findForm(doc, action)
	if form == nil {
		return nil, ErrNoForm
	}
	values := url.Values{}
	collectFields(form, values)
	return values, nil
}

func findForm(n *html.Node, action string) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Form {
		a, _ := attr(n, "action")
		if a == "" || actionPath(a) == action {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findForm(c, action); f != nil {
			return f
		}
	}
	return nil
}

func actionPath(a string) string {
	u, err := url.Parse(a)
	if err != nil {
		return a
	}
	return u.Path
}

func collectFields(n *html.Node, values url.Values) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Input:
				addInput(c, values)
				continue
			case atom.Select:
				addSelect(c, values)
				continue
			case atom.Textarea:
				if name, ok := fieldName(c); ok {
					values.Add(name, textContent(c))
				}
				continue
			}
		}
		collectFields(c, values)
	}
}

func addInput(n *html.Node, values url.Values) {
	name, ok := fieldName(n)
	if !ok {
		return
	}
	typ, _ := attr(n, "type")
	value, hasValue := attr(n, "value")

	switch strings.ToLower(typ) {
	case "submit", "button", "reset", "file", "image":
		return
	case "checkbox", "radio":
		if _, checked := attr(n, "checked"); !checked {
			return
		}
		if !hasValue {
			value = "on"
		}
	}
	values.Add(name, value)
}

func addSelect(n *html.Node, values url.Values) {
	name, ok := fieldName(n)
	if !ok {
		return
	}
	var options []*html.Node
	walkOptions(n, &options)
	if len(options) == 0 {
		return
	}

	_, multiple := attr(n, "multiple")
	var picked []*html.Node
	for _, o := range options {
		if _, sel := attr(o, "selected"); sel {
			picked = append(picked, o)
			if !multiple {
				break
			}
		}
	}
	if len(picked) == 0 && !multiple {
		picked = options[:1]
	}
	for _, o := range picked {
		v, ok := attr(o, "value")
		if !ok {
			v = strings.TrimSpace(textContent(o))
		}
		values.Add(name, v)
	}
}

func walkOptions(n *html.Node, out *[]*html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option {
			*out = append(*out, c)
			continue
		}
		walkOptions(c, out)
	}
}

// fieldName returns the name of a submittable field.
func fieldName(n *html.Node) (string, bool) {
	if _, disabled := attr(n, "disabled"); disabled {
		return "", false
	}
	name, _ := attr(n, "name")
	return name, name != ""
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
