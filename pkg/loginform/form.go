// Package loginform locates server-rendered HTML login forms and rebuilds
// their submission payload with caller credentials injected.
package loginform

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
)

// DefaultSelector matches the Google accounts login form.
const DefaultSelector = "form#gaia_loginform"

// Selector modes.
const (
	ModeCSS   = "css"
	ModeXPath = "xpath"
)

var (
	// ErrFormNotFound is returned when no <form> matches the selector.
	ErrFormNotFound = errors.New("login form not found")
	// ErrNoInputFields is returned when the matched form has no named inputs.
	ErrNoInputFields = errors.New("login form has no input fields")
	// ErrInvalidSelector is returned when the selector does not compile.
	ErrInvalidSelector = errors.New("invalid form selector")
)

// Field is a single named <input> of a form.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Form is a login form scraped from one response. It is only valid for the
// round trip that produced it.
type Form struct {
	Action string  `json:"action"`
	Method string  `json:"method"`
	Fields []Field `json:"fields"`
}

// DetectMode returns ModeXPath for path expressions and ModeCSS otherwise.
func DetectMode(selector string) string {
	s := strings.TrimSpace(selector)
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "(") {
		return ModeXPath
	}
	return ModeCSS
}

// Extract parses body and returns the first <form> matching selector.
// The form action is resolved against baseURL; an empty action posts back to
// baseURL itself. An empty selector means DefaultSelector.
func Extract(body []byte, baseURL *url.URL, selector string) (*Form, error) {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}

	var (
		sel *goquery.Selection
		err error
	)
	switch DetectMode(selector) {
	case ModeXPath:
		sel, err = findXPath(body, selector)
	default:
		sel, err = findCSS(body, selector)
	}
	if err != nil {
		return nil, err
	}

	sel = sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "form"
	}).First()
	if sel.Length() == 0 {
		return nil, ErrFormNotFound
	}

	form := &Form{
		Method: strings.ToUpper(strings.TrimSpace(sel.AttrOr("method", "post"))),
	}

	action, err := resolveAction(baseURL, sel.AttrOr("action", ""))
	if err != nil {
		return nil, err
	}
	form.Action = action

	sel.Find("input").Each(func(_ int, in *goquery.Selection) {
		name, _ := in.Attr("name")
		if name == "" {
			return
		}
		form.Fields = append(form.Fields, Field{
			Name:  name,
			Value: in.AttrOr("value", ""),
			Type:  strings.ToLower(in.AttrOr("type", "")),
		})
	})
	if len(form.Fields) == 0 {
		return nil, ErrNoInputFields
	}

	return form, nil
}

func findCSS(body []byte, selector string) (*goquery.Selection, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc.FindMatcher(matcher), nil
}

func findXPath(body []byte, expression string) (*goquery.Selection, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, expression, err)
	}

	// Re-root the matches in goquery so both modes share field extraction.
	return goquery.NewDocumentFromNode(doc).FindNodes(nodes...), nil
}

func resolveAction(baseURL *url.URL, action string) (string, error) {
	action = strings.TrimSpace(action)
	if baseURL == nil {
		return action, nil
	}
	if action == "" {
		return baseURL.String(), nil
	}
	ref, err := url.Parse(action)
	if err != nil {
		return "", fmt.Errorf("parsing form action %q: %w", action, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
