// Package query runs jq expressions over raw settings payloads.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// DefaultMaxResults bounds the values returned by a single query.
const DefaultMaxResults = 100

// Engine executes jq queries against JSON documents.
type Engine struct {
	maxResults int
}

// NewEngine creates a query engine. maxResults <= 0 means DefaultMaxResults.
func NewEngine(maxResults int) *Engine {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Engine{maxResults: maxResults}
}

// Result holds the values produced by a query.
type Result struct {
	Values    []any    `json:"values"`
	Errors    []string `json:"errors,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Query runs expression against data. Runtime errors raised by individual
// outputs are collected in Result.Errors rather than aborting the query.
func (e *Engine) Query(data []byte, expression string) (*Result, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}

	result := &Result{Values: make([]any, 0)}
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		if len(result.Values) >= e.maxResults {
			result.Truncated = true
			break
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("jq expression is required")
	}

	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// formatJQError decorates common runtime errors with a hint about the
// settings document shape.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist; disabled_forwarding_id is omitted when every phone is enabled)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return errStr + hint
}
