package yjqy

import (
	"fmt"
	"net/http"
)

// TransportError is returned when a request could not be made or the site
// answered with a non-2xx status.
type TransportError struct {
	Method string
	Url    string
	// StatusCode is 0 if no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Url, e.Err)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Url, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when an element or attribute a page is expected to
// contain is absent or malformed.
type ParseError struct {
	Page   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Page, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Page, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedRowError means a results table row has a cell count other than
// 0, 1 or 2, the page layout no longer matches what the extractor expects.
type MalformedRowError struct {
	// Row is the zero-based index of the row among the container's children.
	Row   int
	Cells int
	Text  string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d: expected at most 2 cells, got %d: %q", e.Row, e.Cells, e.Text)
}
