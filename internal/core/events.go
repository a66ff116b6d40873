// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing the command engine, the CI backends and the authorization store to be
// implemented and tested independently.
package core

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedEvent is returned when a webhook payload lacks a field the
// engine needs, or the field has an unexpected shape.
var ErrMalformedEvent = errors.New("malformed event payload")

// Logical field paths inside a GitHub webhook delivery.
const (
	FieldAction        = "action"
	FieldIssue         = "issue"
	FieldPullRequest   = "pull_request"
	FieldCommentBody   = "comment.body"
	FieldCommentAuthor = "comment.user.login"
	FieldIssueAuthor   = "issue.user.login"
	FieldRepoFullName  = "repository.full_name"
	FieldIssueNumber   = "issue.number"
	FieldPRNumber      = "pull_request.number"
	FieldPRHeadSHA     = "pull_request.head.sha"
	FieldPRHTMLURL     = "pull_request.html_url"
	FieldIssueHTMLURL  = "issue.html_url"
)

// Event is an opaque webhook document. The engine never maps it onto a fixed
// schema; it reads the handful of fields it needs by path and leaves the rest
// untouched so CI backends can forward the delivery as-is.
type Event struct {
	Type       string // value of the X-GitHub-Event header, if known
	DeliveryID string
	raw        []byte
}

// NewEvent wraps a raw JSON payload. It only checks that the payload is valid
// JSON; missing fields are reported when they are accessed.
func NewEvent(eventType, deliveryID string, payload []byte) (*Event, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrMalformedEvent)
	}
	return &Event{Type: eventType, DeliveryID: deliveryID, raw: payload}, nil
}

// Raw returns the original payload bytes.
func (e *Event) Raw() []byte {
	return e.raw
}

// Has reports whether a field exists at path.
func (e *Event) Has(path string) bool {
	return gjson.GetBytes(e.raw, path).Exists()
}

// String returns the string field at path. A missing field, or one that is not
// a JSON string, yields ErrMalformedEvent.
func (e *Event) String(path string) (string, error) {
	res := gjson.GetBytes(e.raw, path)
	if !res.Exists() {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedEvent, path)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedEvent, path)
	}
	return res.String(), nil
}

// Int returns the numeric field at path.
func (e *Event) Int(path string) (int, error) {
	res := gjson.GetBytes(e.raw, path)
	if !res.Exists() {
		return 0, fmt.Errorf("%w: missing field %q", ErrMalformedEvent, path)
	}
	if res.Type != gjson.Number {
		return 0, fmt.Errorf("%w: field %q is not a number", ErrMalformedEvent, path)
	}
	return int(res.Int()), nil
}

// Action returns the delivery's action kind ("created", "edited", ...).
func (e *Event) Action() (string, error) {
	return e.String(FieldAction)
}

// IsPullRequest reports whether the subject issue carries a pull request
// reference. The issue object itself must be present.
func (e *Event) IsPullRequest() (bool, error) {
	issue := gjson.GetBytes(e.raw, FieldIssue)
	if !issue.Exists() || !issue.IsObject() {
		return false, fmt.Errorf("%w: missing field %q", ErrMalformedEvent, FieldIssue)
	}
	return issue.Get(FieldPullRequest).Exists(), nil
}

// CommentBody returns the text of the comment.
func (e *Event) CommentBody() (string, error) {
	return e.String(FieldCommentBody)
}

// CommentAuthor returns the login of the user who wrote the comment.
func (e *Event) CommentAuthor() (string, error) {
	return e.String(FieldCommentAuthor)
}

// PRAuthor returns the login of the pull request author on an issue_comment
// delivery.
func (e *Event) PRAuthor() (string, error) {
	return e.String(FieldIssueAuthor)
}

// Number returns the pull request number of an issue_comment or a
// pull_request delivery. A missing or non-positive number is malformed.
func (e *Event) Number() (int, error) {
	path := FieldIssueNumber
	if e.Has(FieldPRNumber) {
		path = FieldPRNumber
	}
	n, err := e.Int(path)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: field %q is not a pull request number", ErrMalformedEvent, path)
	}
	return n, nil
}

// Subject describes the pull request a delivery refers to, for logging and for
// CI backends. Fields that are absent stay empty.
type Subject struct {
	Repository string
	Number     int
	HeadSHA    string
	URL        string
}

// Subject extracts what is known about the pull request from either an
// issue_comment or a pull_request delivery.
func (e *Event) Subject() Subject {
	s := Subject{
		Repository: gjson.GetBytes(e.raw, FieldRepoFullName).String(),
		HeadSHA:    gjson.GetBytes(e.raw, FieldPRHeadSHA).String(),
	}
	if n := gjson.GetBytes(e.raw, FieldPRNumber); n.Exists() {
		s.Number = int(n.Int())
		s.URL = gjson.GetBytes(e.raw, FieldPRHTMLURL).String()
	} else {
		s.Number = int(gjson.GetBytes(e.raw, FieldIssueNumber).Int())
		s.URL = gjson.GetBytes(e.raw, FieldIssueHTMLURL).String()
	}
	return s
}
