package extract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode names a reportable extraction failure.
type ErrorCode string

const (
	ErrCodeTabNotFound ErrorCode = "TAB_NOT_FOUND"
)

// MsgTabNotFound is part of the output contract; callers match on it.
const MsgTabNotFound = "Failed to find selected tab"

// ErrTabNotFound is returned when the page has no selected tab title.
var ErrTabNotFound = &ExtractError{Code: ErrCodeTabNotFound, Message: MsgTabNotFound}

// ExtractError wraps an extraction failure with its code.
type ExtractError struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

func (e *ExtractError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Underlying
}

// Is matches any ExtractError with the same code.
func (e *ExtractError) Is(target error) bool {
	if t, ok := target.(*ExtractError); ok {
		return e.Code == t.Code
	}
	return false
}

// ErrorResult is the error-shaped output object: {"error": true, "message": "..."}.
type ErrorResult struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// NewErrorResult builds the output object for err. Errors that are not
// ExtractErrors keep their full text as the message.
func NewErrorResult(err error) ErrorResult {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ErrorResult{Error: true, Message: ee.Message}
	}
	return ErrorResult{Error: true, Message: err.Error()}
}

// ResultFor returns what a caller should serialize for one extraction:
// the record on success, the ErrorResult for a reportable failure.
// Any other error is passed through.
func ResultFor(rec Record, err error) (any, error) {
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, ErrTabNotFound) {
		return NewErrorResult(err), nil
	}
	return nil, err
}

// IsErrorResult reports whether v is an ErrorResult, directly or after a JSON round trip.
func IsErrorResult(v any) bool {
	switch r := v.(type) {
	case ErrorResult:
		return r.Error
	case *ErrorResult:
		return r != nil && r.Error
	case map[string]any:
		b, ok := r["error"].(bool)
		return ok && b
	case json.RawMessage:
		var er ErrorResult
		return json.Unmarshal(r, &er) == nil && er.Error
	}
	return false
}
