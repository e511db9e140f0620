package domain

import (
	"errors"
	"fmt"
)

// Protocol violations: the event does not match the session.
var (
	// ErrStaleQuestion is returned when an event references a question other than the current one.
	ErrStaleQuestion = errors.New("question is not the current question")
	// ErrSessionCompleted is returned for any answer event after completion.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrUnknownOption is returned when an option id is not offered by the question.
	ErrUnknownOption = errors.New("option not offered by question")
)

// Precondition violations: the event is well addressed but not allowed.
var (
	// ErrNotMultiSelect is returned when a toggle or multi submit targets a single-select question.
	ErrNotMultiSelect = errors.New("question is not multi-select")
	// ErrMultiSelectQuestion is returned when a single submit targets a multi-select question.
	ErrMultiSelectQuestion = errors.New("question is multi-select")
	// ErrEmptySelection is returned when submitting a multi-select answer with nothing selected.
	ErrEmptySelection = errors.New("no option selected")
)

var (
	// ErrUnknownQuestion is returned when a catalog lookup misses.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrCatalogIntegrity marks configuration errors in the question catalog.
	ErrCatalogIntegrity = errors.New("catalog integrity error")
	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionNotCompleted is returned when capturing a lead from an unfinished session.
	ErrSessionNotCompleted = errors.New("session not completed")
	// ErrLeadNotFound is returned when a lead ID cannot be found in a sink.
	ErrLeadNotFound = errors.New("lead not found")
)

// RejectedError reports an event the engine refused without touching state.
type RejectedError struct {
	Op         string
	SessionID  string
	QuestionID string
	Err        error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected for question %q: %v", e.Op, e.QuestionID, e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// IsRejected reports whether err is (or wraps) a RejectedError.
func IsRejected(err error) bool {
	var r *RejectedError
	return errors.As(err, &r)
}
