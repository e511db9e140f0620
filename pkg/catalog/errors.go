package catalog

import (
	"errors"
	"fmt"

	"github.com/aretw0/incorporate/pkg/domain"
)

// IntegrityError reports one structural problem in a catalog definition.
type IntegrityError struct {
	QuestionID string
	Reason     string
}

func (e *IntegrityError) Error() string {
	if e.QuestionID == "" {
		return e.Reason
	}
	return fmt.Sprintf("question %q: %s", e.QuestionID, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return domain.ErrCatalogIntegrity
}

// AggregateError collects every integrity failure found by validation.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d catalog errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// IntegrityErrors returns all integrity errors if err is an AggregateError.
// Otherwise returns nil.
func IntegrityErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
