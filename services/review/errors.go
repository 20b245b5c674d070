package review

import (
	"errors"
	"fmt"
)

// ErrLabelNotFound is returned when a review decision targets a label that
// does not exist (or was already rejected and destroyed).
var ErrLabelNotFound = errors.New("label not found")

// ErrSegmentNotFound is returned when a submission targets an unknown
// segment.
var ErrSegmentNotFound = errors.New("segment not found")

// ErrComplaintNotAssigned is returned when a relabel names a complaint that
// is assigned to a different annotator.
var ErrComplaintNotAssigned = errors.New("complaint is assigned to another annotator")

// ValidationError reports a malformed submission or decision.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
