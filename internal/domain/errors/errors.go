package errors

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrPrecondition  = errors.New("precondition failed")
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("not found")
	ErrStorage       = errors.New("file storage failure")
	ErrPersistence   = errors.New("persistence failure")
	ErrTimeout       = errors.New("deadline exceeded")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnavailable   = errors.New("service unavailable")
)

// Step names of the document write sequence. Every transition failure
// reports the step it died in so operators can tell a rejected file from a
// half-applied write.
const (
	StepValidateFile      = "validate file"
	StepPersistAttachment = "persist attachment"
	StepUpdateOrder       = "update order"
)

// StepError wraps a failure with the write-sequence step that produced it.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// WithStep attaches a step name to err. A nil err stays nil.
func WithStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Err: err}
}

// FailedStep extracts the step name from err, or an empty string when the
// error did not come from a write sequence.
func FailedStep(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}
