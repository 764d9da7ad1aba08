package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTestNotFound         = errors.New("test not found")
	ErrTestAlreadySubmitted = errors.New("test already submitted")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAlreadySubmitted     = errors.New("assignment already submitted")
	ErrPollNotFound         = errors.New("poll not found")
	ErrAlreadyVoted         = errors.New("already voted in this poll")
	ErrPostNotFound         = errors.New("post not found")
	ErrResourceNotFound     = errors.New("resource not found")
)

// ValidationError marks bad client input; controllers render it as a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
