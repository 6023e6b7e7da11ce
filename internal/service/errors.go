package service

import "errors"

var (
	// ErrValidation marks a malformed payload. The wrapped message names the field.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden indicates the caller does not own the blog.
	ErrForbidden = errors.New("only the user who added this blog may delete it")
	// ErrNotFound indicates the blog does not exist.
	ErrNotFound = errors.New("blog not found")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("expected `username` to be unique")
	// ErrExportDisabled is returned when no object storage is configured.
	ErrExportDisabled = errors.New("export storage not configured")
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
