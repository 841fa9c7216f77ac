package service

import "errors"

var (
	// ErrForbidden indicates the caller does not own the record.
	ErrForbidden = errors.New("caller does not own this record")
	// ErrNoFieldsToUpdate indicates an update payload without any field set.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrChatLogIdentityMismatch indicates a chat log submitted for someone else.
	ErrChatLogIdentityMismatch = errors.New("chat log user does not match caller")
	// ErrInvalidDate indicates an announcement date that could not be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrEmptyContent indicates rich text that sanitised down to nothing.
	ErrEmptyContent = errors.New("content empty after sanitization")
	// ErrContentTooLong indicates rich text that exceeds its limit once cleaned.
	ErrContentTooLong = errors.New("content too long after sanitization")
)

// FieldError ties a service-level rejection to the request field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
