package file

import (
	"errors"

	"github.com/cloudfilestorage/service/internal/storage"
)

// Domain error kinds. Every error returned by Service matches exactly one of them
// with errors.Is.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("not found")
	ErrOperationFailed = errors.New("operation failed")
)

// Error is a failed file operation. Message is safe to show to clients;
// Err keeps the underlying cause for logs.
type Error struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func badRequest(op, message string) error {
	return &Error{Op: op, Kind: ErrBadRequest, Message: message}
}

func notFound(op string, cause error) error {
	return &Error{Op: op, Kind: ErrNotFound, Message: msgNotFound, Err: cause}
}

func operationFailed(op, message string, cause error) error {
	return &Error{Op: op, Kind: ErrOperationFailed, Message: message, Err: cause}
}

// fromStorage maps a storage error onto a domain kind. A missing key is Not Found,
// everything else is Operation Failure. Backend error types stay wrapped in Err.
func fromStorage(op, failure string, err error) error {
	if storage.IsNotFound(err) {
		return notFound(op, err)
	}
	return operationFailed(op, failure, err)
}

// Message returns the client-facing message of a Service error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
