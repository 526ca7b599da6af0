package service

import "errors"

// Submission error taxonomy. Handlers map these onto HTTP statuses:
// invalid payload is the caller's fault (400), the storage errors are
// server-side (500). Notification failures have no entry here on purpose;
// they never reach a caller.
var (
	// ErrInvalidPayload covers a missing answers mapping and, when the
	// deployment requires one, a missing or malformed contact email.
	ErrInvalidPayload = errors.New("invalid submission payload")
	// ErrStorageUnavailable means the datastore was never configured.
	// Retrying is pointless until an operator fixes the deployment.
	ErrStorageUnavailable = errors.New("datastore not configured")
	// ErrStorageError means the insert itself failed. The insert is a
	// single statement, so no partial row is left and a retry is safe.
	ErrStorageError = errors.New("datastore write failed")
)

// SubmissionError pairs one of the sentinel kinds with the caller-facing
// message and, where safe to echo, a diagnostic detail.
type SubmissionError struct {
	kind    error
	Message string
	Detail  string
}

func (e *SubmissionError) Error() string {
	if e.Detail != "" {
		return e.kind.Error() + ": " + e.Detail
	}
	return e.kind.Error() + ": " + e.Message
}

func (e *SubmissionError) Unwrap() error { return e.kind }

func invalidPayload(message string) error {
	return &SubmissionError{kind: ErrInvalidPayload, Message: message}
}

func storageUnavailable(message string) error {
	return &SubmissionError{kind: ErrStorageUnavailable, Message: message}
}

func storageError(message string, cause error) error {
	return &SubmissionError{kind: ErrStorageError, Message: message, Detail: cause.Error()}
}
