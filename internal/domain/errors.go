package domain

import (
	"errors" // Error unwrapping
	"fmt"    // Error formatting
)

// ErrorKind classifies a failure so the API layer can pick a response code
type ErrorKind int

const (
	ValidationError      ErrorKind = iota + 1 // Missing or malformed input
	AuthenticationError                       // Bad credentials
	AuthorizationError                        // Valid token, insufficient privilege
	NotFoundError                             // Referenced record does not exist
	ConflictError                             // Duplicate key or terminal-state transition
	CorruptSequenceError                      // Ledger id does not parse as <TAG>-<digits>
	PersistenceError                          // Underlying store failure
)

// String returns the kind's name as used in logs
func (k ErrorKind) String() string {
	switch k {
	case ValidationError:
		return "ValidationError"
	case AuthenticationError:
		return "AuthenticationError"
	case AuthorizationError:
		return "AuthorizationError"
	case NotFoundError:
		return "NotFoundError"
	case ConflictError:
		return "ConflictError"
	case CorruptSequenceError:
		return "CorruptSequenceError"
	case PersistenceError:
		return "PersistenceError"
	default:
		return "UnknownError"
	}
}

// Error is the error type returned by stores and ledgers.
// Message is safe to show to callers; Err carries the internal cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err, or zero if err is not a *Error
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// IsKind reports whether err is a *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

func NewValidationError(msg string) error {
	return &Error{Kind: ValidationError, Message: msg}
}

func NewAuthenticationError(msg string) error {
	return &Error{Kind: AuthenticationError, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &Error{Kind: AuthorizationError, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: NotFoundError, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Kind: ConflictError, Message: msg}
}

func NewCorruptSequenceError(id string) error {
	return &Error{Kind: CorruptSequenceError, Message: "corrupt ledger sequence", Err: fmt.Errorf("unparsable id %q", id)}
}

func NewPersistenceError(msg string, err error) error {
	return &Error{Kind: PersistenceError, Message: msg, Err: err}
}
