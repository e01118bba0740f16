package apierr

import "errors"

// Type categorizes an API-facing error for consistent handling by callers.
type Type string

const (
	// Transport covers network-level failures: DNS, timeouts, connection
	// resets. Always recovered into an *Error, never surfaced raw.
	Transport Type = "transport"
	// Validation covers non-2xx responses carrying structured field errors.
	Validation Type = "validation"
	// AuthExpired marks a 401 that could not be recovered by a token
	// refresh. It triggers global session teardown.
	AuthExpired Type = "auth_expired"
	// Unknown covers malformed response bodies and everything else.
	Unknown Type = "unknown"
)

// ErrSessionExpired is the sentinel wrapped by every AuthExpired error, so
// callers can use errors.Is without inspecting the Type.
var ErrSessionExpired = errors.New("session expired, please login again")

// Error is a structured error returned by the API client.
type Error struct {
	Type    Type
	Message string
	// Fields holds per-field validation messages from the server,
	// keyed by form field name. Nil for non-validation errors.
	Fields map[string][]string
	Err    error // optional underlying error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// New constructs a new Error.
func New(t Type, msg string, err error) *Error { return &Error{Type: t, Message: msg, Err: err} }

// NewValidation constructs a Validation error carrying field messages.
func NewValidation(msg string, fields map[string][]string) *Error {
	return &Error{Type: Validation, Message: msg, Fields: fields}
}

// NewSessionExpired constructs the AuthExpired escalation error.
func NewSessionExpired() *Error {
	return &Error{Type: AuthExpired, Message: ErrSessionExpired.Error(), Err: ErrSessionExpired}
}

// IsSessionExpired reports whether err is the AuthExpired escalation.
func IsSessionExpired(err error) bool { return errors.Is(err, ErrSessionExpired) }

// TypeOf returns the Type of err if it is (or wraps) an *Error, and Unknown
// otherwise.
func TypeOf(err error) Type {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return Unknown
}

// FieldsOf returns the validation field messages of err, or nil.
func FieldsOf(err error) map[string][]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
