package zaim

import (
	"fmt"
	"strings"
)

// FieldError is a single violated constraint on an outbound parameter.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError means one or more parameters were rejected before anything
// was sent over the wire. It carries every violation found in the call.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.String()
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

// Field returns the first violation for name, if any.
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

// TransportError is a failed round trip. StatusCode and Data hold the HTTP
// status and raw body as returned by the API; StatusCode is 0 when the request
// never got a response, in which case Err holds the cause.
//
// A TransportError on a mutating call does not mean the mutation was not
// applied. The client never retries.
type TransportError struct {
	StatusCode int
	Data       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport: %v", e.Err)
	}
	if e.Data == "" {
		return fmt.Sprintf("api response %d", e.StatusCode)
	}
	return fmt.Sprintf("api response %d: %s", e.StatusCode, e.Data)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the response body was not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError means the response was valid JSON but not a top-level object.
type ShapeError struct {
	// Kind is the JSON kind that was received: array, null, string, number or
	// boolean.
	Kind string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("response is not a JSON object (got %s)", e.Kind)
}

// HandshakeError means a step of the OAuth token exchange failed.
type HandshakeError struct {
	// Step is either "request token" or "access token".
	Step string
	Err  error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("failed to get %s: %v", e.Step, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// DecodeError means a JSON object came back but it did not match the schema of
// the resource it was requested for.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
