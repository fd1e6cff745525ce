package zaim

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsAs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target any
		want   bool
	}{
		{
			name:   "wrapped validation error",
			err:    fmt.Errorf("create: %w", &ValidationError{Errors: []FieldError{{"amount", "must be a positive number"}}}),
			target: new(*ValidationError),
			want:   true,
		},
		{
			name:   "transport error",
			err:    &TransportError{StatusCode: 400, Data: "bad"},
			target: new(*TransportError),
			want:   true,
		},
		{
			name:   "parse error is not a shape error",
			err:    &ParseError{Err: io.ErrUnexpectedEOF},
			target: new(*ShapeError),
			want:   false,
		},
		{
			name:   "decode error",
			err:    &DecodeError{Resource: "money", Err: errors.New("boom")},
			target: new(*DecodeError),
			want:   true,
		},
		{
			name:   "plain error",
			err:    errors.New("some other error"),
			target: new(*HandshakeError),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.As(tt.err, tt.target))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation lists every field",
			err: &ValidationError{Errors: []FieldError{
				{"categoryId", "must be a positive number"},
				{"comment", "must not exceed 100 characters"},
			}},
			want: "invalid parameters: categoryId: must be a positive number; comment: must not exceed 100 characters",
		},
		{
			name: "status with body",
			err:  &TransportError{StatusCode: 401, Data: `{"error":true}`},
			want: `api response 401: {"error":true}`,
		},
		{
			name: "status without body",
			err:  &TransportError{StatusCode: 500},
			want: "api response 500",
		},
		{
			name: "no response",
			err:  &TransportError{Err: io.EOF},
			want: "transport: EOF",
		},
		{
			name: "shape",
			err:  &ShapeError{Kind: "array"},
			want: "response is not a JSON object (got array)",
		},
		{
			name: "handshake",
			err:  &HandshakeError{Step: "request token", Err: errors.New("401")},
			want: "failed to get request token: 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestUnwrap(t *testing.T) {
	assert.ErrorIs(t, &TransportError{Err: io.EOF}, io.EOF)
	assert.ErrorIs(t, &HandshakeError{Step: "access token", Err: io.EOF}, io.EOF)
	assert.ErrorIs(t, &DecodeError{Resource: "user", Err: io.EOF}, io.EOF)
}

func TestValidationErrorField(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{"limit", "must be an integer between 1 and 100"}}}

	fe, ok := err.Field("limit")
	assert.True(t, ok)
	assert.Equal(t, "must be an integer between 1 and 100", fe.Message)

	_, ok = err.Field("page")
	assert.False(t, ok)
}
