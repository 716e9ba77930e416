package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedGraph, "edge %d-%d out of range", 0, 9)

	if err.Code != ErrCodeMalformedGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedGraph)
	}

	if err.Message != "edge 0-9 out of range" {
		t.Errorf("Message = %v, want %v", err.Message, "edge 0-9 out of range")
	}

	expected := "MALFORMED_GRAPH: edge 0-9 out of range"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidKML, cause, "parse roads.kml")

	if err.Code != ErrCodeInvalidKML {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidKML)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got, want := err.Error(), "INVALID_KML: parse roads.kml: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidNode, "test"), ErrCodeInvalidNode, true},
		{"different code", New(ErrCodeInvalidNode, "test"), ErrCodeMalformedGraph, false},
		{"wrapped by fmt", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnsupported, "x")); got != ErrCodeUnsupported {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnsupported)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidAlgorithm, "unknown algorithm %q", "astar")); got != `unknown algorithm "astar"` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
	nested := Wrap(ErrCodeInvalidNode, Wrap(ErrCodeInvalidKML, errors.New("EOF"), "parse roads.kml"), "load")
	if got := UserMessage(nested); got != "load: parse roads.kml: EOF" {
		t.Errorf("UserMessage(nested) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidAlgorithm, 400},
		{ErrCodeInvalidKML, 400},
		{ErrCodeRunNotFound, 404},
		{ErrCodeFileNotFound, 404},
		{ErrCodeUnsupported, 501},
		{ErrCodeInternal, 500},
		{"", 500},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%q.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}
