package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax covers malformed tag structure, mismatched closing tags
	// and markup the parser does not support.
	ErrSyntax = errors.New("syntax error")
	// ErrUnexpectedEOF is returned when the input ends inside a token or
	// with unclosed elements.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrEncoding is returned for invalid UTF-8 content.
	ErrEncoding = errors.New("invalid encoding")
	// ErrDepth is returned when element nesting exceeds the configured
	// maximum. This is a security limit and always a hard failure.
	ErrDepth = errors.New("max nesting depth exceeded")
	// ErrEntityLimit is returned when a DOCTYPE declares more entities
	// than the configured ceiling. This is a security limit and always a
	// hard failure.
	ErrEntityLimit = errors.New("entity declaration limit exceeded")
)

// Error is a structured parse error. Kind is one of the sentinel errors
// above and matches with errors.Is.
type Error struct {
	Kind error
	Pos  Pos
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s %s", e.Kind, e.Msg, e.Pos)
}

func (e *Error) Unwrap() error {
	return e.Kind
}
