package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/golite/pkg/lexer"
)

// Error kinds. A *SyntaxError unwraps to exactly one of these, so callers
// can classify diagnostics with errors.Is.
var (
	// ErrUnexpectedToken means no grammar alternative matched the current token.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUnterminated means the input ended inside a block, switch,
	// parenthesized expression or call.
	ErrUnterminated = errors.New("unterminated construct")
	// ErrInvalidType means a type position held something other than a
	// built-in type keyword.
	ErrInvalidType = errors.New("invalid type")
	// ErrRecursionLimit means the input nests deeper than the parser allows.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
	// ErrTooManyErrors is reported once when the error limit stops a parse.
	ErrTooManyErrors = errors.New("too many errors")
)

// SyntaxError is a single diagnostic anchored at the offending token.
type SyntaxError struct {
	Kind     error     // one of the Err* kinds above
	Msg      string    // human-readable description
	Expected []string  // what the grammar would have accepted; may be empty
	Actual   string    // text of the offending token
	Pos      lexer.Pos // position of the offending token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// ErrorList is every diagnostic produced by one parse, in source order of
// discovery.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(l[0].Error())
	fmt.Fprintf(&sb, " (and %d more errors)", len(l)-1)
	return sb.String()
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
