package contacts

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("contacts: index out of range")
	ErrMalformedLine   = errors.New("contacts: malformed line")
	ErrInvalidField    = errors.New("contacts: invalid field")
)

// IndexError reports an update or delete addressed past the end of the list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("contacts: index %d out of range [0:%d]", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ParseError reports a line of the data file without a name:phone separator.
// Line is 1-based.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("contacts: line %d: missing %q separator in %q", e.Line, separator, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrMalformedLine }

// FieldError reports a value that cannot be stored in the line format.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("contacts: %s %q cannot contain %q or line breaks", e.Field, e.Value, separator)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }
