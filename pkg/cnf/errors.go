package cnf

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when BOOT2, VER or VMODE is absent or empty.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownVideoMode is returned when the VMODE value is not a known token.
	ErrUnknownVideoMode = errors.New("unknown video mode")
	// ErrMalformedLine is returned when a line cannot be split into a key and a value.
	ErrMalformedLine = errors.New("malformed line")
)

// DecodeError describes where decoding failed. Err is always one of the sentinel errors above, possibly wrapped
// with extra detail, so callers should match with errors.Is.
type DecodeError struct {
	// Line is the 1-based line number, or 0 when the error is not tied to a line.
	Line int
	// Key is the SYSTEM.CNF key involved, if known.
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Line > 0 && e.Key != "":
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Key, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s: %v", e.Key, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
