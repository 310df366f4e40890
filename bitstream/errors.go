package bitstream

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrInsufficientWorkspace = errors.New("insufficient workspace")
	ErrAllocationFailed      = errors.New("allocation failed")
	ErrFileOpenFailed        = errors.New("file open failed")
	ErrWrongMode             = errors.New("wrong mode")
	ErrEndOfStream           = errors.New("end of stream")
	ErrIO                    = errors.New("i/o error")
	ErrClosed                = errors.New("stream closed")
)

// Error records the failed operation, the error kind (one of the Err*
// sentinels) and the underlying cause, if any.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := "bitstream: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func (s *Stream) fail(op string, kind, err error) error {
	return &Error{Op: op, Path: s.path, Kind: kind, Err: err}
}

func invalidWidth(width int) error {
	return fmt.Errorf("width %d out of range [0, %d]", width, MaxWidth)
}
