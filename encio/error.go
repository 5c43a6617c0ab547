package encio

import (
	"errors"
	"runtime"
)

// IOError distinguishes a bad io.Reader/io.Writer from a data error the
// codec itself raised (spec.md 7's error taxonomy is a set of sentinels
// checked with errors.Is, not a wrapper type - IOError exists only to carry
// the offending reader/writer and a caller description alongside whichever
// sentinel or I/O error actually occurred).
//
// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from the io.Reader/io.Writer, or another error describing why the reader isn't operating correctly.
// rw is the offending io.Reader/io.Writer, kept so callers can identify which source or sink misbehaved.
// message has extra information about the error; if empty, it is filled with the calling function's name.
// skip is the number of extra stack frames to skip when filling in the caller, for wrapper functions like Read.
func NewIOError(err error, rw interface{}, message string, skip int) error {
	if err == nil {
		err = errors.New("unknown error")
		if message == "" {
			message = "trying to create new IOError"
		}
	} else if message == "" {
		message = "in " + GetCaller(1+skip)
	}

	return IOError{
		Err:     err,
		RW:      rw,
		Message: message,
	}
}

// IOError is returned when io errors occour, or when read data is malformed.
type IOError struct {
	Err     error
	RW      interface{}
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
