package stream

import "io"

// endOfStream is the sentinel spec.md's stream unpacker reports when the
// source runs dry before a full header or payload could be assembled -
// whether that happens at a clean value boundary or mid-value, since the
// source gives no way to tell the two apart (spec.md 4.6, "an incomplete
// stream surfaces as end-of-stream"). It wraps io.EOF so callers checking
// with errors.Is(err, io.EOF) still see it, while errors.Is(err,
// stream.ErrEndOfStream) gives a distinguishable, stream-mode-specific
// check (spec.md 7).
type endOfStream struct{}

func (endOfStream) Error() string { return "zigpak/stream: end of stream" }
func (endOfStream) Unwrap() error { return io.EOF }

// ErrEndOfStream is returned by Unpacker and its Cursor/RawReader whenever
// the source is exhausted before enough bytes arrived.
var ErrEndOfStream error = endOfStream{}
