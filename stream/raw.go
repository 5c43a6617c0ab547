package stream

import (
	"io"

	"github.com/thislight/zigpak"
	"github.com/thislight/zigpak/tag"
)

// RawReader is a length-limited io.Reader over a single value's raw
// payload bytes: its prefix is whatever bytes already sit in the owning
// Unpacker's window, and its tail pulls from the source only as needed,
// at most header.Size-prefix_bytes additional reads (spec.md 4.6,
// raw_reader). It holds an exclusive borrow on the owning Unpacker: no
// other Unpacker method may be called until the RawReader reports io.EOF
// or Release is called.
type RawReader struct {
	up        *Unpacker
	remaining int
}

// RawReader returns a sub-reader over h's payload. h must not be an
// array/map header - those are structural, not raw (spec.md 4.6: "not
// valid for arrays/maps").
func (up *Unpacker) RawReader(h tag.Header) (*RawReader, error) {
	if h.Kind.IsStructural() {
		return nil, zigpak.ErrInvalidValue
	}
	if up.borrowed {
		panic("zigpak/stream: Unpacker.RawReader called while another RawReader is open")
	}
	up.borrowed = true
	return &RawReader{up: up, remaining: payloadBytesNeeded(h)}, nil
}

// Read implements io.Reader, delivering bytes from the window's prefix
// first and falling back to one source refill per call once it is dry.
func (r *RawReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		_ = r.Release()
		return 0, io.EOF
	}
	if r.up.u.Len() == 0 {
		if err := r.up.ensure(1); err != nil {
			return 0, err
		}
	}

	want := len(p)
	if want > r.remaining {
		want = r.remaining
	}
	b := r.up.u.Take(want)
	n := copy(p, b)
	r.remaining -= n
	if r.remaining == 0 {
		_ = r.Release()
	}
	return n, nil
}

// Release ends the borrow, draining any unread payload bytes first so the
// Unpacker's window stays synchronised with the wire - a caller that
// decides to abandon a partially-read payload (e.g. in favour of Skip on
// the next value) still leaves the stream positioned correctly. Calling
// it again after the payload was read to completion is a no-op.
func (r *RawReader) Release() error {
	for r.remaining > 0 {
		if err := r.up.ensure(1); err != nil {
			return err
		}
		r.remaining -= len(r.up.u.Take(min(r.remaining, r.up.u.Len())))
	}
	r.up.borrowed = false
	return nil
}
