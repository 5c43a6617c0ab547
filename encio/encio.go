// Package encio provides the low-level, length-checked io.Reader wrapping
// that window.ReadNWindow builds its exact-n-bytes read on - the analogous
// allocation-size guard against a corrupt or hostile length field lives in
// window.TooBig instead, since it is specific to a refill buffer's own
// growth, not to a single bounded Read call.
package encio

import (
	"errors"
	"fmt"
	"io"
)

// Read reads from r, completely filling the buffer. It provides error handling with as little overhead as possible.
// In an ideal read, only a single int equality check is performed. If the read reports the whole buffer is read, returned errors are ignored.
func Read(buff []byte, r io.Reader) error {
	n, err := r.Read(buff)
	if n == len(buff) {
		return nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		n, err = r.Read(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Reader implementation"),
				r,
				fmt.Sprintf("reported %v bytes read, but buffer is only %v bytes", end, len(buff)),
				1,
			)
		case errors.Is(err, io.EOF):
			return NewIOError(
				io.ErrUnexpectedEOF,
				r,
				fmt.Sprintf("want %v bytes but only got %v", len(buff), end),
				1,
			)
		case err != nil:
			return err
		default: // err == nil
			return NewIOError(
				io.ErrNoProgress,
				r,
				fmt.Sprintf("want %v bytes but only got %v", len(buff), end),
				1,
			)
		}
	}
	return nil
}
