package window

import "io"

// Write implements io.Writer, appending to the buffer.
func (w *Window) Write(buff []byte) (int, error) {
	return copy(w.buff[w.grow(len(buff)):], buff), nil
}

// WriteByte implements io.ByteWriter.
func (w *Window) WriteByte(c byte) error {
	w.buff[w.grow(1)] = c
	return nil
}

// WriteBuff returns a slice for the next n bytes, which the caller must
// fill before any other write call.
func (w *Window) WriteBuff(n int) []byte {
	return w.buff[w.grow(n):]
}

// ReadFrom reads exactly n bytes from src, appending them to the buffer.
// If src is a Window sliced from the same backing array, the bytes are
// adopted by reference instead of copied (gram.LimitRead).
func (w *Window) ReadFrom(src io.Reader, n int) error {
	if srcW, ok := src.(*Window); ok {
		if off, sliced := Sliced(srcW.buff, w.buff); sliced {
			if len(w.buff)+off+n > len(srcW.buff) {
				n = len(srcW.buff) - off - len(w.buff)
				w.buff = srcW.buff[off : off+len(w.buff)+n]
				return io.EOF
			}
			w.buff = srcW.buff[off : off+len(w.buff)+n]
			return nil
		}
	}

	nb := w.buff[w.grow(n):]
	for len(nb) > 0 {
		c, err := src.Read(nb)
		nb = nb[c:]
		if err != nil {
			return err
		}
	}
	return nil
}

// Reserve grows the buffer by n bytes and returns a child Window over that
// region, for writing a value whose size is only known after the fact
// (gram.WriteLater) - e.g. reserving a header before the length of what
// follows it is known.
func (w *Window) Reserve(n int) *Window {
	l := w.grow(n)
	return &Window{
		buff:   SetCap(w.buff[l:l], n),
		parent: w,
		poff:   l,
	}
}

// Size returns the total length of the buffer, read and unread.
func (w *Window) Size() int {
	return len(w.buff)
}

// Fill grows the buffer to make room for up to n more bytes, issues one
// Read call against r into that room, and shrinks back to exactly the
// bytes actually appended. It makes a single call to r.Read - callers
// that want a fully-filled n bytes must loop - matching the stream
// unpacker's one-read-per-refill-cycle contract (spec.md 4.6).
func (w *Window) Fill(r io.Reader, n int) (int, error) {
	l := w.grow(n)
	read, err := r.Read(w.buff[l : l+n])
	w.buff = w.buff[:l+read]
	return read, err
}
