package window

import (
	"fmt"
	"io"
)

// Len returns the size of the unread portion of the buffer.
func (w *Window) Len() int {
	return len(w.buff) - w.off
}

// Read implements io.Reader over the unread portion of the buffer.
func (w *Window) Read(buff []byte) (int, error) {
	c := copy(buff, w.buff[w.off:])
	w.off += c
	if w.off == len(w.buff) {
		return c, io.EOF
	}
	return c, nil
}

// ReadByte implements io.ByteReader.
func (w *Window) ReadByte() (byte, error) {
	if w.off == len(w.buff) {
		return 0, io.EOF
	}
	w.off++
	return w.buff[w.off-1], nil
}

// ReadBuff returns a slice over the next n unread bytes, advancing the read
// cursor past them. If fewer than n bytes remain, it returns everything
// left.
func (w *Window) ReadBuff(n int) []byte {
	if w.Len() < n {
		n = w.Len()
	}
	w.off += n
	return w.buff[w.off-n : w.off]
}

// ReadAll returns the entire unread portion, advancing the cursor to the
// end.
func (w *Window) ReadAll() []byte {
	buff := w.buff[w.off:]
	w.off = len(w.buff)
	return buff
}

// Sub returns a child Window over the next n unread bytes without copying,
// advancing this Window's cursor past them. If fewer than n bytes remain,
// the child only covers what is left (gram.LimitReader).
func (w *Window) Sub(n int) *Window {
	checkSize(uint64(n))
	if w.Len() < n {
		n = w.Len()
	}
	w.off += n
	return &Window{buff: SetCap(w.buff[w.off-n:w.off], n), parent: w, poff: w.off - n}
}

// WriteTo implements io.WriterTo, writing the unread portion to dst.
func (w *Window) WriteTo(dst io.Writer) (int64, error) {
	l := w.Len()
	n, err := dst.Write(w.buff[w.off:])
	w.off += n
	if err != nil {
		return int64(n), err
	}
	if n != l {
		return int64(n), fmt.Errorf("window: short write, wanted %v got %v", l, n)
	}
	return int64(n), nil
}
