// Package window implements the growable byte buffer the stream unpacker
// refills from its source (spec.md's Stream Unpacker, C6). A Window is the
// teacher's Gram (gram/gram.go) cut down to what a refill buffer needs:
// grow, slide, pooled allocation, and a WriteTo/ReadFrom pair. The
// varint codec and the escape-byte framing the teacher built on top of Gram
// belong to its RPC wire format, not to MessagePack, and are not carried
// forward.
package window

import (
	"fmt"
	"io"

	"github.com/thislight/zigpak/encio"
)

const (
	// TooBig guards grow against runaway allocation requests - a corrupt or
	// hostile length field should fail fast rather than attempt a
	// multi-gigabyte allocation. 128MB on 64bit, 32MB on 32bit, matching the
	// teacher's gram.TooBig sizing.
	TooBig = 1 << (25 + ((^uint(0) >> 32) & 2))

	wordSize = 4 << ((^uint(0) >> 32) & 1)
)

// NewWindowSize is the minimum capacity a freshly allocated Window starts
// with, mirroring gram.NewGramSize.
var NewWindowSize = 64

func checkSize(n uint64) {
	if n > TooBig {
		panic(fmt.Errorf("window: grow of %v bytes exceeds TooBig", n))
	}
}

// NewWindow returns an empty Window backed by a pooled buffer of at least
// NewWindowSize bytes.
func NewWindow() *Window {
	return &Window{buff: GetBuffer(NewWindowSize)}
}

// ReadWindow drains r to EOF, returning a Window over everything read.
func ReadWindow(r io.Reader) (*Window, error) {
	if w, ok := r.(*Window); ok {
		return w, nil
	}
	w := NewWindow()
	take := cap(w.buff)
	for {
		l := w.grow(take)
		n, err := r.Read(w.buff[l:])
		w.buff = w.buff[:l+n]
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return w, err
		}
		if n < take {
			continue
		}
		take *= 2
	}
}

// ReadNWindow reads exactly n bytes from r into a new Window, via encio.Read
// (a short read from r is an error here, unlike Fill's single-call contract).
// If r is itself a *Window, it returns r.Sub(n) instead, which covers fewer
// than n bytes, without an error, when r has fewer than n unread.
func ReadNWindow(r io.Reader, n int) (w *Window, err error) {
	if w, ok := r.(*Window); ok {
		return w.Sub(n), nil
	}
	w = NewWindow()
	l := w.grow(n)
	if err = encio.Read(w.buff[l:n], r); err != nil {
		w.buff = w.buff[:l]
		return w, err
	}
	w.buff = w.buff[:n]
	return w, nil
}

// Window is a growable byte buffer with an independent read and write
// cursor, the buffer-mode backing store for the stream unpacker's refill
// loop. It is not goroutine-safe.
type Window struct {
	buff []byte
	off  int

	parent *Window
	poff   int
}

// Close returns the Window's buffer to the pool. Must not be called on a
// child Window returned by Reserve or Sub, since their buffer aliases the
// parent's backing array.
func (w *Window) Close() {
	if w.parent != nil {
		panic("window: Close called on a child Window")
	}
	PutBuffer(w.buff)
}

// Reset discards all buffered data, retaining the underlying array for
// reuse.
func (w *Window) Reset() {
	w.buff = w.buff[:0]
	w.off = 0
}

// Bytes returns the entire backing slice, read and unread, for callers
// that need to hand the whole window to the unpack header decoder.
func (w *Window) Bytes() []byte {
	return w.buff
}

func (w *Window) grow(n int) (l int) {
	checkSize(uint64(n))
	l = len(w.buff)
	c := cap(w.buff)
	if w.parent != nil {
		if c >= l+n {
			w.buff = w.parent.buff[w.poff : w.poff+l+n]
			return
		}
		panic(fmt.Errorf("window: child Window cannot grow past its reserved %v bytes", c))
	}
	if c >= l+n {
		w.buff = w.buff[:l+n]
		return
	}
	nb := make([]byte, l+n, c*2+n)
	copy(nb, w.buff)
	w.buff = nb
	return
}

// slide shifts everything at or after index by slide bytes, growing the
// buffer first if slide is positive.
func (w *Window) slide(index, slide int) {
	l := len(w.buff)
	if index > l {
		panic(fmt.Errorf("window: slide index %v out of bounds; len %v", index, l))
	}
	if slide >= 0 {
		w.grow(slide)
		copy(w.buff[index+slide:], w.buff[index:])
		return
	}
	if index-slide >= l {
		w.buff = w.buff[:index]
		return
	}
	copy(w.buff[index:], w.buff[index-slide:])
	w.buff = w.buff[:l+slide]
}

// Discard drops the first n unread-independent bytes from the front of the
// buffer, sliding the remainder down. Used by the stream unpacker to
// reclaim space consumed by Advance before the next refill.
func (w *Window) Discard(n int) {
	if n > len(w.buff) {
		panic("window: Discard past end of buffer")
	}
	w.slide(0, -n)
	if w.off > n {
		w.off -= n
	} else {
		w.off = 0
	}
}
