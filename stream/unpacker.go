// Package stream implements the resumable stream unpacker (spec.md
// component C6): it wraps an arbitrary io.Reader source with a refill
// buffer (package window) and drives a zigpak.Unpack, supplying it with
// enough bytes per step and exposing raw-payload sub-readers so a caller
// never has to buffer an entire value up front.
package stream

import (
	"fmt"
	"io"

	"github.com/thislight/zigpak"
	"github.com/thislight/zigpak/encio"
	"github.com/thislight/zigpak/tag"
	"github.com/thislight/zigpak/window"
)

// MinRefill is the smallest chunk Unpacker asks its source for per refill,
// even when less would satisfy the immediate request - a larger buffer
// reduces the number of source reads without affecting correctness
// (spec.md 4.6). Like window.NewWindowSize, it is a plain tunable
// variable, not a build-time constant.
var MinRefill = 512

// Unpacker drives a zigpak.Unpack from src, refilling its window as
// needed. It is not goroutine-safe and, like zigpak.Unpack itself, must
// not be shared between goroutines (spec.md 5).
type Unpacker struct {
	src    io.Reader
	win    *window.Window
	u      *zigpak.Unpack
	eof    bool
	warned bool

	// borrowed is set while a RawReader obtained from this Unpacker is
	// alive. Peek/Advance/OpenArray/OpenMap panic if called while it is
	// set - the sub-reader has an exclusive borrow on the window
	// (spec.md "Raw-payload sub-reader lifetime").
	borrowed bool
}

// NewUnpacker returns an Unpacker reading from src under zigpak.DefaultConfig,
// with its own window.Window refill buffer.
func NewUnpacker(src io.Reader) *Unpacker {
	return NewUnpackerConfig(src, zigpak.DefaultConfig)
}

// NewUnpackerConfig is NewUnpacker with an explicit zigpak.Config - a
// RawCompat Unpacker reports KindObsoleteRaw16/32 the same way a buffer-mode
// zigpak.Unpack constructed with NewUnpackConfig does.
func NewUnpackerConfig(src io.Reader, cfg zigpak.Config) *Unpacker {
	w := window.NewWindow()
	return &Unpacker{src: src, win: w, u: zigpak.NewUnpackConfig(w.Bytes(), cfg)}
}

// ensure makes sure at least n bytes are buffered and unread, refilling
// from src as needed. It returns ErrEndOfStream if src is exhausted
// before n bytes could be assembled (spec.md 4.6, P7): repeated calls
// after that each return ErrEndOfStream again without consuming
// anything, since eof latches permanently once observed.
func (up *Unpacker) ensure(n int) error {
	for up.u.Len() < n {
		if up.eof {
			return ErrEndOfStream
		}

		if consumed := up.win.Size() - up.u.Len(); consumed > 0 {
			up.win.Discard(consumed)
			up.u.Rebase(up.win.Bytes())
		}

		chunk := n - up.u.Len()
		if chunk < MinRefill {
			chunk = MinRefill
		}

		oldTotal := up.win.Size()
		read, err := up.win.Fill(up.src, chunk)
		if read > 0 {
			up.u.SetAppend(oldTotal, up.win.Bytes())
		}

		switch {
		case read == 0 && err == nil:
			if !up.warned {
				fmt.Fprintf(encio.Warnings, "zigpak/stream: %T.Read returned (0, nil); treating as end-of-stream\n", up.src)
				up.warned = true
			}
			up.eof = true
		case err == io.EOF:
			up.eof = true
		case err != nil:
			return err // source error, propagated unmodified, never retried
		}
	}
	return nil
}

// Peek returns the next value's Kind, refilling as needed, or
// ErrEndOfStream if the source is exhausted at this boundary.
func (up *Unpacker) Peek() (tag.Kind, error) {
	if up.borrowed {
		panic("zigpak/stream: Unpacker.Peek called while a RawReader is open")
	}
	if err := up.ensure(1); err != nil {
		return tag.KindInvalid, err
	}
	return up.u.Peek()
}

// Advance consumes kind's tag and header bytes, refilling as needed.
func (up *Unpacker) Advance(kind tag.Kind) (tag.Header, error) {
	if up.borrowed {
		panic("zigpak/stream: Unpacker.Advance called while a RawReader is open")
	}
	need := 1 + tag.HeaderDataBytes(kind)
	if err := up.ensure(need); err != nil {
		return tag.Header{}, err
	}
	return up.u.Advance(kind), nil
}

// Next is Peek followed by Advance: spec.md 4.6's next(source) operation.
func (up *Unpacker) Next() (tag.Header, error) {
	k, err := up.Peek()
	if err != nil {
		return tag.Header{}, err
	}
	return up.Advance(k)
}

// payloadBytesNeeded reports how many more bytes must be buffered before
// h's value can be converted - zero for nil/bool/fixint, whose value lives
// entirely in the already-consumed tag, and h.Size for everything else,
// mirroring zigpak.Unpack.AsRaw's own split.
func payloadBytesNeeded(h tag.Header) int {
	switch h.Kind {
	case tag.KindNil, tag.KindBoolFalse, tag.KindBoolTrue,
		tag.KindPosFixint, tag.KindNegFixint:
		return 0
	default:
		return h.Size
	}
}

// AsNil, AsBool and the AsXxx scalar converters below ensure h's payload
// is buffered, then delegate to the underlying zigpak.Unpack (spec.md
// 4.6, as_nil/bool/int/float).

func (up *Unpacker) AsNil(h tag.Header) error { return up.u.AsNil(h) }

func (up *Unpacker) AsBool(h tag.Header) (bool, error) { return up.u.AsBool(h) }

func (up *Unpacker) AsUint64(h tag.Header) (uint64, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsUint64(h)
}

func (up *Unpacker) AsUint32(h tag.Header) (uint32, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsUint32(h)
}

func (up *Unpacker) AsUint16(h tag.Header) (uint16, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsUint16(h)
}

func (up *Unpacker) AsUint8(h tag.Header) (uint8, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsUint8(h)
}

func (up *Unpacker) AsInt64(h tag.Header) (int64, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsInt64(h)
}

func (up *Unpacker) AsInt32(h tag.Header) (int32, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsInt32(h)
}

func (up *Unpacker) AsInt16(h tag.Header) (int16, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsInt16(h)
}

func (up *Unpacker) AsInt8(h tag.Header) (int8, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsInt8(h)
}

func (up *Unpacker) AsFloat64(h tag.Header) (float64, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsFloat64(h)
}

func (up *Unpacker) AsFloat32(h tag.Header) (float32, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return 0, err
	}
	return up.u.AsFloat32(h)
}

// AsRaw ensures h's entire payload is buffered and returns it as a single
// slice. For large payloads, prefer RawReader, which streams the payload
// without requiring it all to be buffered at once.
func (up *Unpacker) AsRaw(h tag.Header) ([]byte, error) {
	if err := up.ensure(payloadBytesNeeded(h)); err != nil {
		return nil, err
	}
	return up.u.AsRaw(h)
}

// OpenArray returns a Cursor over h's elements.
func (up *Unpacker) OpenArray(h tag.Header) (*Cursor, error) {
	if up.borrowed {
		panic("zigpak/stream: Unpacker.OpenArray called while a RawReader is open")
	}
	c, err := up.u.OpenArray(h)
	if err != nil {
		return nil, err
	}
	return &Cursor{up: up, c: c}, nil
}

// OpenMap returns a Cursor over h's key/value pairs.
func (up *Unpacker) OpenMap(h tag.Header) (*Cursor, error) {
	if up.borrowed {
		panic("zigpak/stream: Unpacker.OpenMap called while a RawReader is open")
	}
	c, err := up.u.OpenMap(h)
	if err != nil {
		return nil, err
	}
	return &Cursor{up: up, c: c}, nil
}

// Skip recursively drains h's value: for primitives, its payload bytes;
// for arrays/maps, every transitive child (spec.md 4.6, skip). An
// incomplete stream surfaces as ErrEndOfStream.
func (up *Unpacker) Skip(h tag.Header) error {
	if !h.Kind.IsStructural() {
		_, err := up.AsRaw(h)
		return err
	}

	var cur *Cursor
	var err error
	if h.Kind.IsMap() {
		cur, err = up.OpenMap(h)
	} else {
		cur, err = up.OpenArray(h)
	}
	if err != nil {
		return err
	}

	for !cur.Done() {
		k, err := cur.Peek()
		if err != nil {
			return err
		}
		ch, err := cur.Advance(k)
		if err != nil {
			return err
		}
		if err := up.Skip(ch); err != nil {
			return err
		}
	}
	return nil
}
