package stream

import "github.com/thislight/zigpak/tag"

// Cursor is the stream-mode counterpart of zigpak.Cursor: it drives the
// same declared-length bookkeeping, but refills the owning Unpacker's
// window before every Peek/Advance instead of assuming the bytes are
// already there.
type Cursor struct {
	up *Unpacker
	c  cursorHandle
}

// cursorHandle is the subset of *zigpak.Cursor's behaviour Cursor needs;
// kept as an interface-shaped alias so this file only imports tag.
type cursorHandle = interface {
	IsMap() bool
	Len() int
	Remaining() int
	Done() bool
	OnValue() bool
	Peek() (tag.Kind, error)
	Advance(tag.Kind) tag.Header
}

// IsMap reports whether this cursor was opened from a map header.
func (c *Cursor) IsMap() bool { return c.c.IsMap() }

// Len returns the declared element (or pair) count.
func (c *Cursor) Len() int { return c.c.Len() }

// Remaining returns how many elements (or pairs) are left.
func (c *Cursor) Remaining() int { return c.c.Remaining() }

// Done reports whether the cursor has yielded its full declared length.
func (c *Cursor) Done() bool { return c.c.Done() }

// OnValue reports, for a map cursor, whether the next Advance yields a
// value rather than a key.
func (c *Cursor) OnValue() bool { return c.c.OnValue() }

// Peek refills the owning Unpacker's window as needed and returns the
// next child's Kind, or (KindInvalid, nil) once the cursor is exhausted.
func (c *Cursor) Peek() (tag.Kind, error) {
	if c.Done() {
		return tag.KindInvalid, nil
	}
	if err := c.up.ensure(1); err != nil {
		return tag.KindInvalid, err
	}
	return c.c.Peek()
}

// Advance refills as needed, then consumes the next child's header.
func (c *Cursor) Advance(kind tag.Kind) (tag.Header, error) {
	need := 1 + tag.HeaderDataBytes(kind)
	if err := c.up.ensure(need); err != nil {
		return tag.Header{}, err
	}
	return c.c.Advance(kind), nil
}

// Unpacker returns the Cursor's owning Unpacker, for reading a child
// value's payload (AsUint64, AsRaw, RawReader, ...) or opening a nested
// cursor on a child array/map header.
func (c *Cursor) Unpacker() *Unpacker { return c.up }
