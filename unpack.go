package zigpak

import (
	"encoding/binary"
	"math"

	"github.com/thislight/zigpak/tag"
)

// Unpack is the buffer-mode decoder (C5): a stateless-over-bytes consumer
// of a caller-owned byte slice. It never allocates and never reads past
// what the current header declares (spec.md I4).
//
// The zero value is ready to use with an empty view; construct with
// NewUnpack to wrap an existing slice.
type Unpack struct {
	rest []byte
	cfg  Config
}

// NewUnpack wraps buf for decoding with DefaultConfig. buf's unread bytes
// start at index 0.
func NewUnpack(buf []byte) *Unpack {
	return NewUnpackConfig(buf, DefaultConfig)
}

// NewUnpackConfig wraps buf for decoding under cfg. A RawCompat caller gets
// KindObsoleteRaw16/32 back from Advance in place of KindStr16/32 (spec.md
// 6.1) without having to call tag.ReinterpretRaw itself.
func NewUnpackConfig(buf []byte, cfg Config) *Unpack {
	return &Unpack{rest: buf, cfg: cfg}
}

// Rest returns the unread view. Callers building the ABI descriptor
// (package abi) or re-supplying this Unpack across a boundary use this.
func (u *Unpack) Rest() []byte { return u.rest }

// Len returns the number of unread bytes.
func (u *Unpack) Len() int { return len(u.rest) }

// SetAppend swaps in a longer view of the same logical stream, preserving
// the unread offset: oldTotalLen is the length of the buffer this Unpack
// was last looking at (not just the unread portion), and newView is a
// (possibly re-based, possibly grown) buffer holding the same bytes plus
// more appended at the end. This is how a caller stitches multiple reads
// together without copying (spec.md 4.5).
func (u *Unpack) SetAppend(oldTotalLen int, newView []byte) {
	off := oldTotalLen - len(u.rest)
	u.rest = newView[off:]
}

// Rebase replaces the unread view wholesale, for a caller that has just
// compacted or otherwise rebuilt its backing buffer and knows the entire
// new slice is unread (spec.md 4.6's "window is compacted to the start of
// the refill buffer" case - package stream uses this after reclaiming
// consumed bytes from its refill buffer).
func (u *Unpack) Rebase(buf []byte) { u.rest = buf }

// Take consumes and returns up to n bytes from the front of the unread
// view, taking fewer if fewer remain, with no header interpretation at
// all. Exported for package stream's raw-payload sub-reader, which must
// deliver partial reads of a value's payload as they arrive rather than
// wait for the whole thing to be buffered.
func (u *Unpack) Take(n int) []byte {
	if n > len(u.rest) {
		n = len(u.rest)
	}
	b := u.rest[:n]
	u.rest = u.rest[n:]
	return b
}

// Peek returns the next value's Kind without consuming anything, or
// ErrBufferEmpty if there are no bytes left, or ErrUnrecognisedTag if the
// next byte is not a valid tag.
func (u *Unpack) Peek() (tag.Kind, error) {
	if len(u.rest) == 0 {
		return tag.KindInvalid, ErrBufferEmpty
	}
	k := tag.ClassifyDefault(u.rest[0])
	if k == tag.KindInvalid {
		return k, ErrUnrecognisedTag
	}
	return k, nil
}

// Advance consumes the tag byte and its header_data_bytes, returning the
// full Header. The precondition is len(u.Rest()) >= 1+tag.HeaderDataBytes
// (kind); violating it is a programmer error and panics (spec.md 4.5,
// I4) rather than returning a data error - callers are expected to have
// just called Peek and know the kind, and in stream mode the refill loop
// guarantees enough bytes are buffered before Advance is called.
func (u *Unpack) Advance(kind tag.Kind) tag.Header {
	need := 1 + tag.HeaderDataBytes(kind)
	if len(u.rest) < need {
		panic("zigpak: Unpack.Advance: precondition violated, not enough bytes buffered")
	}
	fixByte := u.rest[0]
	h := tag.DecodeHeader(kind, fixByte, u.rest[1:need])
	u.rest = u.rest[need:]
	if u.cfg.RawCompat {
		h = tag.ReinterpretRaw(h)
	}
	return h
}

// AsNil consumes no payload bytes and confirms h is KindNil.
func (u *Unpack) AsNil(h tag.Header) error {
	if h.Kind != tag.KindNil {
		return ErrInvalidValue
	}
	return nil
}

// AsBool converts h to a bool. KindBoolFalse/KindBoolTrue carry the value
// in the tag; there is no payload to consume.
func (u *Unpack) AsBool(h tag.Header) (bool, error) {
	switch h.Kind {
	case tag.KindBoolTrue:
		return true, nil
	case tag.KindBoolFalse:
		return false, nil
	default:
		return false, ErrInvalidValue
	}
}

// payload returns and consumes the next n bytes of the payload that h
// declares. It panics if fewer than n bytes are buffered - the same
// programmer-error precondition as Advance: a caller must not try to
// convert a header before its payload has fully arrived (spec.md I4 names
// this buffer-empty for the *caller's* own checking via Len(); having
// gotten this far with Advance already called, running out here is a
// logic error in the Unpack user, not data-driven).
func (u *Unpack) payload(n int) []byte {
	if len(u.rest) < n {
		panic("zigpak: Unpack: payload not fully buffered, check Len() before converting")
	}
	b := u.rest[:n]
	u.rest = u.rest[n:]
	return b
}

// AsUint64 converts h to a uint64. An on-wire signed negative is rejected
// (spec.md 4.5).
func (u *Unpack) AsUint64(h tag.Header) (uint64, error) {
	switch h.Kind {
	case tag.KindPosFixint:
		return uint64(h.Size), nil
	case tag.KindNegFixint:
		return 0, ErrInvalidValue
	case tag.KindUint8:
		return uint64(u.payload(1)[0]), nil
	case tag.KindUint16:
		return uint64(binary.BigEndian.Uint16(u.payload(2))), nil
	case tag.KindUint32:
		return uint64(binary.BigEndian.Uint32(u.payload(4))), nil
	case tag.KindUint64:
		return binary.BigEndian.Uint64(u.payload(8)), nil
	case tag.KindInt8:
		v := int8(u.payload(1)[0])
		if v < 0 {
			return 0, ErrInvalidValue
		}
		return uint64(v), nil
	case tag.KindInt16:
		v := int16(binary.BigEndian.Uint16(u.payload(2)))
		if v < 0 {
			return 0, ErrInvalidValue
		}
		return uint64(v), nil
	case tag.KindInt32:
		v := int32(binary.BigEndian.Uint32(u.payload(4)))
		if v < 0 {
			return 0, ErrInvalidValue
		}
		return uint64(v), nil
	case tag.KindInt64:
		v := int64(binary.BigEndian.Uint64(u.payload(8)))
		if v < 0 {
			return 0, ErrInvalidValue
		}
		return uint64(v), nil
	default:
		return 0, ErrInvalidValue
	}
}

// AsUint32 converts h to a uint32, rejecting values that would not fit
// (spec.md 4.5: narrowing that loses information is invalid-value, not
// silent wraparound).
func (u *Unpack) AsUint32(h tag.Header) (uint32, error) {
	v, err := u.AsUint64(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrInvalidValue
	}
	return uint32(v), nil
}

// AsUint16 converts h to a uint16, rejecting values that would not fit.
func (u *Unpack) AsUint16(h tag.Header) (uint16, error) {
	v, err := u.AsUint64(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, ErrInvalidValue
	}
	return uint16(v), nil
}

// AsUint8 converts h to a uint8, rejecting values that would not fit
// (spec.md scenario 9: as_int<u8> of 256 is invalid-value).
func (u *Unpack) AsUint8(h tag.Header) (uint8, error) {
	v, err := u.AsUint64(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, ErrInvalidValue
	}
	return uint8(v), nil
}

// AsInt64 converts h to an int64. An on-wire unsigned value that exceeds
// int64's positive range is rejected.
func (u *Unpack) AsInt64(h tag.Header) (int64, error) {
	switch h.Kind {
	case tag.KindPosFixint:
		return int64(h.Size), nil
	case tag.KindNegFixint:
		return int64(h.Size), nil
	case tag.KindUint8:
		return int64(u.payload(1)[0]), nil
	case tag.KindUint16:
		return int64(binary.BigEndian.Uint16(u.payload(2))), nil
	case tag.KindUint32:
		return int64(binary.BigEndian.Uint32(u.payload(4))), nil
	case tag.KindUint64:
		v := binary.BigEndian.Uint64(u.payload(8))
		if v > math.MaxInt64 {
			return 0, ErrInvalidValue
		}
		return int64(v), nil
	case tag.KindInt8:
		return int64(int8(u.payload(1)[0])), nil
	case tag.KindInt16:
		return int64(int16(binary.BigEndian.Uint16(u.payload(2)))), nil
	case tag.KindInt32:
		return int64(int32(binary.BigEndian.Uint32(u.payload(4)))), nil
	case tag.KindInt64:
		return int64(binary.BigEndian.Uint64(u.payload(8))), nil
	default:
		return 0, ErrInvalidValue
	}
}

// AsInt32 converts h to an int32, rejecting values that would not fit.
func (u *Unpack) AsInt32(h tag.Header) (int32, error) {
	v, err := u.AsInt64(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, ErrInvalidValue
	}
	return int32(v), nil
}

// AsInt16 converts h to an int16, rejecting values that would not fit.
func (u *Unpack) AsInt16(h tag.Header) (int16, error) {
	v, err := u.AsInt64(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt16 || v < math.MinInt16 {
		return 0, ErrInvalidValue
	}
	return int16(v), nil
}

// AsInt8 converts h to an int8, rejecting values that would not fit.
func (u *Unpack) AsInt8(h tag.Header) (int8, error) {
	v, err := u.AsInt64(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt8 || v < math.MinInt8 {
		return 0, ErrInvalidValue
	}
	return int8(v), nil
}

// AsFloat64 converts h to a float64. A float32 on the wire widens exactly.
// Integer kinds are always accepted (spec.md 4.5 only mandates truncation
// rules for float-to-int, not the reverse): integers up to 2^53 in
// magnitude convert exactly, larger ones are rounded to the nearest
// float64, and a uint64 above math.MaxInt64 is rejected by AsInt64.
func (u *Unpack) AsFloat64(h tag.Header) (float64, error) {
	switch h.Kind {
	case tag.KindFloat32:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(u.payload(4)))), nil
	case tag.KindFloat64:
		return math.Float64frombits(binary.BigEndian.Uint64(u.payload(8))), nil
	case tag.KindPosFixint, tag.KindNegFixint, tag.KindUint8, tag.KindUint16,
		tag.KindUint32, tag.KindUint64, tag.KindInt8, tag.KindInt16,
		tag.KindInt32, tag.KindInt64:
		v, err := u.AsInt64(h)
		if err != nil {
			return 0, err
		}
		return float64(v), nil
	default:
		return 0, ErrInvalidValue
	}
}

// AsFloat32 converts h to a float32.
func (u *Unpack) AsFloat32(h tag.Header) (float32, error) {
	switch h.Kind {
	case tag.KindFloat32:
		return math.Float32frombits(binary.BigEndian.Uint32(u.payload(4))), nil
	case tag.KindFloat64:
		// Narrowing float64->float32 would lose information, but the payload
		// must still be consumed before rejecting - AsFloat64 does that.
		if _, err := u.AsFloat64(h); err != nil {
			return 0, err
		}
		return 0, ErrInvalidValue
	default:
		v, err := u.AsFloat64(h)
		if err != nil {
			return 0, err
		}
		return float32(v), nil
	}
}

// AsRaw returns the payload slice following the tag for any
// non-structural value (spec.md 4.5). Array/map headers fail: those are
// structural, not raw. nil/bool/fixint have no payload bytes at all (their
// value lives entirely in the tag Advance already consumed) and AsRaw
// returns an empty, non-nil slice for them rather than an error, since
// they are valid non-structural values with zero-length raw form.
func (u *Unpack) AsRaw(h tag.Header) ([]byte, error) {
	switch h.Kind {
	case tag.KindNil, tag.KindBoolFalse, tag.KindBoolTrue,
		tag.KindPosFixint, tag.KindNegFixint:
		return u.rest[:0], nil
	case tag.KindFixarray, tag.KindArray16, tag.KindArray32,
		tag.KindFixmap, tag.KindMap16, tag.KindMap32:
		return nil, ErrInvalidValue
	default:
		// Every other kind's Header.Size is a genuine remaining-byte
		// count: fixed-width numerics (uint8/16/32/64, int8/16/32/64,
		// float32/64) carry their known payload length, and
		// string/binary/ext/fixext carry the length read from the header.
		return u.payload(h.Size), nil
	}
}

// OpenArray returns a Cursor over h's n elements. h.Kind must be an array
// family kind; OpenMap is the pair-aware counterpart.
func (u *Unpack) OpenArray(h tag.Header) (*Cursor, error) {
	if h.Kind != tag.KindFixarray && h.Kind != tag.KindArray16 && h.Kind != tag.KindArray32 {
		return nil, ErrInvalidValue
	}
	return &Cursor{u: u, declared: h.Size, isMap: false}, nil
}

// OpenMap returns a Cursor over h's n key/value pairs (2n values).
func (u *Unpack) OpenMap(h tag.Header) (*Cursor, error) {
	if !h.Kind.IsMap() {
		return nil, ErrInvalidValue
	}
	return &Cursor{u: u, declared: h.Size, isMap: true}, nil
}
