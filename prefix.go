package zigpak

import (
	"encoding/binary"
	"math"
)

// Prefix is a ≤6-byte stack buffer holding a freshly emitted header: the
// tag byte plus at most 5 length/ext-type bytes (ext32's header is the
// widest, at 1 tag + 4 length + 1 ext-type). It has no ownership and is
// trivially copyable - spec.md 3, component C7.
type Prefix struct {
	buf [6]byte
	n   int
}

// Bytes returns the emitted header bytes.
func (p *Prefix) Bytes() []byte { return p.buf[:p.n] }

// Len returns the number of bytes emitted into the prefix.
func (p *Prefix) Len() int { return p.n }

func (p *Prefix) reset() { p.n = 0 }

func (p *Prefix) put1(b byte) {
	p.buf[0] = b
	p.n = 1
}

func (p *Prefix) put2(a, b byte) {
	p.buf[0], p.buf[1] = a, b
	p.n = 2
}

// appendTagAndLen writes tag followed by a big-endian length field of width
// bytes, setting the prefix length to the total header length.
func (p *Prefix) appendTagAndLen(tagByte byte, width int, length uint64) {
	p.buf[0] = tagByte
	switch width {
	case 0:
		p.n = 1
	case 1:
		p.buf[1] = byte(length)
		p.n = 2
	case 2:
		binary.BigEndian.PutUint16(p.buf[1:3], uint16(length))
		p.n = 3
	case 4:
		binary.BigEndian.PutUint32(p.buf[1:5], uint32(length))
		p.n = 5
	}
}

// EmitNil writes the nil tag.
func EmitNil(p *Prefix) { p.put1(tagByteNil) }

// EmitBool writes the false/true tag for v.
func EmitBool(p *Prefix, v bool) {
	if v {
		p.put1(tagByteTrue)
	} else {
		p.put1(tagByteFalse)
	}
}

// EmitStrHeader writes the minimal-width string header for a payload of n
// bytes (spec.md 4.3): fixstr for n<=31, str8/16/32 otherwise.
func EmitStrHeader(p *Prefix, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrValueTooLarge
	}
	switch {
	case n <= 31:
		p.put1(fixstrBase | byte(n))
	case n <= 0xff:
		p.appendTagAndLen(tagByteStr8, 1, uint64(n))
	case n <= 0xffff:
		p.appendTagAndLen(tagByteStr16, 2, uint64(n))
	default:
		p.appendTagAndLen(tagByteStr32, 4, uint64(n))
	}
	return nil
}

// EmitBinHeader writes the minimal-width binary header for a payload of n
// bytes. There is no fix-bin variant.
func EmitBinHeader(p *Prefix, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrValueTooLarge
	}
	switch {
	case n <= 0xff:
		p.appendTagAndLen(tagByteBin8, 1, uint64(n))
	case n <= 0xffff:
		p.appendTagAndLen(tagByteBin16, 2, uint64(n))
	default:
		p.appendTagAndLen(tagByteBin32, 4, uint64(n))
	}
	return nil
}

// EmitArrayHeader writes the minimal-width array header for n elements.
func EmitArrayHeader(p *Prefix, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrValueTooLarge
	}
	switch {
	case n <= 15:
		p.put1(fixarrayBase | byte(n))
	case n <= 0xffff:
		p.appendTagAndLen(tagByteArray16, 2, uint64(n))
	default:
		p.appendTagAndLen(tagByteArray32, 4, uint64(n))
	}
	return nil
}

// EmitMapHeader writes the minimal-width map header for n key/value pairs.
func EmitMapHeader(p *Prefix, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrValueTooLarge
	}
	switch {
	case n <= 15:
		p.put1(fixmapBase | byte(n))
	case n <= 0xffff:
		p.appendTagAndLen(tagByteMap16, 2, uint64(n))
	default:
		p.appendTagAndLen(tagByteMap32, 4, uint64(n))
	}
	return nil
}

// EmitExtHeader writes the minimal-width ext header for n data bytes and
// the given ext type: the matching fixext when n is one of {1,2,4,8,16},
// else the smallest of ext8/16/32 whose length field fits (spec.md 4.3).
func EmitExtHeader(p *Prefix, n int, extType int8) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrValueTooLarge
	}
	switch n {
	case 1:
		p.put2(tagByteFixext1, byte(extType))
		return nil
	case 2:
		p.put2(tagByteFixext2, byte(extType))
		return nil
	case 4:
		p.put2(tagByteFixext4, byte(extType))
		return nil
	case 8:
		p.put2(tagByteFixext8, byte(extType))
		return nil
	case 16:
		p.put2(tagByteFixext16, byte(extType))
		return nil
	}
	switch {
	case n <= 0xff:
		p.appendTagAndLen(tagByteExt8, 1, uint64(n))
	case n <= 0xffff:
		p.appendTagAndLen(tagByteExt16, 2, uint64(n))
	default:
		p.appendTagAndLen(tagByteExt32, 4, uint64(n))
	}
	p.buf[p.n] = byte(extType)
	p.n++
	return nil
}

// IntWidth names an exact integer wire width for typed-mode encoding
// (spec.md 4.3, "Integers, typed mode"): the emitter uses the smallest tag
// that represents the named width exactly, irrespective of the value.
type IntWidth int

const (
	WidthU7  IntWidth = iota // positive fixint, 0..127
	WidthI6                  // negative fixint, -1..-32
	WidthU8                  // uint8 tag
	WidthI8                  // int8 tag
	WidthU16
	WidthI16
	WidthU32
	WidthI32
	WidthU64
	WidthI64
)

// EmitUintTyped writes v using the exact tag for width, without consulting
// v's magnitude. The caller must ensure v fits in width. Only widths up to
// 32 bits fit in a Prefix (≤6 bytes); 64-bit widths are written directly
// to the destination by Pack, not through a Prefix - see pack.go.
func EmitUintTyped(p *Prefix, width IntWidth, v uint64) {
	switch width {
	case WidthU7:
		p.put1(byte(v))
	case WidthU8:
		p.put2(tagByteUint8, byte(v))
	case WidthU16:
		p.buf[0] = tagByteUint16
		binary.BigEndian.PutUint16(p.buf[1:3], uint16(v))
		p.n = 3
	case WidthU32:
		p.buf[0] = tagByteUint32
		binary.BigEndian.PutUint32(p.buf[1:5], uint32(v))
		p.n = 5
	default:
		panic("zigpak: EmitUintTyped: width does not fit in a Prefix")
	}
}

// EmitIntTyped writes v using the exact tag for width.
func EmitIntTyped(p *Prefix, width IntWidth, v int64) {
	switch width {
	case WidthI6:
		p.put1(byte(v))
	case WidthI8:
		p.put2(tagByteInt8, byte(v))
	case WidthI16:
		p.buf[0] = tagByteInt16
		binary.BigEndian.PutUint16(p.buf[1:3], uint16(v))
		p.n = 3
	case WidthI32:
		p.buf[0] = tagByteInt32
		binary.BigEndian.PutUint32(p.buf[1:5], uint32(v))
		p.n = 5
	default:
		panic("zigpak: EmitIntTyped: width does not fit in a Prefix")
	}
}

// EmitUintMinimal writes v using the smallest tag that represents it:
// fixint, then uint8, uint16, uint32 in ascending order (spec.md 4.3).
// Positive fixint is always preferred over uint8 for 0..127. It reports
// false without writing anything if v needs the 64-bit tag, since a
// uint64 header (tag + 8 bytes) does not fit in a 6-byte Prefix; callers
// fall back to Pack's direct-to-sink 64-bit path in that case.
func EmitUintMinimal(p *Prefix, v uint64) (ok bool) {
	switch {
	case v <= 127:
		p.put1(byte(v))
	case v <= 0xff:
		p.put2(tagByteUint8, byte(v))
	case v <= 0xffff:
		p.buf[0] = tagByteUint16
		binary.BigEndian.PutUint16(p.buf[1:3], uint16(v))
		p.n = 3
	case v <= 0xffffffff:
		p.buf[0] = tagByteUint32
		binary.BigEndian.PutUint32(p.buf[1:5], uint32(v))
		p.n = 5
	default:
		return false
	}
	return true
}

// EmitIntMinimal is EmitUintMinimal's signed counterpart: negative-fixint
// for -1..-32, then int8, int16, int32. Positive values defer to
// EmitUintMinimal (fixint preferred over any signed tag).
func EmitIntMinimal(p *Prefix, v int64) (ok bool) {
	if v >= 0 {
		return EmitUintMinimal(p, uint64(v))
	}
	switch {
	case v >= -32:
		p.put1(byte(v))
	case v >= -128:
		p.put2(tagByteInt8, byte(v))
	case v >= -32768:
		p.buf[0] = tagByteInt16
		binary.BigEndian.PutUint16(p.buf[1:3], uint16(v))
		p.n = 3
	case v >= -2147483648:
		p.buf[0] = tagByteInt32
		binary.BigEndian.PutUint32(p.buf[1:5], uint32(v))
		p.n = 5
	default:
		return false
	}
	return true
}

// EmitFloat32 writes v as a big-endian IEEE-754 float32.
func EmitFloat32(p *Prefix, v float32) {
	p.buf[0] = tagByteFloat32
	binary.BigEndian.PutUint32(p.buf[1:5], math.Float32bits(v))
	p.n = 5
}

// fitsFloat32 reports whether v round-trips exactly through a float32
// (spec.md 4.3, "Floats, minimal mode").
func fitsFloat32(v float64) bool {
	return float64(float32(v)) == v
}

// Tag byte constants local to the emitter; mirrors tag.Tag* but kept here
// to avoid every EmitX call paying an import-qualified lookup, matching
// the teacher's habit (encio/int.go) of inlining small constants next to
// their one use site.
const (
	tagByteNil     = 0xc0
	tagByteFalse   = 0xc2
	tagByteTrue    = 0xc3
	tagByteBin8    = 0xc4
	tagByteBin16   = 0xc5
	tagByteBin32   = 0xc6
	tagByteExt8    = 0xc7
	tagByteExt16   = 0xc8
	tagByteExt32   = 0xc9
	tagByteFloat32 = 0xca
	tagByteFloat64 = 0xcb
	tagByteUint8   = 0xcc
	tagByteUint16  = 0xcd
	tagByteUint32  = 0xce
	tagByteUint64  = 0xcf
	tagByteInt8    = 0xd0
	tagByteInt16   = 0xd1
	tagByteInt32   = 0xd2
	tagByteInt64   = 0xd3

	tagByteFixext1  = 0xd4
	tagByteFixext2  = 0xd5
	tagByteFixext4  = 0xd6
	tagByteFixext8  = 0xd7
	tagByteFixext16 = 0xd8

	tagByteStr8  = 0xd9
	tagByteStr16 = 0xda
	tagByteStr32 = 0xdb

	tagByteArray16 = 0xdc
	tagByteArray32 = 0xdd

	tagByteMap16 = 0xde
	tagByteMap32 = 0xdf

	fixmapBase   = 0x80
	fixarrayBase = 0x90
	fixstrBase   = 0xa0
)
