package zigpak

import (
	"encoding/binary"
	"io"
	"math"
)

// Pack is the value encoder (C4): it chooses the smallest valid tag for
// numbers, emits nil/bool, and emits string/binary/ext/array/map headers,
// writing everything to a caller-owned sink. Pack performs no buffering
// and no allocation; it is a thin wrapper around the Prefix emitter (C3).
//
// The zero value is not usable; construct with NewPack. A Pack must not be
// shared between goroutines (spec.md 5).
type Pack struct {
	w io.Writer
}

// NewPack returns a Pack writing to w. w may be a *bytes.Buffer for buffer
// mode, or any stream sink for stream mode - Pack does not distinguish the
// two; it never buffers beyond one Prefix.
func NewPack(w io.Writer) *Pack {
	return &Pack{w: w}
}

func (pk *Pack) write(b []byte) error {
	_, err := pk.w.Write(b)
	return err // propagated verbatim, spec.md 4.4(a)
}

func (pk *Pack) writePrefix(p *Prefix) error {
	return pk.write(p.Bytes())
}

// EncodeNil writes the nil tag.
func (pk *Pack) EncodeNil() error {
	var p Prefix
	EmitNil(&p)
	return pk.writePrefix(&p)
}

// EncodeBool writes the false/true tag.
func (pk *Pack) EncodeBool(v bool) error {
	var p Prefix
	EmitBool(&p, v)
	return pk.writePrefix(&p)
}

// EncodeUint writes v using the smallest tag that represents it (spec.md
// 4.3, "Integers, minimal mode").
func (pk *Pack) EncodeUint(v uint64) error {
	var p Prefix
	if EmitUintMinimal(&p, v) {
		return pk.writePrefix(&p)
	}
	return pk.encodeUint64(v)
}

// EncodeInt writes v using the smallest tag that represents it.
func (pk *Pack) EncodeInt(v int64) error {
	var p Prefix
	if EmitIntMinimal(&p, v) {
		return pk.writePrefix(&p)
	}
	if v >= 0 {
		return pk.encodeUint64(uint64(v))
	}
	return pk.encodeInt64(v)
}

// encodeUint64/encodeInt64 write the 9-byte (tag + 8 data bytes) uint64/
// int64 header directly to the sink - it does not fit in a 6-byte Prefix,
// so it bypasses Prefix entirely, matching spec.md 3's fixed Prefix size.
func (pk *Pack) encodeUint64(v uint64) error {
	var buf [9]byte
	buf[0] = tagByteUint64
	binary.BigEndian.PutUint64(buf[1:], v)
	return pk.write(buf[:])
}

func (pk *Pack) encodeInt64(v int64) error {
	var buf [9]byte
	buf[0] = tagByteInt64
	binary.BigEndian.PutUint64(buf[1:], uint64(v))
	return pk.write(buf[:])
}

// EncodeUintTyped writes v using the exact tag for width (spec.md 4.3,
// "Integers, typed mode"), irrespective of v's magnitude.
func (pk *Pack) EncodeUintTyped(width IntWidth, v uint64) error {
	if width == WidthU64 {
		return pk.encodeUint64(v)
	}
	var p Prefix
	EmitUintTyped(&p, width, v)
	return pk.writePrefix(&p)
}

// EncodeIntTyped writes v using the exact tag for width.
func (pk *Pack) EncodeIntTyped(width IntWidth, v int64) error {
	if width == WidthI64 {
		return pk.encodeInt64(v)
	}
	var p Prefix
	EmitIntTyped(&p, width, v)
	return pk.writePrefix(&p)
}

// EncodeFloat writes v as a float32 if it round-trips exactly through one,
// else as a float64 (spec.md 4.3, "Floats, minimal mode"). Floats are
// always big-endian on the wire (spec.md 6.1).
func (pk *Pack) EncodeFloat(v float64) error {
	if fitsFloat32(v) {
		var p Prefix
		EmitFloat32(&p, float32(v))
		return pk.writePrefix(&p)
	}
	return pk.EncodeFloat64(v)
}

// EncodeFloat32 writes v as a float32 unconditionally.
func (pk *Pack) EncodeFloat32(v float32) error {
	var p Prefix
	EmitFloat32(&p, v)
	return pk.writePrefix(&p)
}

// EncodeFloat64 writes v as a float64 unconditionally; this, like
// uint64/int64, bypasses Prefix (9 bytes total).
func (pk *Pack) EncodeFloat64(v float64) error {
	var buf [9]byte
	buf[0] = tagByteFloat64
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(v))
	return pk.write(buf[:])
}

// EncodeStrHeader writes the minimal-width string header for a payload of
// n bytes. The caller writes the n payload bytes to the same sink itself;
// EncodeStr writes header and payload together.
func (pk *Pack) EncodeStrHeader(n int) error {
	var p Prefix
	if err := EmitStrHeader(&p, n); err != nil {
		return err
	}
	return pk.writePrefix(&p)
}

// EncodeStr writes a complete fixstr/str8/str16/str32 value: header then
// payload.
func (pk *Pack) EncodeStr(s string) error {
	if err := pk.EncodeStrHeader(len(s)); err != nil {
		return err
	}
	_, err := io.WriteString(pk.w, s)
	return err
}

// EncodeBinHeader writes the minimal-width binary header for a payload of
// n bytes.
func (pk *Pack) EncodeBinHeader(n int) error {
	var p Prefix
	if err := EmitBinHeader(&p, n); err != nil {
		return err
	}
	return pk.writePrefix(&p)
}

// EncodeBin writes a complete bin8/16/32 value: header then payload.
func (pk *Pack) EncodeBin(b []byte) error {
	if err := pk.EncodeBinHeader(len(b)); err != nil {
		return err
	}
	return pk.write(b)
}

// EncodeArrayHeader writes the minimal-width array header for n elements.
// The caller then encodes exactly n values with this same Pack.
func (pk *Pack) EncodeArrayHeader(n int) error {
	var p Prefix
	if err := EmitArrayHeader(&p, n); err != nil {
		return err
	}
	return pk.writePrefix(&p)
}

// EncodeMapHeader writes the minimal-width map header for n key/value
// pairs. The caller then encodes exactly 2*n values with this same Pack.
func (pk *Pack) EncodeMapHeader(n int) error {
	var p Prefix
	if err := EmitMapHeader(&p, n); err != nil {
		return err
	}
	return pk.writePrefix(&p)
}

// EncodeExtHeader writes the minimal-width ext header for n data bytes and
// the given ext type. The caller writes the n payload bytes itself.
func (pk *Pack) EncodeExtHeader(n int, extType int8) error {
	var p Prefix
	if err := EmitExtHeader(&p, n, extType); err != nil {
		return err
	}
	return pk.writePrefix(&p)
}

// EncodeExt writes a complete ext value: header then payload.
func (pk *Pack) EncodeExt(extType int8, data []byte) error {
	if err := pk.EncodeExtHeader(len(data), extType); err != nil {
		return err
	}
	return pk.write(data)
}
