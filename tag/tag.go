// Package tag classifies MessagePack tag bytes into logical header kinds
// and describes how many bytes follow the tag before a header is complete.
//
// This is C1 of the codec: a total function from byte to Kind (or
// KindInvalid), plus the per-kind metadata (header_data_bytes, payload_kind,
// fetch_hint) the header decoder and stream unpacker build on.
package tag

import "fmt"

// Kind identifies the logical family of a MessagePack tag byte.
// The fixed-value families (fixint, fixstr, fixarray, fixmap) collapse
// many tag bytes onto one Kind; decoding the fixed value itself happens in
// the header decoder, not here.
type Kind int8

const (
	KindInvalid Kind = iota

	KindNil
	KindBoolFalse
	KindBoolTrue

	KindPosFixint
	KindNegFixint

	KindUint8
	KindUint16
	KindUint32
	KindUint64

	KindInt8
	KindInt16
	KindInt32
	KindInt64

	KindFloat32
	KindFloat64

	KindFixstr
	KindStr8
	KindStr16
	KindStr32

	KindBin8
	KindBin16
	KindBin32

	KindFixarray
	KindArray16
	KindArray32

	KindFixmap
	KindMap16
	KindMap32

	KindFixext1
	KindFixext2
	KindFixext4
	KindFixext8
	KindFixext16
	KindExt8
	KindExt16
	KindExt32

	// KindObsoleteRaw16/32 label the pre-2013 "raw" family. Their tag
	// bytes (0xda/0xdb) are bit-identical to today's str16/str32 - the old
	// spec had no separate bin type, so classify never produces these on
	// its own. An Unpack configured with RawCompat passes each
	// already-decoded Str16/Str32 header through ReinterpretRaw in
	// Advance; see ReinterpretRaw's doc and DESIGN.md's Open Question
	// entry for why there is no separate byte range to gate here.
	KindObsoleteRaw16
	KindObsoleteRaw32
)

// String implements fmt.Stringer, mostly for test failure messages.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNil:
		return "nil"
	case KindBoolFalse:
		return "false"
	case KindBoolTrue:
		return "true"
	case KindPosFixint:
		return "posfixint"
	case KindNegFixint:
		return "negfixint"
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return fmt.Sprintf("uint%d", 8<<(k-KindUint8))
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return fmt.Sprintf("int%d", 8<<(k-KindInt8))
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindFixstr:
		return "fixstr"
	case KindStr8:
		return "str8"
	case KindStr16:
		return "str16"
	case KindStr32:
		return "str32"
	case KindBin8:
		return "bin8"
	case KindBin16:
		return "bin16"
	case KindBin32:
		return "bin32"
	case KindFixarray:
		return "fixarray"
	case KindArray16:
		return "array16"
	case KindArray32:
		return "array32"
	case KindFixmap:
		return "fixmap"
	case KindMap16:
		return "map16"
	case KindMap32:
		return "map32"
	case KindFixext1:
		return "fixext1"
	case KindFixext2:
		return "fixext2"
	case KindFixext4:
		return "fixext4"
	case KindFixext8:
		return "fixext8"
	case KindFixext16:
		return "fixext16"
	case KindExt8:
		return "ext8"
	case KindExt16:
		return "ext16"
	case KindExt32:
		return "ext32"
	case KindObsoleteRaw16:
		return "raw16"
	case KindObsoleteRaw32:
		return "raw32"
	default:
		return "unknown"
	}
}

// IsStructural reports whether values of this kind are arrays or maps -
// streamed element-by-element rather than converted to a scalar.
func (k Kind) IsStructural() bool {
	switch k {
	case KindFixarray, KindArray16, KindArray32, KindFixmap, KindMap16, KindMap32:
		return true
	default:
		return false
	}
}

// IsMap reports whether this kind is one of the map families.
func (k Kind) IsMap() bool {
	switch k {
	case KindFixmap, KindMap16, KindMap32:
		return true
	default:
		return false
	}
}

// Tag byte constants, grounded on the canonical MessagePack byte layout
// (see other_examples/vmihailenco-msgpack__codes_test.go and
// other_examples/freeeve-msgpck__format.go in the retrieval pack).
const (
	TagNil   byte = 0xc0
	tagUnused byte = 0xc1 // reserved; never valid
	TagFalse byte = 0xc2
	TagTrue  byte = 0xc3

	TagBin8  byte = 0xc4
	TagBin16 byte = 0xc5
	TagBin32 byte = 0xc6

	TagExt8  byte = 0xc7
	TagExt16 byte = 0xc8
	TagExt32 byte = 0xc9

	TagFloat32 byte = 0xca
	TagFloat64 byte = 0xcb

	TagUint8  byte = 0xcc
	TagUint16 byte = 0xcd
	TagUint32 byte = 0xce
	TagUint64 byte = 0xcf

	TagInt8  byte = 0xd0
	TagInt16 byte = 0xd1
	TagInt32 byte = 0xd2
	TagInt64 byte = 0xd3

	TagFixext1  byte = 0xd4
	TagFixext2  byte = 0xd5
	TagFixext4  byte = 0xd6
	TagFixext8  byte = 0xd7
	TagFixext16 byte = 0xd8

	TagStr8  byte = 0xd9
	TagStr16 byte = 0xda
	TagStr32 byte = 0xdb

	TagArray16 byte = 0xdc
	TagArray32 byte = 0xdd

	TagMap16 byte = 0xde
	TagMap32 byte = 0xdf

	// Fixed-value family bases and masks.
	posFixintMask  byte = 0x80 // b&mask==0 -> positive fixint
	negFixintBase  byte = 0xe0 // b>=base -> negative fixint
	fixmapBase     byte = 0x80
	fixmapMask     byte = 0xf0
	fixarrayBase   byte = 0x90
	fixarrayMask   byte = 0xf0
	fixstrBase     byte = 0xa0
	fixstrMask     byte = 0xe0

	fixValueMask byte = 0x1f // low bits for fixmap/fixarray(0xf)/fixstr(0x1f)/negfixint(0x1f)
)

// classifyDirect classifies b using masked-prefix tests and range matches -
// the "Direct" strategy of spec.md 4.1. Classify's table modes (table.go)
// must agree with this for every byte; both tables are in fact built by
// calling this function for every byte they cover, so they cannot drift
// apart.
func classifyDirect(b byte) Kind {
	switch {
	case b&posFixintMask == 0:
		return KindPosFixint
	case b >= negFixintBase:
		return KindNegFixint
	case b&fixmapMask == fixmapBase:
		return KindFixmap
	case b&fixarrayMask == fixarrayBase:
		return KindFixarray
	case b&fixstrMask == fixstrBase:
		return KindFixstr
	}

	switch b {
	case TagNil:
		return KindNil
	case TagFalse:
		return KindBoolFalse
	case TagTrue:
		return KindBoolTrue
	case TagBin8:
		return KindBin8
	case TagBin16:
		return KindBin16
	case TagBin32:
		return KindBin32
	case TagExt8:
		return KindExt8
	case TagExt16:
		return KindExt16
	case TagExt32:
		return KindExt32
	case TagFloat32:
		return KindFloat32
	case TagFloat64:
		return KindFloat64
	case TagUint8:
		return KindUint8
	case TagUint16:
		return KindUint16
	case TagUint32:
		return KindUint32
	case TagUint64:
		return KindUint64
	case TagInt8:
		return KindInt8
	case TagInt16:
		return KindInt16
	case TagInt32:
		return KindInt32
	case TagInt64:
		return KindInt64
	case TagFixext1:
		return KindFixext1
	case TagFixext2:
		return KindFixext2
	case TagFixext4:
		return KindFixext4
	case TagFixext8:
		return KindFixext8
	case TagFixext16:
		return KindFixext16
	case TagStr8:
		return KindStr8
	case TagStr16:
		return KindStr16
	case TagStr32:
		return KindStr32
	case TagArray16:
		return KindArray16
	case TagArray32:
		return KindArray32
	case TagMap16:
		return KindMap16
	case TagMap32:
		return KindMap32
	default:
		return KindInvalid // tagUnused (0xc1) falls here, as spec'd
	}
}

// ReinterpretRaw relabels a decoded Str16/Str32 Header as the matching
// KindObsoleteRaw16/32, for RawCompat callers that want to distinguish
// "this came off the wire using the byte pattern the pre-2013 format also
// used for raw" from an ordinary modern string. It is a label change only
// - Size is untouched and the payload bytes are read exactly the same way
// either way (spec.md 6.1's compatibility flag cannot change decode
// success here, since there is no tag byte unique to the obsolete family;
// see DESIGN.md). Headers of any other Kind pass through unchanged.
func ReinterpretRaw(h Header) Header {
	switch h.Kind {
	case KindStr16:
		h.Kind = KindObsoleteRaw16
	case KindStr32:
		h.Kind = KindObsoleteRaw32
	}
	return h
}

// FixValue returns the fixed value encoded directly in b's low bits, for the
// fixed-value kinds (fixint, fixstr/fixarray/fixmap length). Callers must
// only call this for a Kind where it is meaningful.
func FixValue(kind Kind, b byte) int {
	switch kind {
	case KindPosFixint:
		return int(b)
	case KindNegFixint:
		return int(int8(b)) // sign-extends the 0b111xxxxx pattern correctly
	case KindFixmap, KindFixarray:
		return int(b & 0x0f)
	case KindFixstr:
		return int(b & fixValueMask)
	default:
		return 0
	}
}
