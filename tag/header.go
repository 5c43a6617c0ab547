package tag

import "encoding/binary"

// Header is the fully-decoded record for one MessagePack value: its Kind,
// the Size (payload byte count for str/bin/ext/fixext, element/pair count
// for array/map, data-byte count for fixed-width uint/int/float, the
// decoded value itself for fixint, 0 for nil/bool), and ExtType
// (meaningful only for ext/fixext kinds).
type Header struct {
	Kind    Kind
	Size    int
	ExtType int8
}

// DecodeHeader reads exactly HeaderDataBytes(kind) bytes from data and
// builds the Header. data must have at least that many bytes; DecodeHeader
// is a programmer-error panic, not a data error, if it does not - callers
// (Unpack.Advance) are responsible for checking Len first (spec.md 4.2).
//
// fixByte is the original tag byte, needed to recover the fixed value for
// fixint/fixstr/fixarray/fixmap kinds, whose "header data" is zero bytes
// because the value lives in the tag itself.
func DecodeHeader(kind Kind, fixByte byte, data []byte) Header {
	need := HeaderDataBytes(kind)
	if len(data) < need {
		panic("tag: DecodeHeader: not enough header bytes")
	}

	switch kind {
	case KindNil, KindBoolFalse, KindBoolTrue:
		return Header{Kind: kind}
	case KindPosFixint, KindNegFixint:
		return Header{Kind: kind, Size: FixValue(kind, fixByte)}
	case KindFixstr:
		return Header{Kind: kind, Size: FixValue(kind, fixByte)}
	case KindFixarray, KindFixmap:
		return Header{Kind: kind, Size: FixValue(kind, fixByte)}

	case KindUint8, KindInt8, KindUint16, KindInt16, KindUint32, KindInt32,
		KindUint64, KindInt64, KindFloat32, KindFloat64:
		// The header needs no data bytes (header_data_bytes is 0); Size
		// records how many payload bytes a scalar converter must still
		// read, matching spec.md 3 ("size is... the data-byte count").
		n, _ := PayloadBytesKnown(kind)
		return Header{Kind: kind, Size: n}
	case KindFixext1, KindFixext2, KindFixext4, KindFixext8, KindFixext16:
		n, _ := PayloadBytesKnown(kind)
		return Header{Kind: kind, Size: n, ExtType: int8(data[0])}

	case KindStr8, KindBin8:
		return Header{Kind: kind, Size: int(data[0])}
	case KindStr16, KindBin16, KindArray16, KindMap16, KindObsoleteRaw16:
		return Header{Kind: kind, Size: int(binary.BigEndian.Uint16(data))}
	case KindStr32, KindBin32, KindArray32, KindMap32, KindObsoleteRaw32:
		return Header{Kind: kind, Size: int(binary.BigEndian.Uint32(data))}

	case KindExt8:
		return Header{Kind: kind, Size: int(data[0]), ExtType: int8(data[1])}
	case KindExt16:
		return Header{Kind: kind, Size: int(binary.BigEndian.Uint16(data[:2])), ExtType: int8(data[2])}
	case KindExt32:
		return Header{Kind: kind, Size: int(binary.BigEndian.Uint32(data[:4])), ExtType: int8(data[4])}

	default:
		panic("tag: DecodeHeader: unrecognised kind")
	}
}
