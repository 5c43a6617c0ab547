package tag

// LookupMode selects classify's implementation strategy (spec.md 4.1,
// 6.4). It is a package variable rather than a build tag: this module does
// not wire build-time footprint selection (out of scope, SPEC_FULL.md 1) -
// a caller who wants the size-oriented table simply sets this before
// calling Classify.
type LookupMode int

const (
	// LookupAll uses the 256-entry direct table; fastest, one cache line
	// per few lookups, no branching. Default in speed-oriented builds.
	LookupAll LookupMode = iota
	// LookupSmall uses the 32-entry 0xc0..0xdf table composed with four
	// mask checks for the five fixed families. Default in size-oriented
	// builds.
	LookupSmall
	// LookupNone bypasses both tables and calls classifyDirect every time.
	LookupNone
)

// DefaultLookupMode is the mode ClassifyDefault passes to Classify.
var DefaultLookupMode = LookupAll

// table256 and table32 are both built by calling classifyDirect for every
// byte they cover, so they can never disagree with the Direct strategy or
// each other (spec.md 4.1, 9 "Lookup-table selection").
var (
	table256 [256]Kind
	table32  [32]Kind // covers 0xc0..0xdf
)

func init() {
	for i := 0; i < 256; i++ {
		table256[i] = classifyDirect(byte(i))
	}
	for i := 0; i < 32; i++ {
		table32[i] = classifyDirect(byte(0xc0 + i))
	}
}

// Classify returns the Kind of tag byte b using the given LookupMode, or
// KindInvalid if b is not a recognised tag (spec.md P1: classify is total
// over [0,255]).
func Classify(b byte, mode LookupMode) Kind {
	switch mode {
	case LookupNone:
		return classifyDirect(b)
	case LookupSmall:
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
		case b >= 0xc0 && b <= 0xdf:
			return table32[b-0xc0]
		default:
			return KindInvalid
		}
	default: // LookupAll
		return table256[b]
	}
}

// ClassifyDefault classifies using DefaultLookupMode.
func ClassifyDefault(b byte) Kind {
	return Classify(b, DefaultLookupMode)
}

// PayloadKind describes whether a kind's payload size is fully determined
// by the tag itself (Known) or must be read from the header (Variable).
type PayloadKind int

const (
	PayloadKnown PayloadKind = iota
	PayloadVariable
)

// HeaderDataBytes returns the number of bytes following the tag byte that
// must be read to complete the header: 0 for primitives whose value lives
// in the tag, 1/2/4 for str/bin length, 2/3/5 for ext (length + ext-type
// byte), 1 for fixext (the ext-type byte is the only header byte, counted
// here), etc.
func HeaderDataBytes(k Kind) int {
	switch k {
	case KindNil, KindBoolFalse, KindBoolTrue, KindPosFixint, KindNegFixint,
		KindFixstr, KindFixarray, KindFixmap:
		return 0
	case KindUint8, KindInt8, KindUint16, KindInt16, KindUint32, KindInt32,
		KindFloat32, KindUint64, KindInt64, KindFloat64:
		// The header itself needs no extra bytes beyond the tag; the
		// value's bytes are payload, read later by a scalar converter
		// (spec.md 4.1: header_data_bytes is 0 for anything not needing
		// extra bytes to know the header, which for fixed-width numbers
		// is just the tag).
		return 0
	case KindStr8, KindBin8:
		return 1
	case KindStr16, KindBin16, KindArray16, KindMap16, KindObsoleteRaw16:
		return 2
	case KindStr32, KindBin32, KindArray32, KindMap32, KindObsoleteRaw32:
		return 4
	case KindFixext1, KindFixext2, KindFixext4, KindFixext8, KindFixext16:
		return 1 // the ext-type byte
	case KindExt8:
		return 1 + 1 // length byte + ext-type byte
	case KindExt16:
		return 2 + 1
	case KindExt32:
		return 4 + 1
	default:
		return 0
	}
}

// PayloadBytesKnown returns the payload byte count for kinds whose payload
// size is fully determined by the tag (PayloadKnown), and (0,
// PayloadVariable) for variable kinds (string/binary/ext/array/map), whose
// true size comes from the decoded header.
func PayloadBytesKnown(k Kind) (n int, kind PayloadKind) {
	switch k {
	case KindNil, KindBoolFalse, KindBoolTrue, KindPosFixint, KindNegFixint:
		return 0, PayloadKnown
	case KindUint8, KindInt8:
		return 1, PayloadKnown
	case KindUint16, KindInt16:
		return 2, PayloadKnown
	case KindUint32, KindInt32, KindFloat32:
		return 4, PayloadKnown
	case KindUint64, KindInt64, KindFloat64:
		return 8, PayloadKnown
	case KindFixext1:
		return 1, PayloadKnown
	case KindFixext2:
		return 2, PayloadKnown
	case KindFixext4:
		return 4, PayloadKnown
	case KindFixext8:
		return 8, PayloadKnown
	case KindFixext16:
		return 16, PayloadKnown
	default:
		return 0, PayloadVariable
	}
}

// FetchHint returns the minimum number of bytes a streamer should try to
// have available before calling into the decoder for this tag: the tag
// byte itself, plus header_data_bytes, plus the payload bytes if known
// (spec.md 4.1).
func FetchHint(k Kind) int {
	n, pk := PayloadBytesKnown(k)
	hint := 1 + HeaderDataBytes(k)
	if pk == PayloadKnown {
		hint += n
	}
	return hint
}
