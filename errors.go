package zigpak

import "errors"

// Error taxonomy (spec.md 7). These are checked with errors.Is; the codec
// never wraps them beyond what's documented here, and source/sink errors
// are propagated verbatim rather than wrapped in one of these (the
// teacher's encio package draws the same IOError-vs-Error line, see
// DESIGN.md).
var (
	// ErrBufferEmpty is returned by Unpack.Peek when the buffer has no
	// bytes left. It is recoverable: stream.Unpacker treats it as "refill
	// and retry" and never lets it escape to its own callers.
	ErrBufferEmpty = errors.New("zigpak: buffer empty")

	// ErrUnrecognisedTag is returned when a tag byte is not a valid
	// MessagePack tag (e.g. the reserved 0xc1). The obsolete "raw" family
	// shares its tag bytes with str16/str32, so those bytes are accepted
	// whether or not compatibility mode is on.
	ErrUnrecognisedTag = errors.New("zigpak: unrecognised tag")

	// ErrInvalidValue is returned when the on-wire kind cannot convert to
	// the requested host type, or narrowing would lose information.
	ErrInvalidValue = errors.New("zigpak: invalid value for requested type")

	// ErrValueTooLarge is returned by the encoder when a caller supplies a
	// container/blob length exceeding 2^32-1.
	ErrValueTooLarge = errors.New("zigpak: value too large to encode")
)
