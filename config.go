package zigpak

// Config mirrors the build-time options of spec.md 6.4 as plain struct
// fields rather than build tags (this module does not wire build-tag
// plumbing - that's the build configuration named out of scope in
// spec.md 1). It follows the teacher's habit (gram.NewGramSize,
// encio.TooBig) of exposing tunables as ordinary variables a caller sets
// before use, not a parsed config file or flag set.
type Config struct {
	// RawCompat labels decoded values with the obsolete pre-2013 "raw"
	// family (spec.md 6.1). Default false: the encoder never emits it
	// either way. Because the obsolete tags are bit-identical to
	// str16/str32 (tag/tag.go's ReinterpretRaw), enabling this does not
	// change which bytes decode successfully - 0xda/0xdb decode as
	// str16/str32 with it off - it only makes Advance pass each Header
	// through tag.ReinterpretRaw, relabelling str16/str32 as
	// KindObsoleteRaw16/32 for callers that want to tell the two apart.
	RawCompat bool
}

// DefaultConfig is the zero-value Config: RawCompat disabled, matching
// spec.md 6.1's "this specification disables it by default".
var DefaultConfig = Config{}
