// Package zigpak is a MessagePack codec operating at single-value
// granularity. It is built from a pair of tightly-coupled engines: Pack
// encodes host values into the MessagePack wire format using the smallest
// valid tag for the value; Unpack decodes that format back into host
// values one value at a time, without ever buffering an entire document.
//
// Two execution modes are offered. This package is the buffer mode: the
// caller supplies (Unpack) or receives (Pack) contiguous byte slices, and
// no I/O happens here. The stream mode, which drives Unpack from an
// arbitrary io.Reader with its own refill buffer, lives in the stream
// subpackage.
//
// Arrays and maps are structural, not collected into trees: opening an
// array or map header returns a Cursor bound to this Unpack, and the
// caller pulls exactly as many child values as the header declares.
//
// zigpak performs no allocation of its own. Every Unpack method operates
// on a caller-owned slice; every Pack destination is a caller-owned byte
// sink. A single Pack or Unpack must not be shared between goroutines.
package zigpak
