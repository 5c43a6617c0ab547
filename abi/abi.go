// Package abi exposes the foreign-callable descriptor for the buffer-mode
// unpacker (spec.md 6.2), translated from original_source/src/zigpak.h's
// struct zigpak_unpack / zigpak_unpack_init / zigpak_unpack_set_append
// into Go's pointer+length idiom. It supplies only the stable descriptor
// and the two operations a cgo shim would wrap with //export symbols;
// building that shim is out of scope.
package abi

import "unsafe"

// UnpackDescriptor is the ABI-stable record a foreign caller holds: a raw
// pointer to the first unread byte and the number of unread bytes
// remaining, laid out the way zigpak_unpack is in the C header (a
// pointer field followed by a length field, no padding games attempted -
// a cgo shim exporting this type must keep the same field order).
type UnpackDescriptor struct {
	Ptr *byte
	Len uintptr
}

// UnpackInit returns a descriptor over buf's current contents, mirroring
// zigpak_unpack_init(buffer, len). buf may be empty; Ptr is then nil.
func UnpackInit(buf []byte) UnpackDescriptor {
	if len(buf) == 0 {
		return UnpackDescriptor{}
	}
	return UnpackDescriptor{Ptr: unsafe.SliceData(buf), Len: uintptr(len(buf))}
}

// SetAppend updates d in place after the caller has appended more bytes
// to the same logical stream, mirroring zigpak_unpack_set_append(olen,
// buffer, len). oldLen is the total length of the buffer d was last
// pointing into (not just d.Len, the unread portion); buf is the new,
// possibly reallocated, buffer holding the same bytes plus more appended
// at the end. This is the ABI translation of zigpak.Unpack.SetAppend.
func (d *UnpackDescriptor) SetAppend(oldLen int, buf []byte) {
	off := oldLen - int(d.Len)
	rest := buf[off:]
	if len(rest) == 0 {
		*d = UnpackDescriptor{}
		return
	}
	d.Ptr = unsafe.SliceData(rest)
	d.Len = uintptr(len(rest))
}

// Bytes reconstructs the Go slice view of d's unread bytes. A foreign
// caller never calls this directly - it exists for the Go-side shim code
// that hands a descriptor's region back into the zigpak/tag decoders.
func (d UnpackDescriptor) Bytes() []byte {
	if d.Ptr == nil {
		return nil
	}
	return unsafe.Slice(d.Ptr, int(d.Len))
}
