package abi_test

import (
	"bytes"
	"testing"

	"github.com/thislight/zigpak/abi"
)

func TestUnpackInitBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	d := abi.UnpackInit(buf)
	if got := d.Bytes(); !bytes.Equal(got, buf) {
		t.Fatalf("Bytes() = %v, want %v", got, buf)
	}
}

func TestUnpackInitEmpty(t *testing.T) {
	d := abi.UnpackInit(nil)
	if d.Ptr != nil {
		t.Fatalf("Ptr = %p, want nil", d.Ptr)
	}
	if got := d.Bytes(); got != nil {
		t.Fatalf("Bytes() = %v, want nil", got)
	}
}

func TestUnpackDescriptorSetAppend(t *testing.T) {
	buf := []byte{1, 2, 3}
	d := abi.UnpackInit(buf)

	// consume one byte, mirroring what a shim does between unpack steps
	d.Ptr = &d.Bytes()[1]
	d.Len = 2

	grown := append(append([]byte{}, buf...), 4, 5)
	d.SetAppend(len(buf), grown)

	want := []byte{2, 3, 4, 5}
	if got := d.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("Bytes() after SetAppend = %v, want %v", got, want)
	}
}

func TestUnpackDescriptorSetAppendFullyConsumed(t *testing.T) {
	buf := []byte{1, 2}
	d := abi.UnpackInit(buf)
	d.Len = 0
	d.Ptr = nil

	grown := append(append([]byte{}, buf...), 3, 4, 5)
	d.SetAppend(len(buf), grown)

	want := []byte{3, 4, 5}
	if got := d.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("Bytes() after SetAppend = %v, want %v", got, want)
	}
}
