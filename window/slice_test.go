package window_test

import (
	"testing"

	"github.com/thislight/zigpak/window"
)

func TestSlicedDetectsSameBackingArray(t *testing.T) {
	buff := make([]byte, 16)
	sub := buff[4:10]

	off, ok := window.Sliced(buff, sub)
	if !ok || off != 4 {
		t.Fatalf("Sliced(buff, buff[4:10]) = %v, %v, want 4, true", off, ok)
	}
}

func TestSlicedRejectsUnrelatedSlice(t *testing.T) {
	buff := make([]byte, 16)
	other := make([]byte, 16)

	if _, ok := window.Sliced(buff, other); ok {
		t.Fatal("Sliced(buff, other) = true, want false for unrelated backing arrays")
	}
}

func TestSetCapBoundsLengthAndCapacity(t *testing.T) {
	buff := make([]byte, 10, 20)
	got := window.SetCap(buff, 5)
	if len(got) != 5 {
		t.Fatalf("SetCap shrank length to %v, want 5", len(got))
	}
	if cap(got) != 5 {
		t.Fatalf("SetCap set capacity to %v, want 5", cap(got))
	}
}
