package stream_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/thislight/zigpak"
	"github.com/thislight/zigpak/stream"
	"github.com/thislight/zigpak/tag"
)

// oneByteAtATime returns exactly one byte per Read call, regardless of how
// large the caller's buffer is - spec.md scenario 6's streaming source.
type oneByteAtATime struct {
	data []byte
	pos  int
}

func (s *oneByteAtATime) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	p[0] = s.data[s.pos]
	s.pos++
	return 1, nil
}

func mustAdvance(t *testing.T, up *stream.Unpacker) tag.Header {
	t.Helper()
	k, err := up.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	h, err := up.Advance(k)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return h
}

func TestStreamDecodesOneByteAtATime(t *testing.T) {
	// encode_minimal([nil, 1, "Hi"]) from spec.md scenario 5/6.
	wire := []byte{0x93, 0xc0, 0x01, 0xa2, 'H', 'i'}
	up := stream.NewUnpacker(&oneByteAtATime{data: wire})

	h := mustAdvance(t, up)
	arr, err := up.OpenArray(h)
	if err != nil {
		t.Fatalf("OpenArray: %v", err)
	}
	if arr.Len() != 3 {
		t.Fatalf("array Len() = %v, want 3", arr.Len())
	}

	k, err := arr.Peek()
	if err != nil {
		t.Fatalf("Cursor.Peek: %v", err)
	}
	ch, err := arr.Advance(k)
	if err != nil {
		t.Fatalf("Cursor.Advance: %v", err)
	}
	if err := up.AsNil(ch); err != nil {
		t.Fatalf("AsNil: %v", err)
	}

	k, err = arr.Peek()
	if err != nil {
		t.Fatalf("Cursor.Peek: %v", err)
	}
	ch, err = arr.Advance(k)
	if err != nil {
		t.Fatalf("Cursor.Advance: %v", err)
	}
	v, err := up.AsUint64(ch)
	if err != nil || v != 1 {
		t.Fatalf("AsUint64 = %v, %v, want 1, nil", v, err)
	}

	k, err = arr.Peek()
	if err != nil {
		t.Fatalf("Cursor.Peek: %v", err)
	}
	ch, err = arr.Advance(k)
	if err != nil {
		t.Fatalf("Cursor.Advance: %v", err)
	}
	raw, err := up.AsRaw(ch)
	if err != nil || string(raw) != "Hi" {
		t.Fatalf("AsRaw = %q, %v, want %q, nil", raw, err, "Hi")
	}

	if !arr.Done() {
		t.Fatal("array cursor not Done after 3 elements")
	}

	if _, err := up.Peek(); !errors.Is(err, stream.ErrEndOfStream) {
		t.Fatalf("Peek() after last element error = %v, want ErrEndOfStream", err)
	}
	if _, err := up.Peek(); !errors.Is(err, stream.ErrEndOfStream) {
		t.Fatalf("second Peek() after end error = %v, want ErrEndOfStream (idempotent)", err)
	}
}

func TestStreamRefillsAcrossChunkBoundaries(t *testing.T) {
	defer func(orig int) { stream.MinRefill = orig }(stream.MinRefill)
	stream.MinRefill = 1

	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	if err := pk.EncodeStr("a value longer than one refill chunk"); err != nil {
		t.Fatalf("EncodeStr: %v", err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	raw, err := up.AsRaw(h)
	if err != nil {
		t.Fatalf("AsRaw: %v", err)
	}
	if string(raw) != "a value longer than one refill chunk" {
		t.Fatalf("AsRaw = %q, want the original string", raw)
	}
}

func TestStreamEndOfStreamMidValue(t *testing.T) {
	// A str16 header declaring 10 bytes, but only 3 are ever supplied.
	wire := []byte{0xda, 0x00, 0x0a, 'a', 'b', 'c'}
	up := stream.NewUnpacker(bytes.NewReader(wire))

	h := mustAdvance(t, up)
	if _, err := up.AsRaw(h); !errors.Is(err, stream.ErrEndOfStream) {
		t.Fatalf("AsRaw on truncated payload error = %v, want ErrEndOfStream", err)
	}
}

func TestStreamSkipDrainsNestedContainers(t *testing.T) {
	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	if err := pk.EncodeArrayHeader(2); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeArrayHeader(2); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(1); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(2); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(3); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeStr("tail"); err != nil {
		t.Fatal(err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	if err := up.Skip(h); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	h = mustAdvance(t, up)
	raw, err := up.AsRaw(h)
	if err != nil || string(raw) != "tail" {
		t.Fatalf("AsRaw after Skip = %q, %v, want %q, nil", raw, err, "tail")
	}
}

func TestStreamSkipDrainsMap(t *testing.T) {
	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	if err := pk.EncodeMapHeader(2); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeStr("a"); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(1); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeStr("b"); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(2); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeStr("tail"); err != nil {
		t.Fatal(err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	if err := up.Skip(h); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	h = mustAdvance(t, up)
	raw, err := up.AsRaw(h)
	if err != nil || string(raw) != "tail" {
		t.Fatalf("AsRaw after Skip(map) = %q, %v, want %q, nil", raw, err, "tail")
	}
}

func TestRawReaderStreamsPayloadInPieces(t *testing.T) {
	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	payload := bytes.Repeat([]byte("x"), 50)
	if err := pk.EncodeBin(payload); err != nil {
		t.Fatal(err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	rr, err := up.RawReader(h)
	if err != nil {
		t.Fatalf("RawReader: %v", err)
	}

	got, err := io.ReadAll(rr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("RawReader payload mismatch: got %v bytes, want %v bytes", len(got), len(payload))
	}
}

func TestRawReaderAbandonedEarlyStillSyncsPosition(t *testing.T) {
	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	if err := pk.EncodeBin([]byte("0123456789")); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeStr("next"); err != nil {
		t.Fatal(err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	rr, err := up.RawReader(h)
	if err != nil {
		t.Fatalf("RawReader: %v", err)
	}
	small := make([]byte, 3)
	if _, err := rr.Read(small); err != nil {
		t.Fatalf("RawReader.Read: %v", err)
	}
	if err := rr.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	h = mustAdvance(t, up)
	raw, err := up.AsRaw(h)
	if err != nil || string(raw) != "next" {
		t.Fatalf("AsRaw after abandoned RawReader = %q, %v, want %q, nil", raw, err, "next")
	}
}

func TestStreamCursorUnpackerReadsChildScalars(t *testing.T) {
	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	if err := pk.EncodeArrayHeader(2); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(10); err != nil {
		t.Fatal(err)
	}
	if err := pk.EncodeUint(20); err != nil {
		t.Fatal(err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	arr, err := up.OpenArray(h)
	if err != nil {
		t.Fatalf("OpenArray: %v", err)
	}

	if arr.Unpacker() != up {
		t.Fatal("Cursor.Unpacker() did not return the owning Unpacker")
	}

	var got []uint64
	for !arr.Done() {
		k, err := arr.Peek()
		if err != nil {
			t.Fatalf("Cursor.Peek: %v", err)
		}
		ch, err := arr.Advance(k)
		if err != nil {
			t.Fatalf("Cursor.Advance: %v", err)
		}
		v, err := arr.Unpacker().AsUint64(ch)
		if err != nil {
			t.Fatalf("AsUint64 via Cursor.Unpacker(): %v", err)
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Fatalf("got %v, want [10 20]", got)
	}
}

func TestPeekPanicsWhileRawReaderBorrowed(t *testing.T) {
	var buf bytes.Buffer
	pk := zigpak.NewPack(&buf)
	if err := pk.EncodeBin([]byte("abc")); err != nil {
		t.Fatal(err)
	}

	up := stream.NewUnpacker(&buf)
	h := mustAdvance(t, up)
	if _, err := up.RawReader(h); err != nil {
		t.Fatalf("RawReader: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Peek while a RawReader is open did not panic")
		}
	}()
	up.Peek()
}
