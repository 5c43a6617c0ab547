package encio_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/thislight/zigpak/encio"
)

func randomBytes(rng *rand.Rand, maxLen int) []byte {
	buff := make([]byte, 8+rng.Intn(maxLen))
	rng.Read(buff)
	return buff
}

func testRead(r io.Reader, seed, payloads, maxLen int) error {
	rng := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < payloads; i++ {
		want := randomBytes(rng, maxLen)

		got := make([]byte, len(want))
		if err := encio.Read(got, r); err != nil {
			return fmt.Errorf("read %v bytes: %w", len(want), err)
		}

		if !bytes.Equal(want, got) {
			return fmt.Errorf("read data is different from written data")
		}
	}

	return nil
}

func TestReadWriteRoundTrip(t *testing.T) {
	var buff bytes.Buffer
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		buff.Write(randomBytes(rng, 512))
	}
	if err := testRead(&buff, 1, 100, 512); err != nil {
		t.Fatal(err)
	}
}

func TestReadUnexpectedEOF(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3})
	buff := make([]byte, 8)

	err := encio.Read(buff, r)
	if err == nil {
		t.Fatal("expected an error reading past a short source")
	}
	var ioErr encio.IOError
	if !asIOError(err, &ioErr) {
		t.Fatalf("want an IOError, got %T: %v", err, err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want an error wrapping io.ErrUnexpectedEOF, got %v", err)
	}
}

func asIOError(err error, target *encio.IOError) bool {
	for err != nil {
		if ioErr, ok := err.(encio.IOError); ok {
			*target = ioErr
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
