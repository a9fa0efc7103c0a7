package common

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(rand.Reader, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(rand.Reader, 0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_Deterministic(t *testing.T) {
	s, err := MakeRandHexString(bytes.NewReader([]byte{0xab, 0x01}), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "ab01" {
		t.Fatalf("want ab01, got %q", s)
	}
}

// ---------- ReadRandBytes ----------

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestReadRandBytes_ShortReaderFails(t *testing.T) {
	if _, err := ReadRandBytes(bytes.NewReader([]byte{1, 2}), 8); err == nil {
		t.Fatal("expected error for short reader")
	}
}

func TestReadRandBytes_ReaderError(t *testing.T) {
	if _, err := ReadRandBytes(failingReader{}, 4); err == nil {
		t.Fatal("expected error from failing reader")
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
