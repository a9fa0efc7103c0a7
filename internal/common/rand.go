package common

import (
	"encoding/hex"
	"io"
)

// MakeRandHexString reads size bytes from r and returns them hex encoded,
// so the result is twice as long as size.
func MakeRandHexString(r io.Reader, size int) (string, error) {
	b, err := ReadRandBytes(r, size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ReadRandBytes returns exactly n bytes read from r.
func ReadRandBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeByteArray overwrites the contents of b with zeros. It is used for key
// material that should not outlive its use. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
