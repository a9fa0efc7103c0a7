package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/evote/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	sealedPrefix = "sealed:v1:"
	sealSaltSize = 16
)

// DeriveSealKey stretches secret into a 32-byte AES key with argon2id.
func DeriveSealKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// KeySealer protects election private keys at rest. With an empty secret
// it is a pass-through and keys are stored as plain PEM.
//
// Sealed format: "sealed:v1:" + base64(salt | nonce | AES-GCM ciphertext).
type KeySealer struct {
	secret []byte
	random io.Reader
}

// NewKeySealer returns a sealer for secret. A nil random falls back to
// crypto/rand.
func NewKeySealer(secret string, random io.Reader) *KeySealer {
	if random == nil {
		random = rand.Reader
	}
	return &KeySealer{secret: []byte(secret), random: random}
}

// Enabled reports whether a sealing secret is configured.
func (s *KeySealer) Enabled() bool { return len(s.secret) > 0 }

// IsSealed reports whether stored carries the sealed-key prefix.
func IsSealed(stored string) bool { return strings.HasPrefix(stored, sealedPrefix) }

// Seal encrypts privatePEM, or returns it unchanged when sealing is disabled.
func (s *KeySealer) Seal(privatePEM string) (string, error) {
	if !s.Enabled() {
		return privatePEM, nil
	}

	salt, err := common.ReadRandBytes(s.random, sealSaltSize)
	if err != nil {
		return "", err
	}

	key := DeriveSealKey(s.secret, salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce, err := common.ReadRandBytes(s.random, aesgcm.NonceSize())
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, len(salt)+len(nonce)+len(privatePEM)+aesgcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aesgcm.Seal(blob, nonce, []byte(privatePEM), nil)

	return sealedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// Open returns the PEM behind stored. Unsealed values pass through; sealed
// values need the same secret they were sealed with, otherwise
// common.ErrKeyUnavailable is returned.
func (s *KeySealer) Open(stored string) (string, error) {
	encoded, ok := strings.CutPrefix(stored, sealedPrefix)
	if !ok {
		return stored, nil
	}
	if !s.Enabled() {
		return "", fmt.Errorf("%w: key is sealed and no secret is configured", common.ErrKeyUnavailable)
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(blob) < sealSaltSize {
		return "", fmt.Errorf("%w: malformed sealed key", common.ErrKeyUnavailable)
	}

	key := DeriveSealKey(s.secret, blob[:sealSaltSize])
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	rest := blob[sealSaltSize:]
	if len(rest) < aesgcm.NonceSize() {
		return "", fmt.Errorf("%w: malformed sealed key", common.ErrKeyUnavailable)
	}
	nonce, ciphertext := rest[:aesgcm.NonceSize()], rest[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
