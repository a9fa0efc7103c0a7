package cryptox

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/evote/internal/common"
)

// MaxBallotSize is the RSA-OAEP plaintext bound for a KeyBits modulus with
// SHA-256: k - 2*hLen - 2 bytes. Ballot schema changes must stay below it.
const MaxBallotSize = KeyBits/8 - 2*sha256.Size - 2

// Ballot is the plaintext vote before encryption.
type Ballot struct {
	CandidateID string `json:"candidateId"`
}

// CheckBallotSize fails with ErrBallotTooLarge when b would not fit into a
// single RSA-OAEP block.
func CheckBallotSize(b Ballot) error {
	_, err := marshalBallot(b)
	return err
}

func marshalBallot(b Ballot) ([]byte, error) {
	plaintext, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	if len(plaintext) > MaxBallotSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", common.ErrBallotTooLarge, len(plaintext), MaxBallotSize)
	}
	return plaintext, nil
}

// EncryptBallot serializes b to JSON, encrypts it with RSA-OAEP (SHA-256)
// under publicPEM and returns standard base64 ciphertext.
func EncryptBallot(random io.Reader, b Ballot, publicPEM string) (string, error) {
	pub, err := parsePublicKey(publicPEM)
	if err != nil {
		return "", fmt.Errorf("parse public key: %w", err)
	}

	plaintext, err := marshalBallot(b)
	if err != nil {
		return "", err
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), random, pub, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("encrypt ballot: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// BallotOpener decrypts ballots of one election. The private key is parsed
// once so a tally does not re-parse it for every vote. It holds no mutable
// state and may be shared between goroutines.
type BallotOpener struct {
	key *rsa.PrivateKey
}

// NewBallotOpener parses privatePEM. A key that cannot be parsed is
// reported as common.ErrKeyUnavailable.
func NewBallotOpener(privatePEM string) (*BallotOpener, error) {
	key, err := parsePrivateKey(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyUnavailable, err)
	}
	return &BallotOpener{key: key}, nil
}

// Open reverses EncryptBallot. Every failure (bad base64, wrong key,
// corrupted ciphertext, malformed JSON) is common.ErrDecryption.
func (o *BallotOpener) Open(ciphertext string) (Ballot, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return Ballot{}, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, o.key, raw, nil)
	if err != nil {
		return Ballot{}, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	defer common.WipeByteArray(plaintext)

	var b Ballot
	if err := json.Unmarshal(plaintext, &b); err != nil {
		return Ballot{}, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return b, nil
}

// DecryptBallot is a one-shot convenience around NewBallotOpener and Open.
func DecryptBallot(ciphertext, privatePEM string) (Ballot, error) {
	o, err := NewBallotOpener(privatePEM)
	if err != nil {
		return Ballot{}, err
	}
	return o.Open(ciphertext)
}
