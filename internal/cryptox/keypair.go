// Package cryptox holds the ballot cryptography: per-election RSA key
// pairs, RSA-OAEP ballot encryption, verification codes and sealing of
// private keys at rest.
package cryptox

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/evote/internal/common"
)

// KeyBits is the RSA modulus size of every election key pair.
const KeyBits = 2048

const (
	publicKeyBlock  = "PUBLIC KEY"
	privateKeyBlock = "PRIVATE KEY"
	rsaPrivateBlock = "RSA PRIVATE KEY"
)

// GenerateKeyPair creates a fresh RSA key pair and returns it PEM encoded:
// the public key as PKIX, the private key as PKCS#8. Any failure is
// reported as common.ErrCryptoSetup.
func GenerateKeyPair(random io.Reader) (publicPEM, privatePEM string, err error) {
	key, err := rsa.GenerateKey(random, KeyBits)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrCryptoSetup, err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrCryptoSetup, err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrCryptoSetup, err)
	}
	defer common.WipeByteArray(privDER)

	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: publicKeyBlock, Bytes: pubDER}))
	privatePEM = string(pem.EncodeToMemory(&pem.Block{Type: privateKeyBlock, Bytes: privDER}))

	return publicPEM, privatePEM, nil
}

func parsePublicKey(publicPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicPEM))
	if block == nil || block.Type != publicKeyBlock {
		return nil, errors.New("no public key PEM block")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return rsaKey, nil
}

func parsePrivateKey(privatePEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return nil, errors.New("no private key PEM block")
	}

	switch block.Type {
	case rsaPrivateBlock:
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case privateKeyBlock:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not RSA")
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("unexpected PEM block %q", block.Type)
	}
}
