// Package crypto implements the secret cipher used to keep third-party API keys
// encrypted at rest.
//
// Blobs have the form hex(nonce) ":" hex(ciphertext||tag). The nonce is random per
// Encrypt call, so a blob can be decrypted with nothing but the process key.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/dtroode/superapp-gateway/internal/model"
)

const (
	blobSeparator = ":"
	keySize       = 32
	hkdfInfo      = "superapp-gateway credential cipher v1"
)

// ErrEmptySecret is returned when the cipher is constructed without a secret.
var ErrEmptySecret = errors.New("crypto: cipher secret must not be empty")

var _ model.SecretCipher = (*Cipher)(nil)

// Cipher is an AES-256-GCM secret cipher keyed by a process-wide secret.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 256-bit key from secret with HKDF-SHA256 and builds the cipher.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("crypto: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: create block cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: create gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypto: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)

	return hex.EncodeToString(nonce) + blobSeparator + hex.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Every failure is reported as model.ErrDecryption.
func (c *Cipher) Decrypt(blob string) (string, error) {
	nonceHex, sealedHex, ok := strings.Cut(blob, blobSeparator)
	if !ok {
		return "", model.ErrDecryption
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", model.ErrDecryption
	}

	sealed, err := hex.DecodeString(sealedHex)
	if err != nil || len(sealed) < c.aead.Overhead() {
		return "", model.ErrDecryption
	}

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", model.ErrDecryption
	}

	return string(plaintext), nil
}
