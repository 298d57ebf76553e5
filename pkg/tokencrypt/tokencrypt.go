// Package tokencrypt encrypts long-lived calendar credentials at rest with
// AES-256-GCM. The stored envelope is base64(nonce ‖ tag ‖ ciphertext) with a
// 12-byte nonce and a 16-byte tag.
package tokencrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	keyLength   = 32 // 256 bits
	nonceLength = 12 // 96 bits, GCM standard
	tagLength   = 16 // 128 bits
)

var (
	// ErrMissingKeyMaterial is returned when no encryption key is configured.
	// The codec never falls back to a default key.
	ErrMissingKeyMaterial = errors.New("tokencrypt: encryption key is not configured")

	// ErrEmptyInput is returned for an empty plaintext or envelope
	ErrEmptyInput = errors.New("tokencrypt: empty input")

	// ErrIntegrityFailure is returned when an envelope is malformed, truncated
	// or fails authentication
	ErrIntegrityFailure = errors.New("tokencrypt: invalid or corrupted ciphertext")
)

// Codec performs authenticated encryption with a process-wide key. Safe for
// concurrent use; carries no per-call state.
type Codec struct {
	aead cipher.AEAD
}

// New derives the cipher key from the configured key material. Material
// shorter than 32 bytes is stretched with SHA-256, longer material is
// truncated to 32 bytes. Empty material is a fatal precondition.
func New(keyMaterial string) (*Codec, error) {
	if keyMaterial == "" {
		return nil, ErrMissingKeyMaterial
	}

	var key []byte
	if len(keyMaterial) < keyLength {
		sum := sha256.Sum256([]byte(keyMaterial))
		key = sum[:]
	} else {
		key = []byte(keyMaterial)[:keyLength]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("tokencrypt: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("tokencrypt: init GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce, so two encryptions of
// the same secret produce unlinkable envelopes.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyInput
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("tokencrypt: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)

	// Seal appends the tag after the ciphertext; the stored layout keeps the
	// tag between nonce and ciphertext.
	ciphertext := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	envelope := make([]byte, 0, nonceLength+len(sealed))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt opens an envelope produced by Encrypt. Any malformed, truncated or
// tampered envelope fails with ErrIntegrityFailure; a wrong-but-plausible
// plaintext is never returned.
func (c *Codec) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", ErrEmptyInput
	}

	envelope, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope: %v", ErrIntegrityFailure, err)
	}
	if len(envelope) < nonceLength+tagLength {
		return "", fmt.Errorf("%w: envelope too short", ErrIntegrityFailure)
	}

	nonce := envelope[:nonceLength]
	tag := envelope[nonceLength : nonceLength+tagLength]
	ciphertext := envelope[nonceLength+tagLength:]

	sealed := make([]byte, 0, len(ciphertext)+tagLength)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrIntegrityFailure)
	}

	return string(plaintext), nil
}
