package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Crypto constants
const (
	// Key derivation (Argon2id)
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4

	// Sizes
	SaltSize  = 16
	KeySize   = 32
	NonceSize = chacha20poly1305.NonceSizeX // 24, XChaCha20-Poly1305
	TagSize   = chacha20poly1305.Overhead
)

// ErrDecryptFailed is returned when a ciphertext is too short or its
// authentication tag does not verify. No plaintext is ever released on
// this path.
var ErrDecryptFailed = errors.New("decryption failed: wrong key or corrupted data")

// GenerateRandomBytes generates cryptographically secure random bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return b, nil
}

// GenerateSalt generates a random salt for key derivation.
func GenerateSalt() ([]byte, error) {
	return GenerateRandomBytes(SaltSize)
}

// DeriveKey derives a 256-bit master key from a password and salt using
// Argon2id. The call is deliberately expensive (hundreds of milliseconds)
// and must happen once per command, never per watcher tick.
func DeriveKey(password string, salt []byte) *MasterKey {
	raw := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, KeySize)

	return newMasterKey(raw)
}

// Encrypt seals plaintext under the master key with XChaCha20-Poly1305.
// A fresh random 24-byte nonce is generated for every call; the result is
// nonce || ciphertext || tag.
func Encrypt(key *MasterKey, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce, err := GenerateRandomBytes(NonceSize)
	if err != nil {
		return nil, err
	}

	// Seal appends to the nonce slice, yielding nonce || ciphertext || tag
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt. The authentication tag is
// verified before any plaintext is returned; a failed check yields
// ErrDecryptFailed.
func Decrypt(key *MasterKey, blob []byte) ([]byte, error) {
	if len(blob) < NonceSize+TagSize {
		return nil, ErrDecryptFailed
	}

	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	return plaintext, nil
}

// HashContent computes the SHA-256 hex digest of plaintext bytes. The
// digest is used for deduplication only, never as a security boundary.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// SecureZero zeroes out a byte slice to prevent sensitive data from lingering in memory.
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
