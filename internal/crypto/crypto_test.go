package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateRandomBytes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"16 bytes", 16},
		{"24 bytes", 24},
		{"32 bytes", 32},
		{"zero bytes", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateRandomBytes(tt.size)
			if err != nil {
				t.Fatalf("GenerateRandomBytes() error = %v", err)
			}

			if len(got) != tt.size {
				t.Errorf("GenerateRandomBytes() got length = %d, want %d", len(got), tt.size)
			}
		})
	}

	// Two calls should produce different results
	t.Run("randomness", func(t *testing.T) {
		b1, _ := GenerateRandomBytes(32)

		b2, _ := GenerateRandomBytes(32)
		if bytes.Equal(b1, b2) {
			t.Error("GenerateRandomBytes() produced identical results")
		}
	})
}

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	if len(salt) != SaltSize {
		t.Errorf("GenerateSalt() got length = %d, want %d", len(salt), SaltSize)
	}
}

func TestDeriveKeyDeterminism(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	k1 := DeriveKey("correct horse battery staple", salt)
	defer k1.Zero()

	k2 := DeriveKey("correct horse battery staple", salt)
	defer k2.Zero()

	if !bytes.Equal(k1.Bytes(), k2.Bytes()) {
		t.Error("DeriveKey() is not deterministic for identical inputs")
	}

	k3 := DeriveKey("a different password", salt)
	defer k3.Zero()

	if bytes.Equal(k1.Bytes(), k3.Bytes()) {
		t.Error("DeriveKey() produced the same key for different passwords")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	salt, _ := GenerateSalt()

	key := DeriveKey("test_password_123", salt)
	defer key.Zero()

	tests := []struct {
		name string
		data []byte
	}{
		{"simple text", []byte("hello world")},
		{"empty data", []byte("")},
		{"binary data", []byte{0x00, 0x01, 0x02, 0xff, 0xfe}},
		{"long data", bytes.Repeat([]byte("a"), 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encrypted, err := Encrypt(key, tt.data)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			if len(encrypted) < NonceSize+TagSize {
				t.Fatalf("Encrypt() blob too short: %d bytes", len(encrypted))
			}

			decrypted, err := Decrypt(key, encrypted)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}

			if !bytes.Equal(decrypted, tt.data) {
				t.Errorf("Decrypt() got = %v, want %v", decrypted, tt.data)
			}
		})
	}
}

func TestEncryptNonceUniqueness(t *testing.T) {
	salt, _ := GenerateSalt()

	key := DeriveKey("test_password", salt)
	defer key.Zero()

	plaintext := []byte("same message")

	e1, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	e2, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if bytes.Equal(e1, e2) {
		t.Error("Encrypt() produced identical ciphertexts for the same plaintext")
	}

	if bytes.Equal(e1[:NonceSize], e2[:NonceSize]) {
		t.Error("Encrypt() reused a nonce")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	salt, _ := GenerateSalt()

	k1 := DeriveKey("password1", salt)
	defer k1.Zero()

	k2 := DeriveKey("password2", salt)
	defer k2.Zero()

	encrypted, err := Encrypt(k1, []byte("secret data"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err := Decrypt(k2, encrypted); err == nil {
		t.Error("Decrypt() succeeded with the wrong key")
	}
}

func TestDecryptTamperDetection(t *testing.T) {
	salt, _ := GenerateSalt()

	key := DeriveKey("test_password", salt)
	defer key.Zero()

	encrypted, err := Encrypt(key, []byte("tamper target"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	// Flip a single bit at every position: nonce, ciphertext and tag
	for i := range encrypted {
		tampered := bytes.Clone(encrypted)
		tampered[i] ^= 0x01

		if _, err := Decrypt(key, tampered); err == nil {
			t.Fatalf("Decrypt() accepted blob with bit flipped at offset %d", i)
		}
	}
}

func TestDecryptTooShort(t *testing.T) {
	salt, _ := GenerateSalt()

	key := DeriveKey("test_password", salt)
	defer key.Zero()

	for _, n := range []int{0, 1, NonceSize, NonceSize + TagSize - 1} {
		if _, err := Decrypt(key, make([]byte, n)); err == nil {
			t.Errorf("Decrypt() accepted a %d-byte blob", n)
		}
	}
}

func TestHashContent(t *testing.T) {
	h1 := HashContent([]byte("test data"))

	// SHA-256 produces 64 hex characters
	if len(h1) != 64 {
		t.Errorf("HashContent() got length = %d, want 64", len(h1))
	}

	if h2 := HashContent([]byte("test data")); h2 != h1 {
		t.Error("HashContent() is not deterministic")
	}

	if h3 := HashContent([]byte("different data")); h3 == h1 {
		t.Error("HashContent() collided on different inputs")
	}
}
