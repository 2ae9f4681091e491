package crypto

import "testing"

func TestMasterKeyZero(t *testing.T) {
	salt, _ := GenerateSalt()

	key := DeriveKey("zeroize me", salt)

	// Keep a handle on the backing buffer so the wipe is observable
	backing := key.Bytes()

	if len(backing) != KeySize {
		t.Fatalf("key length = %d, want %d", len(backing), KeySize)
	}

	allZero := true

	for _, b := range backing {
		if b != 0 {
			allZero = false
			break
		}
	}

	if allZero {
		t.Fatal("derived key is all zeros before Zero()")
	}

	key.Zero()

	for i, b := range backing {
		if b != 0 {
			t.Fatalf("backing buffer byte %d not wiped after Zero()", i)
		}
	}

	if key.Bytes() != nil {
		t.Error("Bytes() returned material after Zero()")
	}

	// Second wipe must be a no-op, not a panic
	key.Zero()
}

func TestZeroedKeyRejectedByCipher(t *testing.T) {
	salt, _ := GenerateSalt()

	key := DeriveKey("zeroize me", salt)
	key.Zero()

	if _, err := Encrypt(key, []byte("data")); err == nil {
		t.Error("Encrypt() accepted a zeroized key")
	}
}

func TestSecureZero(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}

	SecureZero(b)

	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
}
