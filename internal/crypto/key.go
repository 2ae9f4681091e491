package crypto

// MasterKey wraps the derived 256-bit key so its backing bytes can be
// wiped deterministically. Every scope that owns a key must arrange
// `defer key.Zero()` on entry, covering early returns and panics.
type MasterKey struct {
	bytes []byte
}

func newMasterKey(raw []byte) *MasterKey {
	return &MasterKey{bytes: raw}
}

// Bytes exposes the backing key material. Callers must not retain the
// slice beyond the life of the key.
func (k *MasterKey) Bytes() []byte {
	return k.bytes
}

// Zero overwrites the key material. Safe to call more than once; using
// the key afterwards fails cipher construction because the slice is
// emptied, not just cleared.
func (k *MasterKey) Zero() {
	if k == nil || k.bytes == nil {
		return
	}

	SecureZero(k.bytes)
	k.bytes = nil
}
