package model

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// ContentType identifies the kind of clipboard content stored in an entry.
type ContentType int

const (
	// ContentTypeText is plain UTF-8 text
	ContentTypeText ContentType = iota

	// ContentTypeImage is a raw RGBA image, serialized as ImageData
	ContentTypeImage
)

// String returns a human-readable name for the content type.
func (c ContentType) String() string {
	switch c {
	case ContentTypeText:
		return "text"
	case ContentTypeImage:
		return "image"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// ClipboardEntry is a single captured clipboard item. The payload holds
// nonce || ciphertext || tag; the hash is computed over the plaintext
// before encryption and is used only for deduplication.
type ClipboardEntry struct {
	// ID is the entry key: millisecond timestamp plus a random suffix,
	// lexicographically sortable by capture time
	ID string `json:"id"`

	// Timestamp is the UTC instant of capture
	Timestamp time.Time `json:"timestamp"`

	// ContentType says whether the plaintext is text or an image
	ContentType ContentType `json:"content_type"`

	// Payload is the encrypted content: nonce || ciphertext || tag
	Payload []byte `json:"payload"`

	// Hash is the SHA-256 hex digest of the plaintext, for dedup only
	Hash string `json:"hash"`
}

// NewEntry creates an entry with a fresh id and the current UTC timestamp.
func NewEntry(contentType ContentType, payload []byte, hash string) ClipboardEntry {
	now := time.Now().UTC()

	return ClipboardEntry{
		ID:          newEntryID(now),
		Timestamp:   now,
		ContentType: contentType,
		Payload:     payload,
		Hash:        hash,
	}
}

// Preview returns a one-line summary of the entry without decrypting it.
func (e ClipboardEntry) Preview() string {
	return fmt.Sprintf("[%s] %s - %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.ID, e.ContentType)
}

// newEntryID builds a sortable entry id from the capture instant and a
// random 32-bit suffix. The suffix keeps same-millisecond captures from
// colliding; the probability of a full collision is treated as negligible.
func newEntryID(ts time.Time) string {
	var buf [4]byte

	_, _ = rand.Read(buf[:])

	return fmt.Sprintf("%d-%d", ts.UnixMilli(), binary.BigEndian.Uint32(buf[:]))
}

// ImageData holds a raw RGBA image captured from the clipboard. It is
// JSON-serialized before encryption so dimensions survive the round trip.
type ImageData struct {
	// Width in pixels
	Width int `json:"width"`

	// Height in pixels
	Height int `json:"height"`

	// Bytes is the raw RGBA pixel data, 4 bytes per pixel
	Bytes []byte `json:"bytes"`
}

// Metadata is the database singleton written once at initialization.
type Metadata struct {
	// SchemaVersion marks the on-disk format for forward compatibility
	SchemaVersion uint32 `json:"schema_version"`

	// Salt is the random key-derivation salt, generated once and never
	// regenerated while entries exist
	Salt []byte `json:"salt"`

	// Verification is the ciphertext of a known constant under the
	// derived key, used to check a candidate password
	Verification []byte `json:"verification"`
}

// Config holds the watcher settings persisted alongside the metadata.
type Config struct {
	// PollIntervalMS is the clipboard polling interval in milliseconds
	PollIntervalMS int `json:"poll_interval_ms"`

	// MaxEntries caps the store size; zero means unbounded
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the configuration used when none has been saved.
func DefaultConfig() Config {
	return Config{
		PollIntervalMS: 500,
		MaxEntries:     0,
	}
}
