// Package model defines the data structures used throughout Clipd.
//
// This package contains the core domain models shared by the store, the
// watcher and the CLI layer.
//
// # ClipboardEntry
//
// The [ClipboardEntry] struct represents a single captured clipboard item:
//
//	type ClipboardEntry struct {
//	    ID          string      // Sortable id: <unix-millis>-<random suffix>
//	    Timestamp   time.Time   // UTC capture instant
//	    ContentType ContentType // Text or Image
//	    Payload     []byte      // nonce || ciphertext || tag
//	    Hash        string      // SHA-256 hex of the plaintext (dedup only)
//	}
//
// Entries are immutable after creation. They are only ever inserted and
// deleted, never updated in place.
//
// # Metadata
//
// The [Metadata] struct is the database singleton written once at
// initialization. Its verification payload is the ciphertext of a known
// constant and allows a password check without decrypting user content.
package model
