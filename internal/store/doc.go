// Package store provides the persistent encrypted clipboard store.
//
// The store is a BoltDB file with three buckets:
//   - meta: the Metadata singleton ("metadata") and watcher Config ("config")
//   - entries: entry id -> ClipboardEntry JSON
//   - hashes: plaintext SHA-256 hex -> entry id (dedup index)
//
// The hashes bucket is a maintained secondary index kept consistent with
// every insert, delete, clear and prune inside the same transaction, so
// HashExists stays O(1) as the store grows. It is invisible to callers.
//
// The store never encrypts or decrypts entry content. The single
// exception is VerifyPassword, which decrypts the stored verification
// payload (the ciphertext of a known constant) to test a candidate key
// without touching user content.
//
// Bolt's single-writer/multi-reader transaction model supplies the
// atomicity and visibility guarantees the watcher and concurrently
// running query commands rely on; no extra locking is layered on top.
package store
