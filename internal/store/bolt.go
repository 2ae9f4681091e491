package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
	"go.etcd.io/bbolt"
)

const (
	bucketMeta    = "meta"    // key: "metadata" -> Metadata JSON, "config" -> Config JSON
	bucketEntries = "entries" // key: entry id -> ClipboardEntry JSON
	bucketHashes  = "hashes"  // key: plaintext hash -> entry id

	keyMetadata = "metadata"
	keyConfig   = "config"

	// schemaVersion marks the current on-disk format
	schemaVersion = 1
)

// verificationPlaintext is the known constant whose ciphertext is stored
// at initialization. Decrypting it with a candidate key and comparing is
// the password check.
var verificationPlaintext = []byte("clipd-verification-v1")

// VerificationPlaintext returns the constant that Initialize expects to
// find encrypted in the metadata verification payload.
func VerificationPlaintext() []byte {
	return bytes.Clone(verificationPlaintext)
}

// Store is the BoltDB-backed clipboard database.
type Store struct {
	storage *bbolt.DB
}

// Open opens or creates the database at the given path, creating parent
// directories and all buckets as needed. Opening is idempotent.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketMeta)); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(bucketEntries)); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(bucketHashes)); err != nil {
			return err
		}

		return nil
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Store{storage: instance}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.storage.Close()
}

// IsInitialized reports whether metadata has been written.
func (s *Store) IsInitialized() (bool, error) {
	var initialized bool

	err := s.storage.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))
		initialized = meta.Get([]byte(keyMetadata)) != nil

		return nil
	})

	return initialized, err
}

// Initialize writes the metadata singleton exactly once. A database that
// already holds metadata is refused with ErrAlreadyInitialized; entries
// encrypted under the old salt would be orphaned by a silent overwrite.
func (s *Store) Initialize(salt, verification []byte) error {
	md := model.Metadata{
		SchemaVersion: schemaVersion,
		Salt:          salt,
		Verification:  verification,
	}

	data, err := json.Marshal(&md)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	return s.storage.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))

		if meta.Get([]byte(keyMetadata)) != nil {
			return ErrAlreadyInitialized
		}

		return meta.Put([]byte(keyMetadata), data)
	})
}

// Reset removes the metadata singleton so the database can be
// initialized again. Only meaningful after Clear: entries encrypted
// under the old key are unreadable once the salt changes.
func (s *Store) Reset() error {
	return s.storage.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))

		return meta.Delete([]byte(keyMetadata))
	})
}

// Metadata returns the metadata singleton.
func (s *Store) Metadata() (model.Metadata, error) {
	var md model.Metadata

	err := s.storage.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))

		v := meta.Get([]byte(keyMetadata))
		if v == nil {
			return ErrNotInitialized
		}

		return json.Unmarshal(v, &md)
	})

	return md, err
}

// Salt returns the stored key-derivation salt.
func (s *Store) Salt() ([]byte, error) {
	md, err := s.Metadata()
	if err != nil {
		return nil, err
	}

	return md.Salt, nil
}

// VerifyPassword decrypts the stored verification payload with the
// candidate key and compares it to the known constant. A wrong password
// is an expected outcome and returns (false, nil), not an error.
func (s *Store) VerifyPassword(key *crypto.MasterKey) (bool, error) {
	md, err := s.Metadata()
	if err != nil {
		return false, err
	}

	plaintext, err := crypto.Decrypt(key, md.Verification)
	if err != nil {
		return false, nil
	}

	return bytes.Equal(plaintext, verificationPlaintext), nil
}

// InsertEntry writes an entry under its id and records its hash in the
// dedup index within the same transaction. An existing id is an error,
// never a silent overwrite.
func (s *Store) InsertEntry(entry model.ClipboardEntry) error {
	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}

	return s.storage.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))

		if entries.Get([]byte(entry.ID)) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}

		if err := entries.Put([]byte(entry.ID), data); err != nil {
			return err
		}

		hashes := tx.Bucket([]byte(bucketHashes))

		return hashes.Put([]byte(entry.Hash), []byte(entry.ID))
	})
}

// GetEntry returns the entry with the given id.
func (s *Store) GetEntry(id string) (model.ClipboardEntry, error) {
	var entry model.ClipboardEntry

	err := s.storage.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))

		v := entries.Get([]byte(id))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		if err := json.Unmarshal(v, &entry); err != nil {
			return &CorruptEntryError{ID: id, Err: err}
		}

		return nil
	})

	return entry, err
}

// ListEntries returns all decodable entries newest-first, ordered by
// (timestamp, id). Records that fail to decode are skipped and reported
// in the corrupt slice so bulk operations never abort on one bad record.
func (s *Store) ListEntries() ([]model.ClipboardEntry, []*CorruptEntryError, error) {
	var (
		out     []model.ClipboardEntry
		corrupt []*CorruptEntryError
	)

	err := s.storage.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))

		return entries.ForEach(func(k, v []byte) error {
			var e model.ClipboardEntry

			if err := json.Unmarshal(v, &e); err != nil {
				slog.Warn("skipping corrupt entry", "id", string(k), "error", err)
				corrupt = append(corrupt, &CorruptEntryError{ID: string(k), Err: err})

				return nil
			}

			out = append(out, e)

			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}

	sortNewestFirst(out)

	return out, corrupt, nil
}

// HashExists reports whether any stored entry was created from plaintext
// with the given hash. Backed by the hashes index bucket, not a scan.
func (s *Store) HashExists(hash string) (bool, error) {
	var exists bool

	err := s.storage.View(func(tx *bbolt.Tx) error {
		hashes := tx.Bucket([]byte(bucketHashes))
		exists = hashes.Get([]byte(hash)) != nil

		return nil
	})

	return exists, err
}

// DeleteEntry removes an entry and its index row. A missing id returns
// ErrNotFound rather than a silent no-op.
func (s *Store) DeleteEntry(id string) error {
	return s.storage.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))

		v := entries.Get([]byte(id))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		if err := entries.Delete([]byte(id)); err != nil {
			return err
		}

		// Drop the index row only when it still points at this entry; a
		// record too corrupt to decode simply leaves no row to drop.
		var e model.ClipboardEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return nil
		}

		hashes := tx.Bucket([]byte(bucketHashes))

		if string(hashes.Get([]byte(e.Hash))) == id {
			return hashes.Delete([]byte(e.Hash))
		}

		return nil
	})
}

// Clear removes all entries and the dedup index. Metadata is untouched.
func (s *Store) Clear() error {
	return s.storage.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketEntries, bucketHashes} {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}

			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Count returns the number of stored entries, decodable or not.
func (s *Store) Count() (int, error) {
	var count int

	err := s.storage.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(bucketEntries)).Stats().KeyN

		return nil
	})

	return count, err
}

// PruneToLimit deletes oldest-first entries until at most max remain.
// Ties on timestamp fall back to id ordering so eviction is deterministic.
// Returns the number of entries deleted.
func (s *Store) PruneToLimit(max int) (int, error) {
	entries, _, err := s.ListEntries()
	if err != nil {
		return 0, err
	}

	if len(entries) <= max {
		return 0, nil
	}

	deleted := 0

	// Entries are newest-first; everything past max is oldest and goes
	for _, entry := range entries[max:] {
		if err := s.DeleteEntry(entry.ID); err != nil {
			return deleted, err
		}

		deleted++
	}

	return deleted, nil
}

// Stats summarizes the stored entries.
type Stats struct {
	Total        int
	TextCount    int
	ImageCount   int
	PayloadBytes int
	Oldest       time.Time
	Newest       time.Time
}

// Stats scans the entries and aggregates counts, encrypted payload size
// and the capture time range.
func (s *Store) Stats() (Stats, error) {
	entries, _, err := s.ListEntries()
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Total: len(entries)}

	for _, e := range entries {
		switch e.ContentType {
		case model.ContentTypeText:
			st.TextCount++
		case model.ContentTypeImage:
			st.ImageCount++
		}

		st.PayloadBytes += len(e.Payload)
	}

	if len(entries) > 0 {
		st.Newest = entries[0].Timestamp
		st.Oldest = entries[len(entries)-1].Timestamp
	}

	return st, nil
}

// LoadConfig returns the saved watcher configuration, or defaults when
// none has been saved yet.
func (s *Store) LoadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()

	err := s.storage.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))

		v := meta.Get([]byte(keyConfig))
		if v == nil {
			return nil
		}

		return json.Unmarshal(v, &cfg)
	})
	if err != nil {
		return model.DefaultConfig(), err
	}

	return cfg, nil
}

// SaveConfig persists the watcher configuration.
func (s *Store) SaveConfig(cfg model.Config) error {
	data, err := json.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	return s.storage.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))

		return meta.Put([]byte(keyConfig), data)
	})
}

// sortNewestFirst orders entries by capture time descending, falling back
// to id ordering on equal timestamps so repeated calls are stable.
func sortNewestFirst(entries []model.ClipboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}

		return entries[i].ID > entries[j].ID
	})
}
