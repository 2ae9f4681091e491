package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.bolt")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	return s
}

func testKey(t *testing.T) *crypto.MasterKey {
	t.Helper()

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	key := crypto.DeriveKey("Sup3rSecret!", salt)
	t.Cleanup(key.Zero)

	return key
}

// initTestStore initializes the store under the returned key.
func initTestStore(t *testing.T, s *Store) *crypto.MasterKey {
	t.Helper()

	key := testKey(t)

	verification, err := crypto.Encrypt(key, VerificationPlaintext())
	require.NoError(t, err)

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	require.NoError(t, s.Initialize(salt, verification))

	return key
}

// testEntry builds an entry with a controlled timestamp and id so
// ordering tests are deterministic.
func testEntry(id string, ts time.Time, hash string) model.ClipboardEntry {
	return model.ClipboardEntry{
		ID:          id,
		Timestamp:   ts,
		ContentType: model.ContentTypeText,
		Payload:     []byte("not-really-encrypted-" + id),
		Hash:        hash,
	}
}

func TestStore_OpenIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.bolt")

	s, err := Open(dbPath)
	require.NoError(t, err)

	initialized, err := s.IsInitialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	require.NoError(t, s.Close())

	// Reopening an existing file must succeed and keep its contents
	s2, err := Open(dbPath)
	require.NoError(t, err)

	defer func() { _ = s2.Close() }()

	initialized, err = s2.IsInitialized()
	require.NoError(t, err)
	assert.False(t, initialized)
}

func TestStore_Initialize(t *testing.T) {
	s := setupTestStore(t)

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	require.NoError(t, s.Initialize(salt, []byte{1, 2, 3}))

	initialized, err := s.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)

	got, err := s.Salt()
	require.NoError(t, err)
	assert.Equal(t, salt, got)

	md, err := s.Metadata()
	require.NoError(t, err)
	assert.EqualValues(t, 1, md.SchemaVersion)

	// Second initialization is refused, not silently overwritten
	err = s.Initialize(salt, []byte{9, 9, 9})
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestStore_NotInitialized(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Salt()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = s.Metadata()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestStore_VerifyPassword(t *testing.T) {
	s := setupTestStore(t)

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	key := crypto.DeriveKey("Sup3rSecret!", salt)
	defer key.Zero()

	verification, err := crypto.Encrypt(key, VerificationPlaintext())
	require.NoError(t, err)

	require.NoError(t, s.Initialize(salt, verification))

	ok, err := s.VerifyPassword(key)
	require.NoError(t, err)
	assert.True(t, ok, "correct password rejected")

	wrong := crypto.DeriveKey("wrong", salt)
	defer wrong.Zero()

	ok, err = s.VerifyPassword(wrong)
	require.NoError(t, err, "wrong password must not be signaled as a fault")
	assert.False(t, ok)
}

func TestStore_InsertGetDelete(t *testing.T) {
	s := setupTestStore(t)

	entry := testEntry("100-1", time.Now().UTC(), "hash-a")
	require.NoError(t, s.InsertEntry(entry))

	got, err := s.GetEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Payload, got.Payload)
	assert.Equal(t, model.ContentTypeText, got.ContentType)

	// Duplicate id is an error
	err = s.InsertEntry(entry)
	assert.ErrorIs(t, err, ErrDuplicateID)

	require.NoError(t, s.DeleteEntry(entry.ID))

	_, err = s.GetEntry(entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteMissing(t *testing.T) {
	s := setupTestStore(t)

	err := s.DeleteEntry("nonexistent-id")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "failed delete must leave the store unchanged")
}

func TestStore_HashIndex(t *testing.T) {
	s := setupTestStore(t)

	entry := testEntry("100-1", time.Now().UTC(), "hash-a")
	require.NoError(t, s.InsertEntry(entry))

	exists, err := s.HashExists("hash-a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.HashExists("hash-b")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting the entry removes its index row
	require.NoError(t, s.DeleteEntry(entry.ID))

	exists, err = s.HashExists("hash-a")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_ListEntriesOrdering(t *testing.T) {
	s := setupTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose
	require.NoError(t, s.InsertEntry(testEntry("200-1", base.Add(2*time.Second), "h2")))
	require.NoError(t, s.InsertEntry(testEntry("100-1", base, "h0")))
	require.NoError(t, s.InsertEntry(testEntry("300-1", base.Add(3*time.Second), "h3")))
	require.NoError(t, s.InsertEntry(testEntry("100-2", base, "h1")))

	entries, corrupt, err := s.ListEntries()
	require.NoError(t, err)
	assert.Empty(t, corrupt)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}

	// Newest first; equal timestamps fall back to id ordering
	assert.Equal(t, []string{"300-1", "200-1", "100-2", "100-1"}, ids)

	// Stable across calls with no intervening writes
	again, _, err := s.ListEntries()
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestStore_PruneToLimit(t *testing.T) {
	s := setupTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		e := testEntry(fmt.Sprintf("%d-1", 100+i), base.Add(time.Duration(i)*time.Second), fmt.Sprintf("h%d", i))
		require.NoError(t, s.InsertEntry(e))
	}

	deleted, err := s.PruneToLimit(2)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	entries, _, err := s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The two most recent survive
	assert.Equal(t, "104-1", entries[0].ID)
	assert.Equal(t, "103-1", entries[1].ID)

	// Their index rows survive too, older ones are gone
	exists, err := s.HashExists("h4")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.HashExists("h0")
	require.NoError(t, err)
	assert.False(t, exists)

	// Already under the limit: no-op
	deleted, err = s.PruneToLimit(2)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStore_Clear(t *testing.T) {
	s := setupTestStore(t)

	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)

	require.NoError(t, s.Initialize(salt, []byte{1, 2, 3}))
	require.NoError(t, s.InsertEntry(testEntry("100-1", time.Now().UTC(), "h0")))
	require.NoError(t, s.InsertEntry(testEntry("101-1", time.Now().UTC(), "h1")))

	require.NoError(t, s.Clear())

	count, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	exists, err := s.HashExists("h0")
	require.NoError(t, err)
	assert.False(t, exists)

	// Metadata survives a clear
	initialized, err := s.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestStore_ListSkipsCorruptEntries(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.InsertEntry(testEntry("100-1", time.Now().UTC(), "h0")))
	require.NoError(t, s.InsertEntry(testEntry("101-1", time.Now().UTC(), "h1")))

	// Corrupt one record directly on disk
	require.NoError(t, s.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Put([]byte("100-1"), []byte("{not json"))
	}))

	entries, corrupt, err := s.ListEntries()
	require.NoError(t, err, "a corrupt record must not abort the listing")

	require.Len(t, entries, 1)
	assert.Equal(t, "101-1", entries[0].ID)

	require.Len(t, corrupt, 1)
	assert.Equal(t, "100-1", corrupt[0].ID)

	// GetEntry surfaces the corruption as a typed error
	_, err = s.GetEntry("100-1")

	var ce *CorruptEntryError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "100-1", ce.ID)

	// A corrupt record can still be deleted
	require.NoError(t, s.DeleteEntry("100-1"))
}

func TestStore_Stats(t *testing.T) {
	s := setupTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	text := testEntry("100-1", base, "h0")
	require.NoError(t, s.InsertEntry(text))

	image := model.ClipboardEntry{
		ID:          "200-1",
		Timestamp:   base.Add(time.Minute),
		ContentType: model.ContentTypeImage,
		Payload:     []byte("imagepayload"),
		Hash:        "h1",
	}
	require.NoError(t, s.InsertEntry(image))

	st, err := s.Stats()
	require.NoError(t, err)

	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.TextCount)
	assert.Equal(t, 1, st.ImageCount)
	assert.Equal(t, len(text.Payload)+len(image.Payload), st.PayloadBytes)
	assert.Equal(t, base, st.Oldest)
	assert.Equal(t, base.Add(time.Minute), st.Newest)
}

func TestStore_Config(t *testing.T) {
	s := setupTestStore(t)

	cfg, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)

	cfg.PollIntervalMS = 250
	cfg.MaxEntries = 100
	require.NoError(t, s.SaveConfig(cfg))

	got, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
