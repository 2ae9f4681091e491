// Package watcher implements the clipboard polling state machine: read,
// dedup, encrypt, insert, prune. One Watcher instance owns the transient
// state of a single run (the unlocked key and the last observed hash);
// nothing is shared process-wide and nothing survives a restart.
package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inovacc/clipd/internal/clipboard"
	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
	"github.com/inovacc/clipd/internal/store"
)

// DefaultPollInterval is used when the configuration does not set one.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher polls the clipboard and stores newly observed content
// encrypted under the active key.
type Watcher struct {
	db       *store.Store
	provider clipboard.Provider
	key      *crypto.MasterKey

	// lastHash is the fast-path dedup slot. It starts empty on every
	// run, so the first tick after a restart is never skipped.
	lastHash string

	maxEntries int
	interval   time.Duration
}

// New creates a watcher for one run. The watcher takes ownership of the
// key and zeroizes it when Run returns.
func New(db *store.Store, provider clipboard.Provider, key *crypto.MasterKey, cfg model.Config) *Watcher {
	interval := time.Duration(cfg.PollIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Watcher{
		db:         db,
		provider:   provider,
		key:        key,
		maxEntries: cfg.MaxEntries,
		interval:   interval,
	}
}

// Run polls until the context is cancelled. A failed tick is logged and
// the loop keeps going; only cancellation ends it. The key is zeroized
// on every exit path.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.key.Zero()

	slog.Info("clipboard watcher started", "interval", w.interval, "max_entries", w.maxEntries)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	stored := 0

	for {
		select {
		case <-ticker.C:
			captured, err := w.CheckOnce()
			if err != nil {
				slog.Warn("failed to process clipboard", "error", err)
				continue
			}

			if captured {
				stored++
				slog.Info("stored encrypted entry", "count", stored)
			}

		case <-ctx.Done():
			slog.Info("clipboard watcher stopped", "stored", stored)

			return ctx.Err()
		}
	}
}

// CheckOnce performs a single tick: read the clipboard, dedup, encrypt
// and insert. It reports whether a new entry was stored.
func (w *Watcher) CheckOnce() (bool, error) {
	text, err := w.provider.ReadText()

	switch {
	case err == nil:
		return w.capture([]byte(text), model.ContentTypeText)

	case errors.Is(err, clipboard.ErrEmpty), errors.Is(err, clipboard.ErrUnsupported):
		// Nothing textual; fall through to image below

	default:
		return false, err
	}

	img, err := w.provider.ReadImage()

	switch {
	case err == nil:
		serialized, err := json.Marshal(img)
		if err != nil {
			return false, fmt.Errorf("failed to serialize image data: %w", err)
		}

		return w.capture(serialized, model.ContentTypeImage)

	case errors.Is(err, clipboard.ErrEmpty), errors.Is(err, clipboard.ErrUnsupported):
		return false, nil

	default:
		return false, err
	}
}

// capture applies both dedup paths and stores the plaintext if it is new.
func (w *Watcher) capture(plaintext []byte, contentType model.ContentType) (bool, error) {
	hash := crypto.HashContent(plaintext)

	// Fast path: unchanged since the previous tick
	if hash == w.lastHash {
		return false, nil
	}

	// Slow path: content seen in some earlier, possibly non-adjacent entry
	exists, err := w.db.HashExists(hash)
	if err != nil {
		return false, err
	}

	if exists {
		w.lastHash = hash

		return false, nil
	}

	encrypted, err := crypto.Encrypt(w.key, plaintext)
	if err != nil {
		return false, fmt.Errorf("failed to encrypt clipboard data: %w", err)
	}

	entry := model.NewEntry(contentType, encrypted, hash)

	if err := w.db.InsertEntry(entry); err != nil {
		return false, fmt.Errorf("failed to insert entry: %w", err)
	}

	w.lastHash = hash

	if w.maxEntries > 0 {
		if _, err := w.db.PruneToLimit(w.maxEntries); err != nil {
			return true, err
		}
	}

	return true, nil
}
