package core

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
	"github.com/inovacc/clipd/internal/store"
)

// TextDumpFileName is the CSV file collecting all text entries of a dump.
const TextDumpFileName = "clipboard_text_entries.csv"

// DumpSummary reports what a dump wrote and what it had to skip.
type DumpSummary struct {
	TextEntries  int
	ImageEntries int
	Skipped      int
}

// DumpAll decrypts every entry and writes it in plaintext under dir:
// text entries into one CSV file, images as individual PNG files. This
// is a deliberate, explicitly unencrypted export. Entries that fail to
// decrypt or decode are logged and skipped; the rest proceed.
func DumpAll(db *store.Store, key *crypto.MasterKey, dir string) (DumpSummary, error) {
	var summary DumpSummary

	entries, corrupt, err := db.ListEntries()
	if err != nil {
		return summary, err
	}

	summary.Skipped = len(corrupt)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(dir, TextDumpFileName))
	if err != nil {
		return summary, fmt.Errorf("failed to create CSV file: %w", err)
	}

	defer func() { _ = csvFile.Close() }()

	w := csv.NewWriter(csvFile)

	if err := w.Write([]string{"ID", "Timestamp", "Content"}); err != nil {
		return summary, err
	}

	for _, entry := range entries {
		plaintext, err := crypto.Decrypt(key, entry.Payload)
		if err != nil {
			slog.Warn("failed to decrypt entry, skipping", "id", entry.ID, "error", err)
			summary.Skipped++

			continue
		}

		switch entry.ContentType {
		case model.ContentTypeText:
			record := []string{entry.ID, entry.Timestamp.Format("2006-01-02 15:04:05.000"), string(plaintext)}
			if err := w.Write(record); err != nil {
				return summary, err
			}

			summary.TextEntries++

		case model.ContentTypeImage:
			if err := dumpImage(dir, entry, plaintext); err != nil {
				slog.Warn("failed to export image entry, skipping", "id", entry.ID, "error", err)
				summary.Skipped++

				continue
			}

			summary.ImageEntries++

		default:
			slog.Warn("unknown content type, skipping", "id", entry.ID, "content_type", int(entry.ContentType))
			summary.Skipped++
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return summary, err
	}

	return summary, nil
}

// dumpImage writes one decrypted image entry as a PNG file.
func dumpImage(dir string, entry model.ClipboardEntry, plaintext []byte) error {
	img, err := DecodeImage(plaintext)
	if err != nil {
		return err
	}

	if len(img.Bytes) != img.Width*img.Height*4 {
		return fmt.Errorf("image data for entry %s has %d bytes, want %d", entry.ID, len(img.Bytes), img.Width*img.Height*4)
	}

	rgba := &image.NRGBA{
		Pix:    img.Bytes,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}

	suffix := entry.ID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}

	name := fmt.Sprintf("image_%s_%s.png", entry.Timestamp.Format("20060102_150405"), suffix)

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	defer func() { _ = f.Close() }()

	return png.Encode(f, rgba)
}
