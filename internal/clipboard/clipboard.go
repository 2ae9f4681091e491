// Package clipboard abstracts clipboard access behind a small capability
// interface so the watcher and the copy command never talk to an OS
// clipboard directly. The system backend is text-only; tests substitute
// an in-memory provider.
package clipboard

import (
	"errors"

	"github.com/inovacc/clipd/internal/model"
)

var (
	// ErrUnavailable signals a transient failure talking to the OS
	// clipboard. The watcher logs it and skips the tick.
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrUnsupported signals a content format the active backend cannot
	// provide or accept
	ErrUnsupported = errors.New("content format not supported by this clipboard backend")

	// ErrEmpty signals that the clipboard holds nothing usable
	ErrEmpty = errors.New("clipboard is empty")
)

// Provider is the clipboard capability consumed by the watcher and the
// retrieval path.
type Provider interface {
	// ReadText returns the current clipboard text. ErrEmpty when there
	// is none, ErrUnavailable on transient access failure.
	ReadText() (string, error)

	// WriteText replaces the clipboard content with text.
	WriteText(text string) error

	// ReadImage returns the current clipboard image. ErrUnsupported on
	// backends without image access, ErrEmpty when there is none.
	ReadImage() (*model.ImageData, error)

	// WriteImage replaces the clipboard content with an image.
	WriteImage(img *model.ImageData) error
}
