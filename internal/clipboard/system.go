package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/inovacc/clipd/internal/model"
)

// systemProvider reads and writes the OS clipboard. The backing library
// is text-only, so image calls report ErrUnsupported and the watcher
// simply never captures images on this backend.
type systemProvider struct{}

// System returns the OS clipboard provider.
func System() Provider {
	return systemProvider{}
}

func (systemProvider) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if text == "" {
		return "", ErrEmpty
	}

	return text, nil
}

func (systemProvider) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

func (systemProvider) ReadImage() (*model.ImageData, error) {
	return nil, ErrUnsupported
}

func (systemProvider) WriteImage(*model.ImageData) error {
	return ErrUnsupported
}
