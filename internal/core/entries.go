package core

import (
	"encoding/json"
	"fmt"

	"github.com/inovacc/clipd/internal/clipboard"
	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
)

// DecodeImage deserializes the decrypted plaintext of an image entry.
func DecodeImage(plaintext []byte) (*model.ImageData, error) {
	var img model.ImageData

	if err := json.Unmarshal(plaintext, &img); err != nil {
		return nil, fmt.Errorf("failed to deserialize image data: %w", err)
	}

	return &img, nil
}

// CopyToClipboard decrypts an entry and writes its content back through
// the clipboard provider, dispatching on the content type.
func CopyToClipboard(provider clipboard.Provider, key *crypto.MasterKey, entry model.ClipboardEntry) error {
	plaintext, err := crypto.Decrypt(key, entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to decrypt entry %s: %w", entry.ID, err)
	}

	switch entry.ContentType {
	case model.ContentTypeText:
		return provider.WriteText(string(plaintext))

	case model.ContentTypeImage:
		img, err := DecodeImage(plaintext)
		if err != nil {
			return err
		}

		return provider.WriteImage(img)

	default:
		return fmt.Errorf("unknown content type %v for entry %s", entry.ContentType, entry.ID)
	}
}
