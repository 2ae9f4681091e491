// Package core holds the command-level operations shared by the CLI and
// the browse UI: unlocking the database, decrypting entries back to the
// clipboard and exporting plaintext dumps.
package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/store"
	"golang.org/x/term"
)

// MinPasswordLength is enforced at this boundary, not inside the crypto
// layer.
const MinPasswordLength = 8

var (
	// ErrWrongPassword is returned when the verification payload does
	// not decrypt under the candidate key. Recoverable: re-prompt.
	ErrWrongPassword = errors.New("incorrect password")

	// ErrPasswordTooShort is returned at init when the chosen password
	// is below MinPasswordLength
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)

	// ErrPasswordMismatch is returned at init when the confirmation
	// does not match
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// PromptForPassword prompts the user for a password without echoing.
func PromptForPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}

	return string(bytePassword), nil
}

// getPassword reads the master password from the environment or prompts
// for it.
func getPassword(prompt string) (string, error) {
	if password := os.Getenv("CLIPD_PASSWORD"); password != "" {
		return password, nil
	}

	return PromptForPassword(prompt)
}

// Unlock prompts for the master password, derives the key from the
// stored salt and verifies it against the verification payload. The
// caller owns the returned key and must defer its Zero.
func Unlock(db *store.Store) (*crypto.MasterKey, error) {
	initialized, err := db.IsInitialized()
	if err != nil {
		return nil, err
	}

	if !initialized {
		return nil, store.ErrNotInitialized
	}

	password, err := getPassword("Enter master password: ")
	if err != nil {
		return nil, fmt.Errorf("error reading password: %w", err)
	}

	salt, err := db.Salt()
	if err != nil {
		return nil, err
	}

	key := crypto.DeriveKey(password, salt)

	ok, err := db.VerifyPassword(key)
	if err != nil {
		key.Zero()

		return nil, err
	}

	if !ok {
		key.Zero()

		return nil, ErrWrongPassword
	}

	return key, nil
}

// NewMasterPassword prompts for and confirms a fresh master password,
// enforcing the minimum length.
func NewMasterPassword() (string, error) {
	password, err := getPassword("Enter master password: ")
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	// The env var path has no second prompt to mismatch
	if os.Getenv("CLIPD_PASSWORD") != "" {
		return password, nil
	}

	confirm, err := PromptForPassword("Confirm master password: ")
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	if password != confirm {
		return "", ErrPasswordMismatch
	}

	return password, nil
}
