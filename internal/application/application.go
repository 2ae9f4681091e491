package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "clipd"

	// DatabaseFileName is the bolt database file created inside the
	// application directory.
	DatabaseFileName = "clipd.bolt"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the clipd data directory path.
// Linux: ~/.config/clipd (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\clipd (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

// DefaultDatabasePath returns the default path of the encrypted clipboard
// database, creating the application directory if needed.
func DefaultDatabasePath() (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create application directory: %w", err)
	}

	return filepath.Join(dir, DatabaseFileName), nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
	}

	appDir = filepath.Join(baseDir, AppName)
}
