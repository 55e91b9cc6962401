// Package layout resolves the on-disk directory layout the CLI works
// against, most importantly the bin directory extension binaries are
// installed into.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/justx-labs/justx/internal/branding"
	"github.com/justx-labs/justx/internal/config"
)

// BinDirName is the directory under ~/.just holding extension binaries.
const BinDirName = "bin"

// DirPermNormal is the mode bin and config directories are created with.
const DirPermNormal os.FileMode = 0755

// BinDir returns the directory extension binaries live in.
// It checks the JUSTX_BIN environment variable first, then the bin_path
// config key, then falls back to ~/.just/bin.
func BinDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("BIN")); v != "" {
		return v, nil
	}
	if v := config.Get("bin_path"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir(), BinDirName), nil
}

// EnsureBinDir resolves the bin directory and creates it if needed.
func EnsureBinDir() (string, error) {
	dir, err := BinDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, DirPermNormal); err != nil {
		return "", fmt.Errorf("creating bin directory %s: %w", dir, err)
	}
	return dir, nil
}
