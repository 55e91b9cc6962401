package platform

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// CreateSymlink places link pointing at target, typically a built
// extension binary being linked into the bin directory. Unix gets a real
// symlink. Windows tries os.Symlink (it needs developer mode) and
// otherwise copies the binary and records the origin in a .target
// sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	// Native symlink works when developer mode is enabled.
	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	// Otherwise copy the binary into place.
	if err := copyFileForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// The sidecar lets ReadSymlinkTarget recover the origin later.
	sidecar := link + ".target"
	if err := os.WriteFile(sidecar, []byte(target), 0644); err != nil {
		// The copy itself succeeded; the link still works.
		return nil
	}

	return nil
}

// RemoveSymlink removes a linked binary, including the sidecar a Windows
// copy fallback leaves behind.
func RemoveSymlink(path string) error {
	err := os.Remove(path)

	// Also clean up the sidecar if it exists.
	sidecar := path + ".target"
	os.Remove(sidecar) // best-effort

	return err
}

// ReadSymlinkTarget reports where a linked binary points. When
// os.Readlink fails on Windows (the link was made with the copy
// fallback) the .target sidecar is consulted instead.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	// Copy fallback: the origin lives in the sidecar.
	sidecar := path + ".target"
	data, readErr := os.ReadFile(sidecar)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlinkSupported reports whether native symlinks work here. On
// Windows that depends on developer mode, so a throwaway link is
// attempted.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	target := tmpDir
	link := tmpDir + "/.justx-symlink-test"
	defer os.Remove(link)

	if err := os.Symlink(target, link); err != nil {
		return false
	}
	return true
}

// copyFileForSymlink copies src to dst. A relative src resolves relative
// to the directory containing dst.
func copyFileForSymlink(src, dst string) error {
	// For relative targets, resolve against the link's parent directory.
	resolvedSrc := src
	if !isAbsPath(src) {
		dir := parentDir(dst)
		resolvedSrc = dir + string(os.PathSeparator) + src
	}

	in, err := os.Open(resolvedSrc)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// isAbsPath reports whether path is absolute in either Unix or Windows
// notation.
func isAbsPath(path string) bool {
	if len(path) == 0 {
		return false
	}
	// Unix absolute
	if path[0] == '/' {
		return true
	}
	// Windows absolute (e.g., C:\)
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}
	return false
}

// parentDir returns the parent directory of a path.
func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[:i]
		}
	}
	return "."
}
