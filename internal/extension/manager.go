package extension

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Build-toolchain conventions for just extensions: a cargo manifest at the
// checkout root, release binaries under target/release/.
const (
	buildManifest = "Cargo.toml"
	releaseDir    = "target/release"
)

// Sentinel errors for the install pipeline stages.
var (
	ErrFetchFailed = errors.New("fetching extension source failed")
	ErrBuildFailed = errors.New("building extension failed")
)

// Manager installs, removes, and enumerates extension binaries under a
// single bin directory. Filesystem access and external processes go
// through injected collaborators so the pipeline can be tested
// hermetically.
type Manager struct {
	binDir  string
	workDir string
	fs      afero.Fs
	runner  CommandRunner
}

// Option configures a Manager.
type Option func(*Manager)

// WithFileSystem substitutes the filesystem implementation (useful for
// testing with afero.NewMemMapFs).
func WithFileSystem(fs afero.Fs) Option {
	return func(m *Manager) { m.fs = fs }
}

// WithRunner substitutes the external command runner.
func WithRunner(r CommandRunner) Option {
	return func(m *Manager) { m.runner = r }
}

// WithWorkDir sets the directory source checkouts are placed in during
// install. Defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(m *Manager) { m.workDir = dir }
}

// New creates a Manager over the given bin directory.
func New(binDir string, opts ...Option) *Manager {
	m := &Manager{
		binDir: binDir,
		fs:     afero.NewOsFs(),
		runner: execRunner{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ResolvePath returns the path the named extension's binary would occupy.
// It does not touch the disk.
func (m *Manager) ResolvePath(name string) string {
	return filepath.Join(m.binDir, ExecutableName(name))
}

// Locate returns the binary path for the named extension and whether it
// currently exists on disk. Existence is checked at call time, never
// cached.
func (m *Manager) Locate(name string) (string, bool) {
	path := m.ResolvePath(name)
	exists, err := afero.Exists(m.fs, path)
	if err != nil || !exists {
		return "", false
	}
	return path, true
}

// IsInstalled reports whether the named extension's binary is present.
func (m *Manager) IsInstalled(name string) bool {
	_, ok := m.Locate(name)
	return ok
}

// List walks the bin directory tree and returns the file names (not full
// paths) of every installed extension binary, in traversal order.
// Directories, non-matching files, and entries that error during traversal
// are skipped.
func (m *Manager) List() []string {
	var names []string
	_ = afero.Walk(m.fs, m.binDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if name := info.Name(); matchesBinaryName(name) {
			names = append(names, name)
		}
		return nil
	})
	return names
}

// Install fetches the extension repository at rawURL, builds it in release
// mode, and places the resulting binary in the bin directory. Each stage
// failure aborts the remainder; nothing is retried.
func (m *Manager) Install(rawURL string) error {
	repo, err := ParseRepositoryName(rawURL)
	if err != nil {
		return err
	}

	workDir := m.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}
	checkout := filepath.Join(workDir, repo)

	// A leftover checkout from an earlier failed install would make the
	// clone fail; remove it first.
	if exists, _ := afero.Exists(m.fs, checkout); exists {
		if err := m.fs.RemoveAll(checkout); err != nil {
			return fmt.Errorf("removing stale checkout %s: %w", checkout, err)
		}
	}

	if err := m.runner.Run("git", "clone", rawURL, checkout); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetchFailed, rawURL, err)
	}

	manifest := filepath.Join(checkout, buildManifest)
	if err := m.runner.Run("cargo", "build", "--release", "--manifest-path", manifest); err != nil {
		// The checkout is left behind on purpose so the build failure
		// can be diagnosed.
		return fmt.Errorf("%w: %s: %v", ErrBuildFailed, repo, err)
	}

	built := filepath.Join(checkout, filepath.FromSlash(releaseDir), repo+exeSuffix)
	dest := m.ResolvePath(repo)
	if err := m.copyFile(built, dest); err != nil {
		return fmt.Errorf("installing %s: %w", dest, err)
	}

	if err := m.fs.RemoveAll(checkout); err != nil {
		return fmt.Errorf("%s installed, but removing checkout %s failed: %w",
			ExecutableName(repo), checkout, err)
	}
	return nil
}

// Uninstall removes the named extension's binary. Uninstalling an
// extension that is not installed succeeds silently.
func (m *Manager) Uninstall(name string) error {
	path, ok := m.Locate(name)
	if !ok {
		return nil
	}
	if err := m.fs.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// copyFile copies a single file, preserving the source permissions.
func (m *Manager) copyFile(src, dst string) error {
	data, err := afero.ReadFile(m.fs, src)
	if err != nil {
		return err
	}
	info, err := m.fs.Stat(src)
	if err != nil {
		return err
	}
	return afero.WriteFile(m.fs, dst, data, info.Mode())
}
