package extension

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// fakeRunner records external command invocations and lets tests simulate
// the side effects (and failures) of git and cargo.
type fakeRunner struct {
	calls [][]string
	onRun func(name string, args ...string) error
}

func (f *fakeRunner) Run(name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.onRun != nil {
		return f.onRun(name, args...)
	}
	return nil
}

const (
	testBinDir  = "/bins"
	testWorkDir = "/work"
)

func newTestManager(runner CommandRunner) (*Manager, afero.Fs) {
	fs := afero.NewMemMapFs()
	m := New(testBinDir,
		WithFileSystem(fs),
		WithRunner(runner),
		WithWorkDir(testWorkDir),
	)
	return m, fs
}

// succeedingRunner simulates a clone that materializes a checkout and a
// build that drops a release binary at the conventional output path.
func succeedingRunner(fs afero.Fs, repo string) *fakeRunner {
	checkout := filepath.Join(testWorkDir, repo)
	return &fakeRunner{onRun: func(name string, args ...string) error {
		switch name {
		case "git":
			return afero.WriteFile(fs, filepath.Join(checkout, buildManifest), []byte("[package]\n"), 0644)
		case "cargo":
			built := filepath.Join(checkout, filepath.FromSlash(releaseDir), repo+exeSuffix)
			return afero.WriteFile(fs, built, []byte("binary"), 0755)
		}
		return fmt.Errorf("unexpected command %s", name)
	}}
}

func TestResolvePathDoesNotTouchDisk(t *testing.T) {
	m, _ := newTestManager(&fakeRunner{})

	want := filepath.Join(testBinDir, "just-foo"+exeSuffix)
	if got := m.ResolvePath("foo"); got != want {
		t.Errorf("ResolvePath(foo) = %q, want %q", got, want)
	}
	if got := m.ResolvePath("just-foo"); got != want {
		t.Errorf("ResolvePath(just-foo) = %q, want %q", got, want)
	}
}

func TestLocateReflectsCurrentDiskState(t *testing.T) {
	m, fs := newTestManager(&fakeRunner{})

	if _, ok := m.Locate("foo"); ok {
		t.Fatal("Locate found a binary that was never installed")
	}

	path := m.ResolvePath("foo")
	if err := afero.WriteFile(fs, path, []byte("binary"), 0755); err != nil {
		t.Fatal(err)
	}

	got, ok := m.Locate("foo")
	if !ok {
		t.Fatal("Locate missed an existing binary")
	}
	if got != path {
		t.Errorf("Locate(foo) = %q, want %q", got, path)
	}
}

func TestInstallLifecycle(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := succeedingRunner(fs, "repo")
	m := New(testBinDir, WithFileSystem(fs), WithRunner(runner), WithWorkDir(testWorkDir))

	if m.IsInstalled("repo") {
		t.Fatal("extension reported installed before install")
	}

	if err := m.Install("https://github.com/owner/repo"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !m.IsInstalled("repo") {
		t.Fatal("extension not reported installed after install")
	}

	// The checkout must be cleaned up after a successful install.
	if exists, _ := afero.Exists(fs, filepath.Join(testWorkDir, "repo")); exists {
		t.Error("checkout left behind after successful install")
	}

	if err := m.Uninstall("repo"); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if m.IsInstalled("repo") {
		t.Fatal("extension still reported installed after uninstall")
	}
}

func TestInstallRunsFetchThenBuild(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := succeedingRunner(fs, "repo")
	m := New(testBinDir, WithFileSystem(fs), WithRunner(runner), WithWorkDir(testWorkDir))

	if err := m.Install("https://github.com/owner/repo"); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 command invocations, got %d: %v", len(runner.calls), runner.calls)
	}
	checkout := filepath.Join(testWorkDir, "repo")
	if got, want := runner.calls[0][0], "git"; got != want {
		t.Errorf("first command = %q, want %q", got, want)
	}
	if got := runner.calls[0][1:]; got[0] != "clone" || got[2] != checkout {
		t.Errorf("git args = %v, want clone into %s", got, checkout)
	}
	manifest := filepath.Join(checkout, buildManifest)
	wantCargo := []string{"cargo", "build", "--release", "--manifest-path", manifest}
	for i, arg := range wantCargo {
		if runner.calls[1][i] != arg {
			t.Fatalf("cargo invocation = %v, want %v", runner.calls[1], wantCargo)
		}
	}
}

func TestInstallRemovesStaleCheckout(t *testing.T) {
	fs := afero.NewMemMapFs()
	stale := filepath.Join(testWorkDir, "repo", "leftover.txt")
	if err := afero.WriteFile(fs, stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := succeedingRunner(fs, "repo")
	m := New(testBinDir, WithFileSystem(fs), WithRunner(runner), WithWorkDir(testWorkDir))

	if err := m.Install("https://github.com/owner/repo"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if exists, _ := afero.Exists(fs, stale); exists {
		t.Error("stale checkout survived install")
	}
}

func TestInstallPropagatesResolverErrors(t *testing.T) {
	tests := []struct {
		url     string
		wantErr error
	}{
		{"not a url", ErrInvalidURL},
		{"https://gitlab.com/owner/repo", ErrUnsupportedProvider},
		{"https://github.com/owner", ErrMissingRepositoryName},
	}

	for _, tt := range tests {
		runner := &fakeRunner{}
		m, _ := newTestManager(runner)

		err := m.Install(tt.url)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Install(%q) error = %v, want %v", tt.url, err, tt.wantErr)
		}
		if len(runner.calls) != 0 {
			t.Errorf("Install(%q) invoked commands despite resolution failure", tt.url)
		}
	}
}

func TestInstallFetchFailureAbortsPipeline(t *testing.T) {
	runner := &fakeRunner{onRun: func(name string, args ...string) error {
		return fmt.Errorf("%s: exit status 128", name)
	}}
	m, _ := newTestManager(runner)

	err := m.Install("https://github.com/owner/repo")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("pipeline continued past failed fetch: %v", runner.calls)
	}
}

func TestInstallBuildFailureLeavesCheckout(t *testing.T) {
	fs := afero.NewMemMapFs()
	checkout := filepath.Join(testWorkDir, "repo")
	runner := &fakeRunner{onRun: func(name string, args ...string) error {
		if name == "git" {
			return afero.WriteFile(fs, filepath.Join(checkout, buildManifest), []byte("[package]\n"), 0644)
		}
		return fmt.Errorf("cargo: exit status 101")
	}}
	m := New(testBinDir, WithFileSystem(fs), WithRunner(runner), WithWorkDir(testWorkDir))

	err := m.Install("https://github.com/owner/repo")
	if !errors.Is(err, ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}

	// The checkout stays on disk so the failure can be diagnosed.
	if exists, _ := afero.Exists(fs, checkout); !exists {
		t.Error("checkout removed after build failure")
	}
	if m.IsInstalled("repo") {
		t.Error("binary installed despite build failure")
	}
}

func TestInstallMissingBinaryFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	// Both commands succeed but cargo never produces a binary.
	runner := &fakeRunner{onRun: func(name string, args ...string) error {
		return nil
	}}
	m := New(testBinDir, WithFileSystem(fs), WithRunner(runner), WithWorkDir(testWorkDir))

	if err := m.Install("https://github.com/owner/repo"); err == nil {
		t.Fatal("expected error when release binary is missing")
	}
	if m.IsInstalled("repo") {
		t.Error("binary reported installed despite missing build output")
	}
}

// cleanupFailingFs refuses to remove one path, simulating a checkout that
// cannot be deleted after the binary has been copied out.
type cleanupFailingFs struct {
	afero.Fs
	stuck string
}

func (f *cleanupFailingFs) RemoveAll(path string) error {
	if path == f.stuck {
		return fmt.Errorf("permission denied")
	}
	return f.Fs.RemoveAll(path)
}

func TestInstallCleanupFailureKeepsBinaryAndErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	runner := succeedingRunner(mem, "repo")
	checkout := filepath.Join(testWorkDir, "repo")
	fs := &cleanupFailingFs{Fs: mem, stuck: checkout}
	m := New(testBinDir, WithFileSystem(fs), WithRunner(runner), WithWorkDir(testWorkDir))

	err := m.Install("https://github.com/owner/repo")
	if err == nil {
		t.Fatal("expected error when checkout removal fails after install")
	}

	// The copy already succeeded, so the error must say so and the binary
	// must stay in place.
	if !strings.Contains(err.Error(), "just-repo"+exeSuffix+" installed") {
		t.Errorf("error %q does not state the binary was installed", err)
	}
	if !m.IsInstalled("repo") {
		t.Error("binary missing despite successful copy")
	}
	if exists, _ := afero.Exists(mem, checkout); !exists {
		t.Error("checkout gone even though its removal failed")
	}
}

func TestUninstallMissingExtensionIsNoop(t *testing.T) {
	m, fs := newTestManager(&fakeRunner{})

	other := filepath.Join(testBinDir, "just-other"+exeSuffix)
	if err := afero.WriteFile(fs, other, []byte("binary"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := m.Uninstall("missing"); err != nil {
		t.Fatalf("Uninstall of missing extension: %v", err)
	}
	if exists, _ := afero.Exists(fs, other); !exists {
		t.Error("unrelated binary removed by no-op uninstall")
	}
}

func TestListMatchesNamingConvention(t *testing.T) {
	m, fs := newTestManager(&fakeRunner{})

	files := map[string]string{
		filepath.Join(testBinDir, "just-foo"+exeSuffix):           "binary",
		filepath.Join(testBinDir, "bar"+exeSuffix):                "binary",
		filepath.Join(testBinDir, "just-baz.tmp"):                 "partial",
		filepath.Join(testBinDir, "nested", "just-qux"+exeSuffix): "binary",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0755); err != nil {
			t.Fatal(err)
		}
	}

	got := m.List()
	sort.Strings(got)

	want := []string{"just-foo" + exeSuffix, "just-qux" + exeSuffix}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() = %v, want %v", got, want)
		}
	}
}

func TestListEmptyDirectory(t *testing.T) {
	m, fs := newTestManager(&fakeRunner{})
	if err := fs.MkdirAll(testBinDir, 0755); err != nil {
		t.Fatal(err)
	}

	if got := m.List(); len(got) != 0 {
		t.Errorf("List() on empty directory = %v, want empty", got)
	}
}
