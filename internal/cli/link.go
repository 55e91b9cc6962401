package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/justx-labs/justx/internal/config"
	"github.com/justx-labs/justx/internal/extension"
	"github.com/justx-labs/justx/internal/layout"
	"github.com/justx-labs/justx/internal/manifest"
	"github.com/justx-labs/justx/internal/platform"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link [dir]",
	Short: "Link a local extension checkout into the bin directory",
	Long: `Symlink the release binary of a local extension checkout (default: current
directory) into the bin directory. Meant for extension authors iterating on
an extension: rebuild with cargo and the linked binary picks up the change.
Use uninstall to remove the link.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	name := linkName(dir)

	built := filepath.Join(dir, "target", "release", name+extension.Suffix())
	if _, err := os.Stat(built); err != nil {
		return fmt.Errorf("no release binary at %s (run `cargo build --release` first)", built)
	}

	config.Load()
	binDir, err := layout.EnsureBinDir()
	if err != nil {
		return fmt.Errorf("resolving bin directory: %w", err)
	}

	dest := extension.New(binDir).ResolvePath(name)

	// Replace whatever occupies the destination, installed binary or older link.
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing existing %s: %w", dest, err)
	}
	if err := platform.CreateSymlink(built, dest); err != nil {
		return fmt.Errorf("linking %s: %w", dest, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Linked %s -> %s\n", dest, built)
	return nil
}

// linkName picks the extension name for a checkout: the manifest name when
// an extension.yaml is present, the directory base name otherwise.
func linkName(dir string) string {
	if m, err := manifest.ParseFile(filepath.Join(dir, manifest.FileName)); err == nil && m.Name != "" {
		return m.Name
	}
	return filepath.Base(dir)
}
