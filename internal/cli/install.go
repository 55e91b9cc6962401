package cli

import (
	"fmt"

	"github.com/justx-labs/justx/internal/config"
	"github.com/justx-labs/justx/internal/extension"
	"github.com/justx-labs/justx/internal/layout"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <github-url>",
	Short: "Install an extension from its GitHub repository",
	Long: `Clone an extension repository from GitHub, build it with cargo in release
mode, and place the resulting just-<name> binary in the extension bin directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	url := args[0]

	// Resolve the name up front so failures surface before the bin
	// directory is created.
	repo, err := extension.ParseRepositoryName(url)
	if err != nil {
		return err
	}

	config.Load()
	binDir, err := layout.EnsureBinDir()
	if err != nil {
		return fmt.Errorf("resolving bin directory: %w", err)
	}

	mgr := extension.New(binDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Installing %s...\n", extension.Canonicalize(repo))
	if err := mgr.Install(url); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Installed %s\n", mgr.ResolvePath(repo))
	return nil
}
