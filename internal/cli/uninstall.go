package cli

import (
	"fmt"

	"github.com/justx-labs/justx/internal/config"
	"github.com/justx-labs/justx/internal/extension"
	"github.com/justx-labs/justx/internal/layout"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Remove an installed extension",
	Long: `Remove the named extension's binary from the bin directory. The just-
prefix may be omitted. Removing an extension that is not installed is not
an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	config.Load()
	binDir, err := layout.BinDir()
	if err != nil {
		return fmt.Errorf("resolving bin directory: %w", err)
	}

	mgr := extension.New(binDir)
	installed := mgr.IsInstalled(name)
	if err := mgr.Uninstall(name); err != nil {
		return err
	}

	if installed {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", extension.Canonicalize(name))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not installed, nothing to do\n", extension.Canonicalize(name))
	}
	return nil
}
