package cli

import (
	"fmt"

	"github.com/justx-labs/justx/internal/config"
	"github.com/justx-labs/justx/internal/extension"
	"github.com/justx-labs/justx/internal/layout"
	"github.com/spf13/cobra"
)

var whichCmd = &cobra.Command{
	Use:   "which <name>",
	Short: "Print the path of an installed extension",
	Long: `Print the full path of the named extension's binary. Exits nonzero when
the extension is not installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runWhich,
}

func init() {
	rootCmd.AddCommand(whichCmd)
}

func runWhich(cmd *cobra.Command, args []string) error {
	name := args[0]

	config.Load()
	binDir, err := layout.BinDir()
	if err != nil {
		return fmt.Errorf("resolving bin directory: %w", err)
	}

	path, ok := extension.New(binDir).Locate(name)
	if !ok {
		return fmt.Errorf("%s is not installed", extension.Canonicalize(name))
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
