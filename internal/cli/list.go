package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/justx-labs/justx/internal/config"
	"github.com/justx-labs/justx/internal/extension"
	"github.com/justx-labs/justx/internal/layout"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions",
	Long:  `List the just-* extension binaries found in the bin directory.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	config.Load()
	binDir, err := layout.BinDir()
	if err != nil {
		return fmt.Errorf("resolving bin directory: %w", err)
	}

	names := extension.New(binDir).List()
	sort.Strings(names)

	if listJSON {
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed yet.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
