package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/justx-labs/justx/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate an extension manifest",
	Long: `Validate the extension.yaml in the given directory (default: current
directory) against the manifest schema. Meant for extension authors
checking their metadata before publishing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, manifest.FileName)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PATH\tKEYWORD\tMESSAGE")
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "%s\t%s\t%s\n", issue.Path, issue.Keyword, issue.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fmt.Errorf("%s has %d validation issue(s)", path, len(result.Issues))
}
