package cli

import (
	"os"

	"github.com/justx-labs/justx/internal/branding"
	"github.com/justx-labs/justx/internal/config"
	"github.com/justx-labs/justx/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs, removes, and lists the just-* extension binaries
that extend the just command runner. Extensions are fetched from GitHub,
built with cargo, and placed in the extension bin directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip the banner for commands that report version state themselves.
		name := cmd.Name()
		if name == "version" || name == "config" {
			return
		}

		// Non-blocking banner from cached version check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
