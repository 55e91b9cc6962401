package cli

import (
	"encoding/json"
	"fmt"

	"github.com/justx-labs/justx/internal/branding"
	"github.com/justx-labs/justx/internal/updater"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate)

		if versionCheck {
			return checkLatest(cmd)
		}
		return nil
	},
}

func checkLatest(cmd *cobra.Command) error {
	u := updater.New(buildVersion)
	release, err := u.CheckLatestVersion()
	if err != nil {
		return fmt.Errorf("checking latest release: %w", err)
	}

	available, err := updater.IsUpdateAvailable(buildVersion, release.Version)
	if err != nil {
		// Local dev builds have versions like "dev" that don't parse.
		fmt.Fprintf(cmd.OutOrStdout(), "Latest release: %s\n", release.Version)
		return nil
	}

	if available {
		fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s -> %s\n", buildVersion, release.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Get it at https://github.com/%s/releases\n", branding.GitHubRepo())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "You are on the latest version.")
	}
	return nil
}
