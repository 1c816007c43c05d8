package cli

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/gha"
	"github.com/ariel-frischer/relcut/internal/release"
)

var (
	changelogVersionFlag string
	changelogRootFlag    string
	changelogConfigFlag  string
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Aggregate changelog sections across packages",
	Long: `Aggregate changelog sections from every package into one report,
grouped by package id.

By default the report covers each package's pending section; packages
with nothing pending appear with a placeholder so the report always
names every package. With --version the report covers that released
version instead, and only packages that recorded content for it appear.

When run inside GitHub Actions the report is also set as the changelog
step output.

Examples:
  relcut changelog                    # Pending changes across all packages
  relcut changelog --version 1.2.0    # What shipped in 1.2.0`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runChangelog,
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().StringVar(&changelogVersionFlag, "version", "", "Report a released version instead of pending changes")
	changelogCmd.Flags().StringVar(&changelogRootFlag, "root", ".", "Repository root to scan for packages")
	changelogCmd.Flags().StringVar(&changelogConfigFlag, "config", "", "Project config path (default .relcut/config.yml)")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	if changelogVersionFlag != "" {
		if _, err := semver.StrictNewVersion(changelogVersionFlag); err != nil {
			return errors.NewArgumentErrorWithUsage(
				fmt.Sprintf("invalid version %q: %v", changelogVersionFlag, err),
				"relcut changelog --version <x.y.z>")
		}
	}

	pkgs, err := loadPackages(changelogRootFlag, changelogConfigFlag)
	if err != nil {
		return err
	}

	var report string
	if changelogVersionFlag != "" {
		report = release.StrictReport(release.ReleasedSections(pkgs, changelogVersionFlag))
	} else {
		report = release.SummaryReport(release.PendingSections(pkgs))
	}

	fmt.Fprint(cmd.OutOrStdout(), report)

	// The report already went to stdout; the side channel only matters
	// inside Actions.
	if err := gha.SetOutput(io.Discard, "changelog", report); err != nil {
		return errors.Wrap(err, errors.Output)
	}
	return nil
}
