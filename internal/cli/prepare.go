package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/gha"
	"github.com/ariel-frischer/relcut/internal/release"
)

var (
	prepareBumpFlag   string
	prepareRootFlag   string
	prepareConfigFlag string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Bump every package and roll pending changes into a dated release",
	Long: `Prepare a release across every package in the repository.

All packages must share one version. The shared version is incremented
by the given coordinate, every manifest is rewritten with the new
version (including cross-references between local packages), and each
changelog's pending section becomes a dated release entry.

Nothing is written until every file has parsed and every edit has been
planned, so a broken package anywhere leaves the repository untouched.

When run inside GitHub Actions, the step outputs from_version,
to_version, and changelog (the aggregated pending sections) are set for
downstream steps. Outside of Actions the same values print to stdout.

Examples:
  relcut prepare --bump patch
  relcut prepare --bump minor --root ./packages`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().StringVar(&prepareBumpFlag, "bump", "", "Version coordinate to increment: major, minor or patch (required)")
	prepareCmd.Flags().StringVar(&prepareRootFlag, "root", ".", "Repository root to scan for packages")
	prepareCmd.Flags().StringVar(&prepareConfigFlag, "config", "", "Project config path (default .relcut/config.yml)")
	_ = prepareCmd.MarkFlagRequired("bump")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	bump, err := release.ParseBump(prepareBumpFlag)
	if err != nil {
		return errors.NewArgumentErrorWithUsage(err.Error(),
			"relcut prepare --bump <major|minor|patch>")
	}

	pkgs, err := loadPackages(prepareRootFlag, prepareConfigFlag)
	if err != nil {
		return err
	}

	// Snapshot the pending sections before the rewrite; the summary output
	// describes what this release ships.
	pending := release.PendingSections(pkgs)

	plan, err := release.Build(pkgs, bump, time.Now())
	if err != nil {
		return errors.Wrap(err, errors.Invariant,
			"bring every package to the same version, then rerun")
	}

	if err := plan.Apply(cmd.ErrOrStderr()); err != nil {
		return errors.Wrap(err, errors.Output)
	}

	out := cmd.OutOrStdout()
	outputs := []struct{ key, value string }{
		{"from_version", plan.From.String()},
		{"to_version", plan.To.String()},
		{"changelog", release.SummaryReport(pending)},
	}
	for _, o := range outputs {
		if err := gha.SetOutput(out, o.key, o.value); err != nil {
			return errors.Wrap(err, errors.Output)
		}
	}
	return nil
}
