// Package cli wires the relcut commands. Each command lives in its own file
// and registers itself with the root command in init().
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "relcut",
	Short: "Release bookkeeping for multi-package repositories",
	Long: `relcut keeps the versions and changelogs of every package in a
repository moving in lockstep. It discovers package manifests, verifies
that all packages share one version, and rewrites manifests and
changelogs by replacing exact byte ranges so the rest of each file stays
untouched.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing any failure in the structured
// error format before returning it.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		errors.PrintError(errors.Wrap(err, errors.Runtime))
	}
	return err
}
