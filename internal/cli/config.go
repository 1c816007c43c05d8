package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relcut/internal/config"
	"github.com/ariel-frischer/relcut/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relcut configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config with the default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil {
		return errors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"edit the existing file, or remove it and rerun")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Output, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Output, "writing config")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
