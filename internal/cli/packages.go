package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/ariel-frischer/relcut/internal/changelog"
	"github.com/ariel-frischer/relcut/internal/config"
	"github.com/ariel-frischer/relcut/internal/discover"
	"github.com/ariel-frischer/relcut/internal/errors"
	"github.com/ariel-frischer/relcut/internal/manifest"
	"github.com/ariel-frischer/relcut/internal/release"
)

// loadPackages resolves configuration, discovers package directories under
// root, and loads every package. All packages parse before anything else
// runs, so a broken file anywhere fails the command before the first write.
func loadPackages(root, configPath string) ([]release.Package, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.Input,
			fmt.Sprintf("check %s for syntax errors", config.ProjectConfigPath()))
	}

	dirs, err := discover.Packages(root, cfg.ManifestName, cfg.IgnoreDirs)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Input, "discovering packages")
	}
	if len(dirs) == 0 {
		return nil, errors.Wrap(
			fmt.Errorf("no packages found under %s (looking for %s)", root, cfg.ManifestName),
			errors.Input,
			"run from the repository root or pass --root",
			fmt.Sprintf("set manifest_name in %s if your manifests use another name", config.ProjectConfigPath()))
	}

	pkgs := make([]release.Package, 0, len(dirs))
	for _, dir := range dirs {
		pkg, err := release.LoadPackage(dir, cfg.ManifestName, cfg.ChangelogName)
		if err != nil {
			return nil, errors.Wrap(err, categorizeLoad(err))
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// categorizeLoad separates files whose shape defeats span location from
// files that simply cannot be read or decoded.
func categorizeLoad(err error) errors.ErrorCategory {
	var parseErr *changelog.ParseError
	switch {
	case stderrors.Is(err, manifest.ErrSpanMismatch):
		return errors.Structure
	case stderrors.As(err, &parseErr):
		return errors.Structure
	default:
		return errors.Input
	}
}
