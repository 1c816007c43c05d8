// relcut - Multi-Package Release Bookkeeping
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/relcut

// Package config provides hierarchical configuration management for relcut
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relcut/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the relcut CLI tool configuration.
type Configuration struct {
	// ManifestName is the file name that marks a directory as a package.
	// Can be set via RELCUT_MANIFEST_NAME env var.
	ManifestName string `koanf:"manifest_name"`

	// ChangelogName is the changelog file name looked up next to each
	// manifest. Can be set via RELCUT_CHANGELOG_NAME env var.
	ChangelogName string `koanf:"changelog_name"`

	// IgnoreDirs lists directory names excluded from package discovery, in
	// addition to the built-in set (.git, node_modules, target, ...).
	IgnoreDirs []string `koanf:"ignore_dirs"`
}

// Load loads configuration from project and environment sources.
// Priority: Environment variables > Project config > Defaults
//
// The project config path defaults to .relcut/config.yml; pass a non-empty
// path to override it.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	path := projectConfigPath
	if path == "" {
		path = ProjectConfigPath()
	}
	if fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load project config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("RELCUT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.ManifestName == "" {
		return nil, fmt.Errorf("manifest_name must not be empty")
	}
	if cfg.ChangelogName == "" {
		return nil, fmt.Errorf("changelog_name must not be empty")
	}
	return &cfg, nil
}

// ProjectConfigPath returns the default project config location.
func ProjectConfigPath() string {
	return ".relcut/config.yml"
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// (RELCUT_MANIFEST_NAME -> manifest_name).
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELCUT_"))
}
