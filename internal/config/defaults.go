package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Relcut Configuration

manifest_name: package.toml           # File that marks a directory as a package
changelog_name: CHANGELOG.md          # Changelog file looked up next to each manifest
ignore_dirs: []                       # Extra directory names excluded from discovery
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"manifest_name":  "package.toml",
		"changelog_name": "CHANGELOG.md",
		// ignore_dirs: Extra directory names excluded from package discovery,
		// merged with the built-in skip set.
		"ignore_dirs": []string{},
	}
}
