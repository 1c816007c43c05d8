// Package discover finds package directories under a repository root.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"target":       {},
	"build":        {},
	"dist":         {},
	"vendor":       {},
}

// Packages returns every directory under root (root included) that contains
// a manifest file, sorted by path. ignoreDirs adds directory names to skip
// on top of the built-in set; the root .gitignore is honored when present.
func Packages(root, manifestName string, ignoreDirs []string) ([]string, error) {
	extraSkip := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		extraSkip[d] = struct{}{}
	}
	gi := loadGitignore(root)

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != root {
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			if _, skip := extraSkip[name]; skip {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil {
				rel, relErr := filepath.Rel(root, path)
				if relErr == nil && gi.MatchesPath(rel) {
					return filepath.SkipDir
				}
			}
		}

		if _, statErr := os.Stat(filepath.Join(path, manifestName)); statErr == nil {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(dirs)
	return dirs, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
