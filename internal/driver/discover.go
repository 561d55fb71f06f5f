package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListFiles returns the sorted list of analyzable files under dir.
// Extension matching is exact; excludes match directory names and glob
// patterns against the path relative to dir.
func ListFiles(dir string, extensions, excludes []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".klar"}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != dir && isExcluded(rel, d.Name(), excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if isExcluded(rel, d.Name(), excludes) {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deterministic order: discovery never affects report order, but a
	// stable worklist keeps progress output and cache traffic stable too.
	sort.Strings(files)
	return files, nil
}

func isExcluded(rel, name string, excludes []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range excludes {
		if pat == "" {
			continue
		}
		if pat == name || pat == rel {
			return true
		}
		if ok, err := filepath.Match(pat, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}
