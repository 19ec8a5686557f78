package parser

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bitfield/script"
)

// ExpandGlobs turns a list of paths and glob patterns into a sorted,
// deduplicated list of files. A pattern that matches nothing is kept as a
// literal path so that reading it later reports which file was missing.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	slices.Sort(files)
	return files, nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	return script.IfExists(path).Error() == nil
}
