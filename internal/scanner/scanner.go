// Package scanner discovers compressible text files under a directory.
// A Ruleset decides what the batch and watch commands may touch:
// .gitignore patterns, always-excluded build directories, and a
// text-extension allowlist.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// textExtensions are the file types the batch and watch commands compress.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".rst": true,
	".text": true, ".prompt": true, ".adoc": true, ".org": true,
}

// hardIgnored contains directories that are never scanned regardless of
// .gitignore. Build output and vendored trees hold no prose worth
// compressing, and watching them floods the event loop.
var hardIgnored = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"tmp":          true,
	"coverage":     true,
	"target":       true,
}

// IsTextFile reports whether the file name looks like compressible prose.
func IsTextFile(name string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(name))]
}

// HardIgnore returns true if the directory name is always excluded.
func HardIgnore(name string) bool {
	return hardIgnored[name]
}

// Ruleset bundles the ignore rules for one scanned root.
type Ruleset struct {
	gi *gitignore.GitIgnore
}

// NewRuleset loads .gitignore from the given root. If no .gitignore file
// is found (or it fails to parse), only the built-in rules apply.
func NewRuleset(root string) *Ruleset {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return &Ruleset{}
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return &Ruleset{}
	}
	return &Ruleset{gi: gi}
}

// Ignored reports whether the relative path matches a .gitignore pattern.
func (r *Ruleset) Ignored(rel string) bool {
	if r.gi == nil {
		return false
	}
	return r.gi.MatchesPath(rel)
}

// SkipDir reports whether a directory at rel (with base name) should be
// pruned from the walk.
func (r *Ruleset) SkipDir(rel, name string) bool {
	return HardIgnore(name) || r.Ignored(rel)
}

// WantFile reports whether the file at rel is a compression candidate.
func (r *Ruleset) WantFile(rel string) bool {
	return IsTextFile(rel) && !r.Ignored(rel)
}

// Discover walks root and returns relative paths of candidate text files,
// in walk order.
func Discover(root string) ([]string, error) {
	rules := NewRuleset(root)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if rules.SkipDir(rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if rules.WantFile(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
