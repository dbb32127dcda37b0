package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsTextFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"notes.txt", true},
		{"README.md", true},
		{"guide.MD", true},
		{"prompt.prompt", true},
		{"main.go", false},
		{"image.png", false},
		{"archive.tar.gz", false},
	}
	for _, c := range cases {
		if got := IsTextFile(c.name); got != c.want {
			t.Errorf("IsTextFile(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDiscover_FindsTextFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "hello")
	writeFile(t, root, "docs/b.md", "world")
	writeFile(t, root, "src/main.go", "package main")

	files, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range files {
		found[f] = true
	}
	if !found["a.txt"] || !found[filepath.Join("docs", "b.md")] {
		t.Errorf("missing text files in %v", files)
	}
	if found[filepath.Join("src", "main.go")] {
		t.Error("source file should not be discovered")
	}
}

func TestDiscover_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored/\nsecret.txt\n")
	writeFile(t, root, "keep.txt", "keep")
	writeFile(t, root, "secret.txt", "secret")
	writeFile(t, root, "ignored/inside.txt", "inside")

	files, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	for _, f := range files {
		if f == "secret.txt" {
			t.Error("gitignored file discovered")
		}
		if filepath.Dir(f) == "ignored" {
			t.Error("file inside gitignored directory discovered")
		}
	}
}

func TestDiscover_SkipsHardIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/readme.md", "vendored")
	writeFile(t, root, "real.md", "real")

	files, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(files) != 1 || files[0] != "real.md" {
		t.Errorf("files %v, want just real.md", files)
	}
}

func TestRuleset(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "drafts\nwip.md\n")

	rules := NewRuleset(root)

	if !rules.WantFile("notes.md") {
		t.Error("plain markdown file should be wanted")
	}
	if rules.WantFile("wip.md") {
		t.Error("gitignored file should not be wanted")
	}
	if rules.WantFile("main.go") {
		t.Error("non-text file should not be wanted")
	}
	if !rules.SkipDir("vendor", "vendor") {
		t.Error("hard-ignored directory should be skipped")
	}
	if !rules.SkipDir("drafts", "drafts") {
		t.Error("gitignored directory should be skipped")
	}
	if rules.SkipDir("docs", "docs") {
		t.Error("ordinary directory should not be skipped")
	}
}

func TestRuleset_NoGitignore(t *testing.T) {
	rules := NewRuleset(t.TempDir())
	if rules.Ignored("anything.md") {
		t.Error("without .gitignore nothing is pattern-ignored")
	}
	if !rules.WantFile("anything.md") {
		t.Error("text file should be wanted")
	}
}

func TestHardIgnore(t *testing.T) {
	if !HardIgnore("node_modules") || !HardIgnore(".git") {
		t.Error("expected hard-ignored directories")
	}
	if HardIgnore("docs") {
		t.Error("docs should not be hard-ignored")
	}
}
