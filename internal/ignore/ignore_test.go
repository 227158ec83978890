package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatch(t *testing.T) {
	matcher := Parse([]string{
		"# comment",
		"",
		"*.log",
		"build/",
		"/dist",
		"docs/*.md",
		"!keep.log",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: "app.log", ignored: true},
		{path: "sub/app.log", ignored: true},
		{path: "keep.log", ignored: false},
		{path: "build", isDir: true, ignored: true},
		{path: "build", isDir: false, ignored: false},
		{path: "src/build", isDir: true, ignored: true},
		{path: "dist", isDir: true, ignored: true},
		{path: "src/dist", isDir: true, ignored: false},
		{path: "docs/readme.md", ignored: true},
		{path: "docs/sub/readme.md", ignored: false},
		{path: "main.go", ignored: false},
	}

	for _, tc := range cases {
		if got := matcher.Match(tc.path, tc.isDir); got != tc.ignored {
			t.Fatalf("%s (dir=%v): expected ignored=%v, got %v", tc.path, tc.isDir, tc.ignored, got)
		}
	}
}

func TestMatchDoubleStar(t *testing.T) {
	matcher := Parse([]string{
		"**/*.pb.go",
		"assets/**",
		"docs/**/draft.md",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: "api.pb.go", ignored: true},
		{path: "proto/v1/api.pb.go", ignored: true},
		{path: "proto/v1/api.go", ignored: false},
		{path: "assets/logo.svg", ignored: true},
		{path: "assets/img/a/b.js", ignored: true},
		{path: "src/assets/app.js", ignored: false},
		{path: "docs/draft.md", ignored: true},
		{path: "docs/a/b/draft.md", ignored: true},
		{path: "docs/a/final.md", ignored: false},
	}

	for _, tc := range cases {
		if got := matcher.Match(tc.path, tc.isDir); got != tc.ignored {
			t.Fatalf("%s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestLoadAndMerge(t *testing.T) {
	tempDir := t.TempDir()

	missing, err := Load(filepath.Join(tempDir, ".gitignore"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if !missing.Empty() {
		t.Fatalf("missing file should produce empty matcher")
	}

	filePath := filepath.Join(tempDir, ".gitignore")
	if err := os.WriteFile(filePath, []byte("vendor/\n*.gen.go\n"), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}
	loaded, err := Load(filePath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	merged := loaded.Merge(Parse([]string{"!api.gen.go"}))
	if !merged.Match("vendor", true) {
		t.Fatalf("vendor should be ignored")
	}
	if !merged.Match("x.gen.go", false) {
		t.Fatalf("x.gen.go should be ignored")
	}
	if merged.Match("api.gen.go", false) {
		t.Fatalf("negated pattern from merged matcher should win")
	}

	var nilMatcher *Matcher
	if nilMatcher.Match("anything", false) {
		t.Fatalf("nil matcher should ignore nothing")
	}
}
