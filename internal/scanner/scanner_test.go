package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"goloc/internal/languages"
	"goloc/internal/model"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture file failed: %v", err)
	}
}

func newTestService(options Options) *Service {
	return NewService(languages.NewRegistry(), options)
}

// TestScanSingleFile 验证 scan 支持“直接传单文件路径”。
func TestScanSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "single.go")

	writeFixtureFile(t, filePath, strings.Join([]string{
		"package main",
		"// top comment",
		"func main() { x := 1 // inline }",
	}, "\n"))

	service := newTestService(Options{Workers: 2})
	result, err := service.ScanPath(context.Background(), filePath)
	if err != nil {
		t.Fatalf("scan single file failed: %v", err)
	}

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 scanned file, got %d", len(result.Files))
	}
	if result.Total.Files != 1 {
		t.Fatalf("expected total.files=1, got %d", result.Total.Files)
	}
	expected := model.Count{Code: 2, Comment: 1, Blank: 0, Lines: 3}
	if result.Total.Count != expected {
		t.Fatalf("unexpected total metrics: %+v", result.Total)
	}

	fileMetrics := result.Files[0]
	if fileMetrics.Path != "single.go" {
		t.Fatalf("expected display path single.go, got %s", fileMetrics.Path)
	}
	if fileMetrics.Language != "Go" {
		t.Fatalf("expected language Go, got %s", fileMetrics.Language)
	}
}

// TestScanDirectoryTotalFiles 验证目录扫描时 total.files 与文件数一致。
func TestScanDirectoryTotalFiles(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), strings.Join([]string{
		"package main",
		"func main() {}",
	}, "\n"))
	writeFixtureFile(t, filepath.Join(tempDir, "web", "app.js"), strings.Join([]string{
		"const x = 1; // js comment",
	}, "\n"))
	writeFixtureFile(t, filepath.Join(tempDir, "logo.png"), "\x89PNG")

	service := newTestService(Options{Workers: 4})
	result, err := service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan directory failed: %v", err)
	}

	if len(result.Files) != 2 {
		t.Fatalf("expected 2 scanned files, got %d", len(result.Files))
	}
	if result.Total.Files != 2 {
		t.Fatalf("expected total.files=2, got %d", result.Total.Files)
	}
	if len(result.Languages) != 2 {
		t.Fatalf("expected 2 language summaries, got %d", len(result.Languages))
	}
	if result.Files[0].Path != "main.go" || result.Files[1].Path != "web/app.js" {
		t.Fatalf("unexpected file order: %+v", result.Files)
	}
	if result.Languages[0].Language != "Go" || result.Languages[0].Extensions[0] != ".go" {
		t.Fatalf("unexpected language summary: %+v", result.Languages[0])
	}
}

// TestScanUnsupportedSingleFile 验证单文件模式下不支持后缀会返回错误。
func TestScanUnsupportedSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "demo.png")
	writeFixtureFile(t, filePath, "binary")

	service := newTestService(Options{Workers: 1})
	_, err := service.ScanPath(context.Background(), filePath)
	if err == nil {
		t.Fatalf("expected unsupported extension error, got nil")
	}
	if !errors.Is(err, languages.ErrUnsupported) || !strings.Contains(err.Error(), "unsupported file extension") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestScanMissingPath 验证入口不存在时在扫描开始前报错。
func TestScanMissingPath(t *testing.T) {
	service := newTestService(Options{})
	if _, err := service.ScanPath(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected stat error")
	}
	if _, err := service.Scan(context.Background(), []string{"  "}); err == nil {
		t.Fatalf("expected empty path error")
	}
}

// TestScanFilters 验证隐藏目录、第三方目录、.gitignore 与 --exclude 的过滤。
func TestScanFilters(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n")
	writeFixtureFile(t, filepath.Join(tempDir, ".hidden", "x.go"), "package x\n")
	writeFixtureFile(t, filepath.Join(tempDir, "vendor", "lib", "lib.go"), "package lib\n")
	writeFixtureFile(t, filepath.Join(tempDir, "node_modules", "m", "index.js"), "module.exports = 1;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "gen", "api.go"), "package gen\n")
	writeFixtureFile(t, filepath.Join(tempDir, "tools", "tool.py"), "print(1)\n")
	writeFixtureFile(t, filepath.Join(tempDir, ".gitignore"), "gen/\n")

	service := newTestService(Options{Workers: 2, Gitignore: true, Excludes: []string{"tools"}})
	result, err := service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Path != "main.go" {
		t.Fatalf("expected only main.go, got %+v", result.Files)
	}

	service = newTestService(Options{Workers: 2, IncludeHidden: true, IncludeVendor: true})
	result, err = service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(result.Files) != 6 {
		t.Fatalf("expected 6 files without filters, got %+v", result.Files)
	}
}

// TestSkipDirFollowsOptions 验证目录跳过规则随 IncludeHidden/IncludeVendor 变化。
func TestSkipDirFollowsOptions(t *testing.T) {
	cases := []struct {
		options  Options
		path     string
		expected bool
	}{
		{options: Options{}, path: ".", expected: false},
		{options: Options{}, path: "pkg", expected: false},
		{options: Options{}, path: ".cfg", expected: true},
		{options: Options{}, path: "src/.cache", expected: true},
		{options: Options{}, path: "vendor", expected: true},
		{options: Options{}, path: "web/node_modules", expected: true},
		{options: Options{IncludeHidden: true}, path: ".cfg", expected: false},
		{options: Options{IncludeHidden: true}, path: "vendor", expected: true},
		{options: Options{IncludeVendor: true}, path: "vendor", expected: false},
		{options: Options{IncludeVendor: true}, path: ".cfg", expected: true},
	}

	for _, tc := range cases {
		service := newTestService(tc.options)
		if got := service.SkipDir(tc.path); got != tc.expected {
			t.Fatalf("SkipDir(%q) with %+v: expected %v, got %v", tc.path, tc.options, tc.expected, got)
		}
	}
}

// TestScanInvalidUTF8CountsAsZero 验证非法 UTF-8 文件贡献零值但仍计入文件数。
func TestScanInvalidUTF8CountsAsZero(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "bad.c"), "int a;\n\xff\xfe\nint b;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "good.c"), "int a;\n")

	result, err := newTestService(Options{Workers: 2}).ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.Total.Files != 2 {
		t.Fatalf("expected 2 files, got %d", result.Total.Files)
	}
	if result.Total.Count != (model.Count{Code: 1, Lines: 1}) {
		t.Fatalf("unexpected total: %+v", result.Total)
	}
	if !result.Files[0].Count.IsZero() {
		t.Fatalf("expected bad.c to be zero, got %+v", result.Files[0])
	}
}

// TestScanMultipleTargets 验证多个入口合并为一份结果。
func TestScanMultipleTargets(t *testing.T) {
	first := filepath.Join(t.TempDir(), "alpha")
	second := filepath.Join(t.TempDir(), "beta")
	writeFixtureFile(t, filepath.Join(first, "a.rb"), "# c\nputs 1\n")
	writeFixtureFile(t, filepath.Join(second, "b.rb"), "=begin\nx\n=end\n")

	result, err := newTestService(Options{Workers: 3}).Scan(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(result.ScannedPaths) != 2 {
		t.Fatalf("expected 2 scanned paths, got %v", result.ScannedPaths)
	}
	if result.Files[0].Path != "alpha/a.rb" || result.Files[1].Path != "beta/b.rb" {
		t.Fatalf("unexpected display paths: %+v", result.Files)
	}
	ruby := result.Languages[0]
	if ruby.Files != 2 || ruby.Count != (model.Count{Code: 1, Comment: 4, Lines: 5}) {
		t.Fatalf("unexpected ruby total: %+v", ruby)
	}
}

// TestScanConcurrentMatchesSequential 验证并发度不影响结果。
func TestScanConcurrentMatchesSequential(t *testing.T) {
	tempDir := t.TempDir()
	for i := 0; i < 60; i++ {
		content := strings.Repeat("int x = 1;\n/* c */\n\n", i%7+1)
		writeFixtureFile(t, filepath.Join(tempDir, "d"+strconv.Itoa(i%5), "f"+strconv.Itoa(i)+".c"), content)
	}

	sequential, err := newTestService(Options{Workers: 1}).ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("sequential scan failed: %v", err)
	}
	parallel, err := newTestService(Options{Workers: 8}).ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("parallel scan failed: %v", err)
	}

	if sequential.Total != parallel.Total {
		t.Fatalf("totals differ: %+v vs %+v", sequential.Total, parallel.Total)
	}
	if !sequential.Total.Consistent() || sequential.Total.Files != 60 {
		t.Fatalf("unexpected total: %+v", sequential.Total)
	}
}

// TestScanCanceled 验证取消的 context 会中止整次扫描。
func TestScanCanceled(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(Options{Workers: 1}).ScanPath(ctx, tempDir)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// TestScanUsesCache 验证未变化的文件直接命中缓存。
func TestScanUsesCache(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.go")
	writeFixtureFile(t, filePath, "package main\n")

	cache, err := NewLRUCache(16)
	if err != nil {
		t.Fatalf("create cache failed: %v", err)
	}
	service := newTestService(Options{Workers: 1, Cache: cache})

	if _, err := service.ScanPath(context.Background(), tempDir); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", cache.Len())
	}

	info, err := os.Stat(filePath)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	key := FileKey{Path: filePath, Size: info.Size(), ModTime: info.ModTime().UnixNano()}
	sentinel := model.Count{Code: 42, Lines: 42}
	cache.Add(key, sentinel)

	result, err := service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.Files[0].Count != sentinel {
		t.Fatalf("expected cached count, got %+v", result.Files[0].Count)
	}
}
