// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、任务分发、并发执行和结果聚合，不负责行分类细节。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"goloc/internal/aggregate"
	"goloc/internal/classifier"
	"goloc/internal/ignore"
	"goloc/internal/languages"
	"goloc/internal/model"
	"goloc/internal/syntax"
)

// Options 控制扫描范围与并发度。零值可直接使用。
type Options struct {
	// Workers 是固定 worker 数量，<=0 时取 CPU 数。
	Workers int
	// Excludes 是 gitignore 风格的排除模式，相对扫描根目录匹配。
	Excludes []string
	// Gitignore 为 true 时读取扫描根目录下的 .gitignore。
	Gitignore bool
	// IncludeVendor 为 true 时不跳过 vendor/node_modules 等第三方目录。
	IncludeVendor bool
	// IncludeHidden 为 true 时不跳过以 . 开头的文件与目录。
	IncludeHidden bool
	// Logger 为空时丢弃日志。
	Logger *slog.Logger
	// Cache 为空时每次都重新分类。
	Cache CountCache
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	options  Options
	logger   *slog.Logger
}

// scanTask 表示一个待分类文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	language     string
	passes       []syntax.Descriptor
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	fileMetrics *model.FileMetrics
	scanError   *model.ScanError
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		registry: registry,
		options:  options,
		logger:   logger,
	}
}

// target 是一个已解析的扫描入口。
type target struct {
	absolutePath string
	isDir        bool
	prefix       string
	language     languages.Language
}

// ScanPath 扫描单个目录或文件。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (model.ScanResult, error) {
	return s.Scan(ctx, []string{targetPath})
}

// Scan 并发扫描多个目录或文件，结果合并为一份。
// 入口参数错误在开始扫描前返回；单个文件失败只记录到 Errors，不会中断扫描。
func (s *Service) Scan(ctx context.Context, targetPaths []string) (model.ScanResult, error) {
	var result model.ScanResult

	targets, err := s.resolveTargets(targetPaths)
	if err != nil {
		return result, err
	}
	for _, item := range targets {
		result.ScannedPaths = append(result.ScannedPaths, item.absolutePath)
	}

	tasks := make(chan scanTask, s.options.Workers*4)
	results := make(chan workerResult, s.options.Workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.options.Workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		// 关闭任务通道即通知所有 worker 退出。
		defer close(tasks)
		walkErrChan <- s.enqueueTargets(ctx, targets, tasks, results)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	// 唯一的收集者负责合并，扫描过程中无需加锁。
	aggregator := aggregate.New()
	result.Files = make([]model.FileMetrics, 0)
	result.Errors = make([]model.ScanError, 0)

	for item := range results {
		if item.fileMetrics != nil {
			aggregator.Merge(item.fileMetrics.Language, item.fileMetrics.Count)
			result.Files = append(result.Files, *item.fileMetrics)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	s.buildSummaries(&result, aggregator)
	return result, nil
}

// resolveTargets 校验全部入口；单文件入口必须能识别语言。
func (s *Service) resolveTargets(targetPaths []string) ([]target, error) {
	if len(targetPaths) == 0 {
		return nil, errors.New("scan path is empty")
	}

	targets := make([]target, 0, len(targetPaths))
	for _, targetPath := range targetPaths {
		trimmedPath := strings.TrimSpace(targetPath)
		if trimmedPath == "" {
			return nil, errors.New("scan path is empty")
		}

		absoluteTarget, err := filepath.Abs(trimmedPath)
		if err != nil {
			return nil, fmt.Errorf("resolve absolute path: %w", err)
		}

		info, err := os.Stat(absoluteTarget)
		if err != nil {
			return nil, fmt.Errorf("stat path: %w", err)
		}

		item := target{absolutePath: absoluteTarget, isDir: info.IsDir()}
		if len(targetPaths) > 1 {
			item.prefix = filepath.Base(absoluteTarget)
		}

		if !item.isDir {
			language, ok := s.registry.ForFile(absoluteTarget)
			if !ok {
				return nil, fmt.Errorf("%w: unsupported file extension: %s", languages.ErrUnsupported, filepath.Ext(absoluteTarget))
			}
			item.language = language
		}

		targets = append(targets, item)
	}
	return targets, nil
}

// enqueueTargets 依次把每个入口的文件推入任务队列。
func (s *Service) enqueueTargets(ctx context.Context, targets []target, tasks chan<- scanTask, results chan<- workerResult) error {
	for _, item := range targets {
		var err error
		if item.isDir {
			err = s.enqueueDirectoryTasks(ctx, item, tasks, results)
		} else {
			err = s.enqueueSingleFileTask(ctx, item, tasks)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// enqueueDirectoryTasks 遍历目录并把可识别语言文件推入任务队列。
func (s *Service) enqueueDirectoryTasks(ctx context.Context, root target, tasks chan<- scanTask, results chan<- workerResult) error {
	matcher, err := s.buildMatcher(root.absolutePath)
	if err != nil {
		return err
	}

	return filepath.WalkDir(root.absolutePath, func(path string, entry fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relativePath, relErr := filepath.Rel(root.absolutePath, path)
		if relErr != nil {
			relativePath = path
		}
		relativePath = filepath.ToSlash(relativePath)

		if walkErr != nil {
			if path == root.absolutePath {
				return walkErr
			}
			// 无法读取的子目录只记录错误，继续遍历其它部分。
			s.logger.Warn("skip unreadable path", "path", path, "error", walkErr)
			results <- workerResult{scanError: &model.ScanError{
				Path:  displayPath(root.prefix, relativePath),
				Error: walkErr.Error(),
			}}
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root.absolutePath {
			return nil
		}

		if s.skipEntry(relativePath, entry, matcher) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		language, ok := s.registry.ForFile(path)
		if !ok {
			return nil
		}

		task := scanTask{
			absolutePath: path,
			displayPath:  displayPath(root.prefix, relativePath),
			language:     language.Name,
			passes:       language.Passes,
		}
		select {
		case tasks <- task:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFileTask(ctx context.Context, item target, tasks chan<- scanTask) error {
	task := scanTask{
		absolutePath: item.absolutePath,
		displayPath:  filepath.Base(item.absolutePath),
		language:     item.language.Name,
		passes:       item.language.Passes,
	}

	select {
	case tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildMatcher 合并根目录 .gitignore 与 --exclude 模式。
func (s *Service) buildMatcher(root string) (*ignore.Matcher, error) {
	matcher := &ignore.Matcher{}
	if s.options.Gitignore {
		loaded, err := ignore.Load(filepath.Join(root, ".gitignore"))
		if err != nil {
			return nil, fmt.Errorf("load .gitignore: %w", err)
		}
		matcher = loaded
	}
	return matcher.Merge(ignore.Parse(s.options.Excludes)), nil
}

// skipEntry 判断目录项是否因隐藏、排除规则或第三方目录被跳过。
func (s *Service) skipEntry(relativePath string, entry fs.DirEntry, matcher *ignore.Matcher) bool {
	if s.skipHiddenOrVendor(relativePath, entry.IsDir()) {
		return true
	}
	return matcher.Match(relativePath, entry.IsDir())
}

// SkipDir 判断扫描时是否会跳过该目录（隐藏目录或第三方目录）。
// relativePath 是相对扫描根目录的斜杠路径；watch 用它保持监听范围与统计范围一致。
func (s *Service) SkipDir(relativePath string) bool {
	return s.skipHiddenOrVendor(relativePath, true)
}

func (s *Service) skipHiddenOrVendor(relativePath string, isDir bool) bool {
	if relativePath == "" || relativePath == "." {
		return false
	}
	if !s.options.IncludeHidden && strings.HasPrefix(path.Base(relativePath), ".") {
		return true
	}
	if !s.options.IncludeVendor {
		vendorPath := relativePath
		if isDir {
			vendorPath += "/"
		}
		if enry.IsVendor(vendorPath) {
			return true
		}
	}
	return false
}

// runWorker 执行文件读取和分类。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		count, err := s.countFile(task)
		if err != nil {
			s.logger.Warn("skip unreadable file", "path", task.displayPath, "error", err)
			results <- workerResult{
				scanError: &model.ScanError{
					Path:  task.displayPath,
					Error: err.Error(),
				},
			}
			continue
		}

		results <- workerResult{
			fileMetrics: &model.FileMetrics{
				Path:     task.displayPath,
				Language: task.language,
				Count:    count,
			},
		}
	}
}

// countFile 读取并分类单个文件，命中缓存时跳过读取。
func (s *Service) countFile(task scanTask) (model.Count, error) {
	info, err := os.Stat(task.absolutePath)
	if err != nil {
		return model.Count{}, err
	}
	if !info.Mode().IsRegular() {
		return model.Count{}, fmt.Errorf("not a regular file: %s", info.Mode().Type())
	}

	key := FileKey{Path: task.absolutePath, Size: info.Size(), ModTime: info.ModTime().UnixNano()}
	if s.options.Cache != nil {
		if count, ok := s.options.Cache.Get(key); ok {
			return count, nil
		}
	}

	count, err := classifier.ClassifyFile(task.absolutePath, task.passes...)
	if err != nil {
		return model.Count{}, err
	}

	// 非空文件得到零值，通常意味着内容不是合法 UTF-8。
	if count.IsZero() && info.Size() > 0 {
		s.logger.Debug("suspicious zero count", "path", task.displayPath, "size", info.Size())
	}

	if s.options.Cache != nil {
		s.options.Cache.Add(key, count)
	}
	return count, nil
}

// buildSummaries 排序明细并计算语言级汇总和总计。
func (s *Service) buildSummaries(result *model.ScanResult, aggregator *aggregate.Aggregator) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	result.Languages = aggregator.Totals()
	for idx := range result.Languages {
		result.Languages[idx].Extensions = s.registry.ExtensionsForLanguage(result.Languages[idx].Language)
	}
	result.Total = aggregator.GrandTotal()
}

func displayPath(prefix string, relativePath string) string {
	if prefix == "" {
		return relativePath
	}
	return prefix + "/" + relativePath
}
