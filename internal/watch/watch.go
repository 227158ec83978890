// Package watch 监听目录变化并在变化平息后重新统计。
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"goloc/internal/model"
)

const defaultDebounce = 250 * time.Millisecond

// Scanner 是 watch 依赖的扫描能力，由 scanner.Service 实现。
// SkipDir 决定哪些目录不加入监听，与扫描时跳过的目录保持一致。
type Scanner interface {
	ScanPath(ctx context.Context, targetPath string) (model.ScanResult, error)
	SkipDir(relativePath string) bool
}

// Options 控制防抖间隔与日志。
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Run 先完整扫描一次，之后每批文件变化平息后再扫描一次，结果交给 onResult。
// ctx 取消时返回 nil。
func Run(ctx context.Context, scanner Scanner, target string, options Options, onResult func(model.ScanResult, error)) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := options.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	root, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("watch target must be a directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, scanner, root, root); err != nil {
		return err
	}

	onResult(scanner.ScanPath(ctx, root))

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if stat, statErr := os.Stat(event.Name); statErr == nil && stat.IsDir() {
					if addErr := addWatchRecursive(watcher, scanner, root, event.Name); addErr != nil {
						logger.Warn("watch new directory", "path", event.Name, "error", addErr)
					}
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			pending = true
			timer.Reset(debounce)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			onResult(scanner.ScanPath(ctx, root))
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

// addWatchRecursive 监听 dir 及其子目录，跳过扫描同样会跳过的目录。
func addWatchRecursive(watcher *fsnotify.Watcher, scanner Scanner, root string, dir string) error {
	return filepath.WalkDir(filepath.Clean(dir), func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root {
			relativePath, relErr := filepath.Rel(root, path)
			if relErr == nil && scanner.SkipDir(filepath.ToSlash(relativePath)) {
				return filepath.SkipDir
			}
		}
		return watcher.Add(path)
	})
}
