package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"goloc/internal/config"
	"goloc/internal/languages"
	"goloc/internal/model"
	"goloc/internal/report"
	"goloc/internal/scanner"
	"goloc/internal/watch"

	"github.com/spf13/cobra"
)

// watchCacheSize 是 watch 模式下缓存的文件统计条目上限。
const watchCacheSize = 8192

// newWatchCmd 创建 watch 子命令。
// 目录内文件变化平息后重新统计，未变化的文件直接复用缓存结果。
//
//	goloc watch ./project --debounce 500ms
func newWatchCmd(registry *languages.Registry, cfg config.Config, state *rootState) *cobra.Command {
	options := newScanOptions(cfg)
	debounce := 250 * time.Millisecond

	watchCmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "监听目录变化并持续输出统计",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serviceOptions, err := options.scannerOptions()
			if err != nil {
				return err
			}
			logger, err := state.logger()
			if err != nil {
				return err
			}
			cache, err := scanner.NewLRUCache(watchCacheSize)
			if err != nil {
				return err
			}
			serviceOptions.Logger = logger
			serviceOptions.Cache = cache

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			service := scanner.NewService(registry, serviceOptions)
			return watch.Run(ctx, service, args[0], watch.Options{Debounce: debounce, Logger: logger}, func(result model.ScanResult, scanErr error) {
				if scanErr != nil {
					if ctx.Err() == nil {
						logger.Error("scan failed", "error", scanErr)
					}
					return
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n[%s]\n", time.Now().Format(time.TimeOnly))
				if printErr := report.PrintTable(cmd.OutOrStdout(), result, report.TableOptions{Files: options.files}); printErr != nil {
					logger.Error("print result", "error", printErr)
				}
			})
		},
	}

	watchCmd.Flags().DurationVar(&debounce, "debounce", debounce, "变化平息多久后重新统计")
	watchCmd.Flags().IntVar(&options.workers, "workers", options.workers, "并发 worker 数量")
	watchCmd.Flags().StringSliceVar(&options.exclude, "exclude", options.exclude, "逗号分隔的排除模式（gitignore 语法）")
	watchCmd.Flags().BoolVar(&options.noGitignore, "no-gitignore", options.noGitignore, "不读取扫描根目录下的 .gitignore")
	watchCmd.Flags().BoolVar(&options.includeVendor, "include-vendor", options.includeVendor, "统计 vendor、node_modules 等第三方目录")
	watchCmd.Flags().BoolVar(&options.hidden, "hidden", options.hidden, "统计以 . 开头的文件与目录")
	watchCmd.Flags().BoolVar(&options.files, "files", options.files, "表格中输出每个文件的明细")

	return watchCmd
}
