// Package cmd 提供 goloc 的命令行入口与子命令编排。
package cmd

import (
	"log/slog"

	"goloc/internal/config"
	"goloc/internal/languages"

	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry, cfg)
	return rootCmd.Execute()
}

// rootState 保存全部子命令共享的全局参数。
type rootState struct {
	logLevel string
}

// logger 根据 --log-level 创建日志对象。
func (s *rootState) logger() (*slog.Logger, error) {
	level, err := config.ParseLevel(s.logLevel)
	if err != nil {
		return nil, err
	}
	return config.NewLogger(level), nil
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry, cfg config.Config) *cobra.Command {
	state := &rootState{logLevel: cfg.LogLevel.String()}

	rootCmd := &cobra.Command{
		Use:   "goloc",
		Short: "按语言统计代码、注释与空白行",
		Long: "goloc 按文件识别语言，并用逐行状态机统计 code/comment/blank 行数，\n" +
			"支持并发扫描、.gitignore 过滤、JSON 导出与目录监听。",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&state.logLevel, "log-level", state.logLevel, "日志级别: debug, info, warn, error")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry, cfg, state))
	rootCmd.AddCommand(newWatchCmd(registry, cfg, state))

	return rootCmd
}
