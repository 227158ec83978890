package cmd

import (
	"errors"
	"fmt"
	"strings"

	"goloc/internal/config"
	"goloc/internal/languages"
	"goloc/internal/report"
	"goloc/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	format        string
	output        string
	workers       int
	exclude       []string
	noGitignore   bool
	includeVendor bool
	hidden        bool
	files         bool
}

// newScanOptions 用配置中的默认值初始化参数。
func newScanOptions(cfg config.Config) scanOptions {
	return scanOptions{
		format:        cfg.Format,
		output:        cfg.Output,
		workers:       cfg.Workers,
		exclude:       cfg.Excludes,
		noGitignore:   !cfg.Gitignore,
		includeVendor: cfg.IncludeVendor,
	}
}

// scannerOptions 转换为扫描服务参数。
func (o scanOptions) scannerOptions() (scanner.Options, error) {
	if o.workers <= 0 {
		return scanner.Options{}, errors.New("workers must be greater than 0")
	}
	return scanner.Options{
		Workers:       o.workers,
		Excludes:      o.exclude,
		Gitignore:     !o.noGitignore,
		IncludeVendor: o.includeVendor,
		IncludeHidden: o.hidden,
	}, nil
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	goloc scan .
//	goloc scan ./project ./lib --exclude testdata,*.pb.go
//	goloc scan ./project --format json --output result.json
func newScanCmd(registry *languages.Registry, cfg config.Config, state *rootState) *cobra.Command {
	options := newScanOptions(cfg)

	scanCmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "扫描目录或文件并输出行数统计",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" {
				return errors.New("unsupported format, allowed values: table, json")
			}

			serviceOptions, err := options.scannerOptions()
			if err != nil {
				return err
			}
			logger, err := state.logger()
			if err != nil {
				return err
			}
			serviceOptions.Logger = logger

			service := scanner.NewService(registry, serviceOptions)
			result, err := service.Scan(cmd.Context(), args)
			if err != nil {
				return err
			}

			switch format {
			case "table":
				return report.PrintTable(cmd.OutOrStdout(), result, report.TableOptions{Files: options.files})
			case "json":
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}

				outputPath := strings.TrimSpace(options.output)
				if outputPath == "" {
					outputPath = "output.json"
				}
				if err := report.WriteJSONFile(outputPath, result); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
				return nil
			default:
				return errors.New("unsupported format")
			}
		},
	}

	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: table 或 json")
	scanCmd.Flags().StringVar(&options.output, "output", options.output, "json 导出文件路径，默认 output.json")
	scanCmd.Flags().IntVar(&options.workers, "workers", options.workers, "并发 worker 数量")
	scanCmd.Flags().StringSliceVar(&options.exclude, "exclude", options.exclude, "逗号分隔的排除模式（gitignore 语法）")
	scanCmd.Flags().BoolVar(&options.noGitignore, "no-gitignore", options.noGitignore, "不读取扫描根目录下的 .gitignore")
	scanCmd.Flags().BoolVar(&options.includeVendor, "include-vendor", options.includeVendor, "统计 vendor、node_modules 等第三方目录")
	scanCmd.Flags().BoolVar(&options.hidden, "hidden", options.hidden, "统计以 . 开头的文件与目录")
	scanCmd.Flags().BoolVar(&options.files, "files", options.files, "表格中输出每个文件的明细")

	return scanCmd
}
