// Package config 解析运行时配置。
// 优先级：命令行参数 > 环境变量（含 .env）> 内置默认值。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 保存 scan/watch 命令的默认参数。
type Config struct {
	Workers       int
	Format        string
	Output        string
	Excludes      []string
	LogLevel      slog.Level
	Gitignore     bool
	IncludeVendor bool
}

// Default 返回内置默认值。
func Default() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		Format:    "table",
		Output:    "output.json",
		LogLevel:  slog.LevelWarn,
		Gitignore: true,
	}
}

// Load 读取当前目录下的 .env（不存在时忽略），再用环境变量覆盖默认值。
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv 从给定的查找函数构建配置，便于测试注入。
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if raw := strings.TrimSpace(getenv("GOLOC_WORKERS")); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers <= 0 {
			return cfg, fmt.Errorf("GOLOC_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.Workers = workers
	}

	if raw := strings.ToLower(strings.TrimSpace(getenv("GOLOC_FORMAT"))); raw != "" {
		cfg.Format = raw
	}
	cfg.Output = firstNonEmpty(strings.TrimSpace(getenv("GOLOC_OUTPUT")), cfg.Output)
	cfg.Excludes = SplitList(getenv("GOLOC_EXCLUDE"))

	if raw := strings.TrimSpace(getenv("GOLOC_LOG_LEVEL")); raw != "" {
		level, err := ParseLevel(raw)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	if raw := strings.TrimSpace(getenv("GOLOC_NO_GITIGNORE")); raw != "" {
		disabled, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("GOLOC_NO_GITIGNORE: %w", err)
		}
		cfg.Gitignore = !disabled
	}

	if raw := strings.TrimSpace(getenv("GOLOC_INCLUDE_VENDOR")); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("GOLOC_INCLUDE_VENDOR: %w", err)
		}
		cfg.IncludeVendor = include
	}

	return cfg, nil
}

// ParseLevel 解析 debug/info/warn/error 日志级别。
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

// SplitList 按逗号拆分并去掉空项。
func SplitList(raw string) []string {
	var result []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// NewLogger 创建输出到 stderr 的文本日志。
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
