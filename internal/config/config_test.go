package config

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)
	require.Equal(t, runtime.NumCPU(), cfg.Workers)
	require.Equal(t, "table", cfg.Format)
	require.Equal(t, "output.json", cfg.Output)
	require.Equal(t, slog.LevelWarn, cfg.LogLevel)
	require.True(t, cfg.Gitignore)
	require.False(t, cfg.IncludeVendor)
	require.Empty(t, cfg.Excludes)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"GOLOC_WORKERS":        "3",
		"GOLOC_FORMAT":         " JSON ",
		"GOLOC_OUTPUT":         "out/report.json",
		"GOLOC_EXCLUDE":        "vendor, testdata ,,*.pb.go",
		"GOLOC_LOG_LEVEL":      "debug",
		"GOLOC_NO_GITIGNORE":   "true",
		"GOLOC_INCLUDE_VENDOR": "1",
	}))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Workers)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, "out/report.json", cfg.Output)
	require.Equal(t, []string{"vendor", "testdata", "*.pb.go"}, cfg.Excludes)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.False(t, cfg.Gitignore)
	require.True(t, cfg.IncludeVendor)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	invalid := []map[string]string{
		{"GOLOC_WORKERS": "0"},
		{"GOLOC_WORKERS": "many"},
		{"GOLOC_LOG_LEVEL": "loud"},
		{"GOLOC_NO_GITIGNORE": "maybe"},
		{"GOLOC_INCLUDE_VENDOR": "sometimes"},
	}
	for _, values := range invalid {
		_, err := FromEnv(envOf(values))
		require.Error(t, err, "values %v", values)
	}
}
