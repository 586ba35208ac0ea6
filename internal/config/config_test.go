package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: debug\nprompt_suffix: \"> \"\nstrict_paths: true\ncolor: false\n")

	cfg, err := Load(LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "> ", cfg.PromptSuffix)
	require.True(t, cfg.StrictPaths)
	require.False(t, cfg.Color)
	require.False(t, cfg.NormalizeCursor)
	require.Equal(t, InteractiveAuto, cfg.Interactive)
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "normalize_cursor: true\nenv_file: vars.env\n")

	cfg, err := Load(LoadOptions{ConfigFilePath: path})
	require.NoError(t, err)
	require.True(t, cfg.NormalizeCursor)
	require.Equal(t, "vars.env", cfg.EnvFile)

	_, err = Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: [unclosed\n")

	_, err := Load(LoadOptions{ConfigDirPath: dir})
	require.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: info\ninteractive: never\n")
	t.Setenv("VFSH_LOG_LEVEL", "trace")

	cfg, err := Load(LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	require.Equal(t, "trace", cfg.LogLevel)
	require.Equal(t, InteractiveNever, cfg.Interactive)
}

func TestFlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: info\nstrict_paths: false\n")
	t.Setenv("VFSH_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "warn", "")
	flags.Bool("strict-paths", false, "")
	flags.Bool("unrelated", false, "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug", "--strict-paths"}))

	cfg, err := Load(LoadOptions{ConfigDirPath: dir, Flags: flags})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.StrictPaths)
}

func TestUnchangedFlagsKeepLowerSources(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "prompt_suffix: \"% \"\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("prompt-suffix", "$ ", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(LoadOptions{ConfigDirPath: dir, Flags: flags})
	require.NoError(t, err)
	require.Equal(t, "% ", cfg.PromptSuffix)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interactive = "sometimes"
	require.Error(t, cfg.Validate())

	dir := t.TempDir()
	writeConfig(t, dir, "interactive: sometimes\n")
	_, err := Load(LoadOptions{ConfigDirPath: dir})
	require.Error(t, err)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")
	dir, err := ConfigDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/tmp/test-xdg-config", AppName), dir)
}
