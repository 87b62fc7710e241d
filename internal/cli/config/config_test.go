package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "akore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Strict)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, "strict: true\noutput: plain\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "plain", cfg.Output)
	assert.Equal(t, DefaultStateFile, cfg.StatePath, "unset keys keep their defaults")
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output: plain\n")
	t.Setenv("AKORE_OUTPUT", "color")
	t.Setenv("AKORE_STRICT", "true")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "color", cfg.Output)
	assert.True(t, cfg.Strict)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("AKORE_OUTPUT", "color")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", DefaultOutput, "")
	flags.String("state", DefaultStateFile, "")
	flags.Bool("strict", false, "")
	require.NoError(t, flags.Set("output", "plain"))
	require.NoError(t, flags.Set("state", "custom/state.db"))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "plain", cfg.Output)
	assert.Equal(t, "custom/state.db", cfg.StatePath, "the state flag maps to state_path")
	assert.False(t, cfg.Strict, "unchanged flags are not loaded")
}
