package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	return cmd
}

func TestResolveConfigPathFlagWins(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/from-env.yaml")
	cmd := newCmd(t)
	require.NoError(t, cmd.Flags().Set("config", "/etc/from-flag.yaml"))

	path, err := resolveConfigPath(cmd)
	require.NoError(t, err)
	assert.Equal(t, "/etc/from-flag.yaml", path)
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/from-env.yaml")

	path, err := resolveConfigPath(newCmd(t))
	require.NoError(t, err)
	assert.Equal(t, "/etc/from-env.yaml", path)
}

func TestResolveConfigPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = resolveConfigPath(newCmd(t))
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
}
