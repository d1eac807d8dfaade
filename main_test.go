package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("Registers serve and train", func(t *testing.T) {
		rootCmd := newRootCmd()

		names := make([]string, 0, 2)
		for _, cmd := range rootCmd.Commands() {
			names = append(names, cmd.Name())
		}

		assert.ElementsMatch(t, []string{"serve", "train"}, names)
	})

	t.Run("Train rejects a non-positive number of games", func(t *testing.T) {
		// Given: a valid config file
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: error\n"), 0o600))

		rootCmd := newRootCmd()
		rootCmd.SetArgs([]string{"train", "--config", path, "--games", "0"})

		// When: training is started with zero games
		err := rootCmd.Execute()

		// Then: it fails before playing
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Train plays a few games in memory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: error\ngame:\n  regime: training\n  seed: 7\n"), 0o600))

		rootCmd := newRootCmd()
		rootCmd.SetArgs([]string{"train", "-c", path, "-g", "20"})

		require.NoError(t, rootCmd.Execute())
	})
}
