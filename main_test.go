package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("Debug level enables debug records", func(t *testing.T) {
		logger := newLogger("debug")

		assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logger := newLogger("chatty")

		assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
		assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	})
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("Absolute paths are kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")

		assert.Equal(t, path, resolveConfigPath(path))
	})

	t.Run("Relative paths resolve against the working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(wd, "config.yml"), resolveConfigPath("config.yml"))
	})
}
