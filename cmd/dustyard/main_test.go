package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/dustyard/internal/simulation"
)

func TestNewLoggerWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dustyard.log")
	logger := newLogger(path, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Error("Dustyard stopped", "error", "boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dustyard stopped")
	assert.Contains(t, string(data), "boom")
	assert.NotContains(t, string(data), "hidden")
}

func TestRunFailsOnBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dustyard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  damping: 0\n"), 0o644))

	err := run(newLogger(filepath.Join(t.TempDir(), "run.log"), slog.LevelInfo), path)

	assert.ErrorIs(t, err, simulation.ErrInvalidConfig)
}
