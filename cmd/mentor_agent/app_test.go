package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// withFlags sets the package-level CLI flags for a test and restores them.
func withFlags(t *testing.T, cfgPath, apiKey, dataDir, dbURL string) {
	t.Helper()
	prevConfig, prevAPIKey := flagConfig, flagAPIKey
	prevDataDir, prevDBURL := flagDataDir, flagDBURL
	flagConfig, flagAPIKey, flagDataDir, flagDBURL = cfgPath, apiKey, dataDir, dbURL
	t.Cleanup(func() {
		flagConfig, flagAPIKey = prevConfig, prevAPIKey
		flagDataDir, flagDBURL = prevDataDir, prevDBURL
	})
}

func TestResolveConfig_ConflictingBackendFlags(t *testing.T) {
	withFlags(t, "", "", "/tmp/mentor-data", "postgres://localhost/mentor")

	_, err := resolveConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestResolveConfig_ConflictingFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"data_dir": "/tmp/x", "database_url": "postgres://localhost/mentor"}`,
	), 0o644))
	withFlags(t, path, "", "", "")

	_, err := resolveConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestResolveConfig_DataDirFlagPinsFileBackend(t *testing.T) {
	withFlags(t, "", "", "/tmp/mentor-data", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/mentor")
	t.Setenv("MENTOR_DATA_DIR", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := resolveConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mentor-data", cfg.DataDir)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestResolveConfig_DefaultsToHomeDataDir(t *testing.T) {
	withFlags(t, "", "", "", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MENTOR_DATA_DIR", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := resolveConfig()
	require.NoError(t, err)
	assert.Contains(t, cfg.DataDir, ".career-mentor")
}

func TestReportDegraded(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := &app{log: zap.New(core)}

	a.reportDegraded("scan", errors.New("backend down"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "generation degraded", entry.Message)
	assert.Equal(t, "scan", entry.ContextMap()["op"])

	a.reportDegraded("scan", nil)
	assert.Equal(t, 1, logs.Len())
}
