package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/statespace/env"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv(env.MaxStatesKey, "")
	require.NoError(t, os.Unsetenv(env.MaxStatesKey))
	t.Setenv(env.DBKey, "")
	t.Setenv(env.LogLevelKey, "")
	e := env.LoadEnv(nil, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, env.Default(), e)
}

func TestLoadEnv_File(t *testing.T) {
	t.Setenv(env.MaxStatesKey, "")
	require.NoError(t, os.Unsetenv(env.MaxStatesKey))
	t.Setenv(env.DBKey, "")
	require.NoError(t, os.Unsetenv(env.DBKey))
	t.Setenv(env.LogLevelKey, "debug")

	f := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(f, []byte("STATESPACE_MAX_STATES=42\nSTATESPACE_DB=runs.db\nSTATESPACE_LOG_LEVEL=error\n"), 0o600))
	e := env.LoadEnv(nil, f)
	assert.Equal(t, 42, e.MaxStates)
	assert.Equal(t, "runs.db", e.DB)
	assert.Equal(t, "debug", e.LogLevel)
}

func TestLoadEnv_BadBudget(t *testing.T) {
	t.Setenv(env.MaxStatesKey, "lots")
	e := env.LoadEnv(nil, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, env.Default().MaxStates, e.MaxStates)
}
