package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "kitty.db")
	cfgPath := filepath.Join(dir, "kitty.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  path: "+dbPath+"\n"), 0o600))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"migrate", "--config", cfgPath})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestServeCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "kitty.db"))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"serve"})
	cmd.SetErr(io.Discard)
	assert.ErrorContains(t, cmd.Execute(), "jwt_secret")
}
