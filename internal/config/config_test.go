package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("USER", "alice")
	t.Setenv("PEERCHAT_DATA_DIR", t.TempDir())

	cfg, err := Load(emptyEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "alice", cfg.Identity)
	require.Equal(t, 5000, cfg.MessagePort)
	require.Equal(t, 6000, cfg.FilePort)
	require.Equal(t, int64(15*1024*1024), cfg.MaxFileSize)
	require.Equal(t, 3*time.Second, cfg.PollInterval)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "0.0.0.0:5000", cfg.MessageAddr())
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PEERCHAT_IDENTITY", "bob")
	t.Setenv("PEERCHAT_DATA_DIR", dir)
	t.Setenv("PEERCHAT_MESSAGE_PORT", "7000")
	t.Setenv("PEERCHAT_FILE_PORT", "7001")
	t.Setenv("PEERCHAT_POLL_INTERVAL", "500ms")
	t.Setenv("PEERCHAT_IO_TIMEOUT", "2")

	cfg, err := Load(emptyEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "bob", cfg.Identity)
	require.Equal(t, 7000, cfg.MessagePort)
	require.Equal(t, 7001, cfg.FilePort)
	require.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	require.Equal(t, 2*time.Second, cfg.IOTimeout)
	require.Equal(t, filepath.Join(dir, "conversations"), cfg.ConversationDir())
	require.Equal(t, filepath.Join(dir, "downloads"), cfg.DownloadDir())
	require.Equal(t, filepath.Join(dir, "directory.db"), cfg.DirectoryPath())
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PEERCHAT_LOG_LEVEL=debug\nPEERCHAT_FILE_PORT=6100\n"), 0o600))

	t.Setenv("PEERCHAT_FILE_PORT", "6200")
	t.Setenv("PEERCHAT_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("PEERCHAT_LOG_LEVEL"))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 6200, cfg.FilePort, "environment must win over the env file")
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("PEERCHAT_MESSAGE_PORT", "five thousand")
	_, err := Load(emptyEnvFile(t))
	require.ErrorContains(t, err, "PEERCHAT_MESSAGE_PORT")
}

func TestLoadMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMalformedFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PEERCHAT_LOG_LEVEL=\"unterminated\n"), 0o600))

	_, err := Load(envFile)
	require.ErrorContains(t, err, "loading env file")
}

func TestLoadWithoutImplicitEnvFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PEERCHAT_IDENTITY", "carol")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "carol", cfg.Identity)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Identity:     "alice",
		MessagePort:  5000,
		FilePort:     6000,
		MaxFileSize:  1,
		PollInterval: time.Second,
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"no identity":  func(c *Config) { c.Identity = "" },
		"same ports":   func(c *Config) { c.FilePort = c.MessagePort },
		"bad port":     func(c *Config) { c.FilePort = 70000 },
		"no file size": func(c *Config) { c.MaxFileSize = 0 },
		"no interval":  func(c *Config) { c.PollInterval = 0 },
	}
	for name, mutate := range cases {
		c := valid
		mutate(&c)
		require.Error(t, c.Validate(), name)
	}
}
