package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "book_data.csv", cfg.Paths.DataFile)
	assert.Equal(t, 100, cfg.Limits.MaxKeywordLength)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BOOKDASH_SERVER_PORT", "9090")
	t.Setenv("BOOKDASH_PATHS_DATA_FILE", "catalog.csv")
	t.Setenv("BOOKDASH_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "catalog.csv", cfg.Paths.DataFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := "server:\n  port: 3000\nlimits:\n  max_keyword_length: 50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Limits.MaxKeywordLength)
	assert.Equal(t, "info", cfg.Logging.Level, "untouched fields keep defaults")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BOOKDASH_LOGGING_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

// chdirTemp moves the test into an empty directory so a developer's local
// config.yaml cannot leak into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}
