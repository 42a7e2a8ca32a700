package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.GetDataDir())
	assert.Equal(t, "bikeshare.db", cfg.GetDatabase())
	assert.Equal(t, SourceCSV, cfg.GetSource())
	assert.Equal(t, 5, cfg.GetPageSize())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bikeshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /data\nsource: sqlite\npage_size: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.GetDataDir())
	assert.Equal(t, SourceSQLite, cfg.GetSource())
	assert.Equal(t, 10, cfg.GetPageSize())
	assert.Equal(t, "bikeshare.db", cfg.GetDatabase())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bikeshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bikeshare.yaml")
	in := (&Config{PageSize: 7}).Effective()

	require.NoError(t, Save(path, in))
	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 7, out.PageSize)
}

func TestValidate_UnknownSource(t *testing.T) {
	cfg := &Config{Source: "postgres"}
	assert.Error(t, cfg.Validate())
}
