package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kujata.yaml")
	content := "input: field/md1stin\nformat: yaml\nkind: field\nworkers: 3\nnosplit: true\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	file, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "field/md1stin", file.Input)
	assert.Equal(t, 3, file.Workers)

	var opts options.Program
	opts.Format = "json"
	file.Apply(&opts, map[string]bool{"format": true})

	assert.Equal(t, "field/md1stin", opts.Input)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, "field", opts.Kind)
	assert.Equal(t, 3, opts.Workers)
	assert.True(t, opts.NoSplit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
