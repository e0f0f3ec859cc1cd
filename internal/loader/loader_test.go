package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load raw file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x01, 0x02, 0x03, 0x04})

		data, err := New().Load(tmpFile, options.Kernel)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data)
	})

	t.Run("decompress field file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x04, 0x00, 0x00, 0x00, 0x07, 'a', 'b', 'c'})

		data, err := New().Load(tmpFile, options.Field)
		assert.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("compressed looking file of other kind", func(t *testing.T) {
		raw := []byte{0x04, 0x00, 0x00, 0x00, 0x07, 'a', 'b', 'c'}
		tmpFile := createTempFile(t, raw)

		data, err := New().Load(tmpFile, options.Battle)
		assert.NoError(t, err)
		assert.Equal(t, raw, data)
	})

	t.Run("empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(tmpFile, options.Field)
		assert.True(t, errors.Is(err, ErrEmptyFile))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing"), options.Field)
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
