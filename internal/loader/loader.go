// Package loader handles game file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/flarespire359/kujata-sub000/internal/lzs"
	"github.com/flarespire359/kujata-sub000/internal/options"
)

// ErrEmptyFile is returned for input files without content.
var ErrEmptyFile = errors.New("file is empty")

// Loader handles loading game files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the file into memory. LZS compressed field files are
// decompressed.
func (l *Loader) Load(path string, kind options.Kind) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("loading %s: %w", path, ErrEmptyFile)
	}

	if kind == options.Field && lzs.IsCompressed(data) {
		data, err = lzs.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}
	return data, nil
}
