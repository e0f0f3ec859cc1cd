// Package detector handles file kind detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles file kind detection from file names and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new file kind detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the file kind from options or file auto-detection.
// It first checks if a kind is explicitly specified in options, otherwise
// attempts to detect the kind from the input file name.
func (d *Detector) Detect(opts options.Extract, input string) options.Kind {
	kind := opts.Kind
	if kind == "" {
		kind = d.detectFromFile(input)
		d.logger.Debug("Auto-detected file kind",
			log.String("kind", string(kind)),
			log.String("file", input))
	}
	return kind
}

// detectFromFile determines the file kind based on the file name.
func (d *Detector) detectFromFile(filename string) options.Kind {
	base := strings.ToLower(filepath.Base(filename))
	ext := filepath.Ext(base)
	switch {
	case strings.HasPrefix(base, "kernel"):
		return options.Kernel
	case ext == ".ai", strings.HasPrefix(base, "scene"):
		return options.Battle
	default:
		// field files carry no extension
		return options.Field
	}
}
