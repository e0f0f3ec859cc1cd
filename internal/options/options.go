// Package options contains the program options.
package options

import (
	"fmt"
	"strings"
)

// Kind is the kind of game file to extract.
type Kind string

// Supported file kinds.
const (
	Field  Kind = "field"
	Kernel Kind = "kernel"
	Battle Kind = "battle"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// KindFromString parses a file kind, an empty string returns an empty kind.
func KindFromString(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(s)); kind {
	case "", Field, Kernel, Battle:
		return kind, nil
	default:
		return "", fmt.Errorf("unsupported file kind '%s'", s)
	}
}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Config string `flag:"c" usage:"YAML config file"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. field/*)"`
}

// Flags contains behavior options.
type Flags struct {
	Kind    string `flag:"t" usage:"file kind: field, kernel, battle (default: auto-detect)"`
	Format  string `flag:"format" usage:"output format: json, yaml, text" default:"json"`
	Workers int    `flag:"j" usage:"number of files to process in parallel"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoSplit       bool `flag:"nosplit" usage:"do not split routine 0 into init and main scripts"`
	NoRaw         bool `flag:"noraw" usage:"omit raw instruction bytes"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex instruction bytes in text listings"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit file offsets in text listings"`
}

// Program options of the extractor.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Extract defines options to control the extraction of a single file.
type Extract struct {
	Kind   Kind   // file kind, detected from the file name if empty
	Format string // output format

	Split          bool // split routine 0 into init and main
	Raw            bool // output raw instruction bytes
	HexComments    bool
	OffsetComments bool
}

// NewExtract returns a new options instance with default options.
func NewExtract(kind Kind, format string) Extract {
	return Extract{
		Kind:   kind,
		Format: strings.ToLower(format),

		Split:          true,
		Raw:            true,
		HexComments:    true,
		OffsetComments: true,
	}
}
