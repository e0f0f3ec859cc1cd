// Package writer implements the output formats of extracted files.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/flarespire359/kujata-sub000/internal/instruction"
	"github.com/flarespire359/kujata-sub000/internal/options"
	"gopkg.in/yaml.v3"
)

const (
	jsonIndent = "  "
	yamlIndent = 2
)

// Block is a titled part of a text listing, either a list of operations or
// plain lines.
type Block struct {
	Title      string
	Operations []instruction.Operation
	Lines      []string
}

// Options of the writer.
type Options struct {
	Format         string
	Raw            bool
	HexComments    bool
	OffsetComments bool
}

// Writer writes an extraction result in the configured format.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write outputs the result. The blocks are used for text listings, json and
// yaml serialize the result value itself. If raw bytes are disabled, they
// get removed from the operations of the blocks, which share their memory
// with the result.
func (w Writer) Write(result any, blocks []Block) error {
	if !w.options.Raw {
		StripRaw(blocks)
	}

	switch w.options.Format {
	case options.FormatJSON:
		encoder := json.NewEncoder(w.writer)
		encoder.SetIndent("", jsonIndent)
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

	case options.FormatYAML:
		encoder := yaml.NewEncoder(w.writer)
		encoder.SetIndent(yamlIndent)
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("closing yaml encoder: %w", err)
		}

	case options.FormatText:
		return w.writeListing(blocks)

	default:
		return fmt.Errorf("unsupported output format '%s'", w.options.Format)
	}
	return nil
}

// StripRaw removes the raw instruction bytes of all block operations.
func StripRaw(blocks []Block) {
	for _, block := range blocks {
		for i := range block.Operations {
			block.Operations[i].Raw = nil
		}
	}
}

func (w Writer) writeListing(blocks []Block) error {
	for i, block := range blocks {
		if i > 0 {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w.writer, "%s:\n", block.Title); err != nil {
			return fmt.Errorf("writing block title: %w", err)
		}

		for _, line := range block.Lines {
			if _, err := fmt.Fprintf(w.writer, "  %s\n", line); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		for _, op := range block.Operations {
			if err := w.writeCodeLine(op); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w Writer) writeCodeLine(op instruction.Operation) error {
	code := op.String()
	if op.IsError() {
		code = fmt.Sprintf("%s %s", code, op.Err)
	}

	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", op.Offset))
	}
	if w.options.HexComments && len(op.Raw) > 0 {
		comments = append(comments, HexCodeComment(op.Raw))
	}
	comment := strings.Join(comments, "  ")

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "  %s\n", code)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, comment)
	}
	if err != nil {
		return fmt.Errorf("writing code line: %w", err)
	}
	return nil
}

// HexCodeComment returns the bytes as space separated hex values.
func HexCodeComment(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
