// Package pipeline orchestrates the extraction workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/flarespire359/kujata-sub000/internal/battleai"
	"github.com/flarespire359/kujata-sub000/internal/detector"
	"github.com/flarespire359/kujata-sub000/internal/fieldfile"
	"github.com/flarespire359/kujata-sub000/internal/kernel"
	"github.com/flarespire359/kujata-sub000/internal/loader"
	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/flarespire359/kujata-sub000/internal/script"
	"github.com/flarespire359/kujata-sub000/internal/text"
	"github.com/flarespire359/kujata-sub000/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Result summarizes the extraction of a single file.
type Result struct {
	Kind     options.Kind
	Failures int // number of routines that could not be fully decoded
}

// Pipeline orchestrates the complete extraction workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new extraction pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete extraction pipeline for the input file.
func (p *Pipeline) Execute(ctx context.Context, input string, opts options.Extract, w io.Writer) (*Result, error) {
	kind := p.detector.Detect(opts, input)

	data, err := p.loader.Load(input, kind)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}

	return p.ExecuteWithData(ctx, data, input, kind, opts, w)
}

// ExecuteWithData runs the extraction pipeline with already loaded file data.
// This is useful for testing and programmatic usage where the data is already in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, input string, kind options.Kind,
	opts options.Extract, w io.Writer) (*Result, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction canceled: %w", err)
	}

	p.logger.Debug("Extracting file",
		log.String("file", input),
		log.String("kind", string(kind)),
		log.Int("size", len(data)))

	var (
		output   any
		blocks   []writer.Block
		failures []*script.RoutineError
	)

	switch kind {
	case options.Field:
		parser := fieldfile.New(p.logger, fieldfile.Options{NoSplit: !opts.Split})
		result, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing field file: %w", err)
		}
		output, blocks, failures = result, fieldBlocks(result), result.Failures

	case options.Kernel:
		result, err := kernel.New(p.logger).Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing kernel archive: %w", err)
		}
		output, blocks = result, kernelBlocks(result)

	case options.Battle:
		result, err := battleai.New(p.logger).Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing battle AI block: %w", err)
		}
		output, blocks, failures = result, battleBlocks(result), result.Failures

	default:
		return nil, fmt.Errorf("unsupported file kind '%s'", kind)
	}

	p.logFailures(input, failures)

	wr := writer.New(w, writer.Options{
		Format:         opts.Format,
		Raw:            opts.Raw,
		HexComments:    opts.HexComments,
		OffsetComments: opts.OffsetComments,
	})
	if err := wr.Write(output, blocks); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	return &Result{
		Kind:     kind,
		Failures: len(failures),
	}, nil
}

func (p *Pipeline) logFailures(input string, failures []*script.RoutineError) {
	for _, failure := range failures {
		p.logger.Warn("Routine could not be fully decoded",
			log.String("file", input),
			log.String("entity", failure.Name),
			log.Int("routine", failure.Routine),
			log.Hex("offset", failure.Offset),
			log.Err(failure.Err))
	}
}

func fieldBlocks(result *fieldfile.Result) []writer.Block {
	var blocks []writer.Block
	for _, entity := range result.Entities {
		for _, s := range entity.Scripts {
			title := fmt.Sprintf("%s script %d", entity.Name, s.Index)
			if s.Main == nil {
				blocks = append(blocks, writer.Block{Title: title, Operations: s.Operations})
				continue
			}
			blocks = append(blocks,
				writer.Block{Title: title + " init", Operations: s.Operations},
				writer.Block{Title: title + " main", Operations: s.Main},
			)
		}
	}
	if len(result.Variables) > 0 {
		lines := make([]string, len(result.Variables))
		for i, v := range result.Variables {
			lines[i] = v.String()
		}
		blocks = append(blocks, writer.Block{Title: "variables", Lines: lines})
	}
	if len(result.Dialogs) > 0 {
		blocks = append(blocks, writer.Block{Title: "dialogs", Lines: stringLines(result.Dialogs)})
	}
	return blocks
}

func kernelBlocks(result *kernel.Result) []writer.Block {
	blocks := make([]writer.Block, 0, len(result.Texts))
	for _, table := range result.Texts {
		blocks = append(blocks, writer.Block{
			Title: fmt.Sprintf("%s (section %d)", table.Name, table.Index),
			Lines: stringLines(table.Strings),
		})
	}
	return blocks
}

func battleBlocks(result *battleai.Result) []writer.Block {
	blocks := make([]writer.Block, 0, len(result.Scripts))
	for _, s := range result.Scripts {
		blocks = append(blocks, writer.Block{Title: s.Name, Operations: s.Operations})
	}
	return blocks
}

func stringLines(strings []text.DecodedString) []string {
	lines := make([]string, len(strings))
	for i, s := range strings {
		lines[i] = fmt.Sprintf("%d: \"%s\"", i, s)
	}
	return lines
}
