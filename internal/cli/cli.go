// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/flarespire359/kujata-sub000/internal/config"
	"github.com/flarespire359/kujata-sub000/internal/options"
)

// ParseFlags parses command line flags and returns program and extraction options
func ParseFlags() (options.Program, options.Extract, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		return opts, options.Extract{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Extract{}, err
	}
	if len(args) > 0 && opts.Batch == "" {
		opts.Input = args[0]
	}

	if opts.Config != "" {
		file, err := config.Load(opts.Config)
		if err != nil {
			return opts, options.Extract{}, err
		}
		explicit := explicitFlags(flags)
		if len(args) > 0 {
			explicit["i"] = true // positional input file
		}
		file.Apply(&opts, explicit)
	}

	if opts.Input == "" && opts.Batch == "" {
		return opts, options.Extract{}, &UsageError{flags: flags}
	}

	kind, err := normalizeOptions(&opts)
	if err != nil {
		return opts, options.Extract{}, err
	}

	return opts, createExtractOptions(opts, kind), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: kujata [options] <file to extract>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to extract, please pass the file to extract as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) (options.Kind, error) {
	kind, err := options.KindFromString(opts.Kind)
	if err != nil {
		return "", err
	}

	opts.Format = strings.ToLower(opts.Format)
	validFormats := []string{options.FormatJSON, options.FormatYAML, options.FormatText}
	for _, valid := range validFormats {
		if opts.Format == valid {
			return kind, nil
		}
	}

	return "", fmt.Errorf("unsupported output format: %s. Valid options: %s",
		opts.Format, strings.Join(validFormats, ", "))
}

// createExtractOptions creates extraction options based on program options
func createExtractOptions(opts options.Program, kind options.Kind) options.Extract {
	extractOptions := options.NewExtract(kind, opts.Format)

	// Apply inverse logic of the output flags
	extractOptions.Split = !opts.NoSplit
	extractOptions.Raw = !opts.NoRaw
	extractOptions.HexComments = !opts.NoHexComments
	extractOptions.OffsetComments = !opts.NoOffsets
	return extractOptions
}

// explicitFlags returns the names of all flags set on the command line.
func explicitFlags(flags *flag.FlagSet) map[string]bool {
	explicit := map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	return explicit
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Config, "c", "", "YAML config file to read default options from")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example field/*")
	flags.StringVar(&opts.Kind, "t", "", "kind of the input file (field, kernel, battle) - if not auto-detected from the file name")
	flags.StringVar(&opts.Format, "format", options.FormatJSON, "output format (json/yaml/text)")
	flags.IntVar(&opts.Workers, "j", 0, "number of files to process in parallel in batch mode, defaults to the number of CPUs")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoSplit, "nosplit", false, "do not split the first routine of an entity into init and main scripts")
	flags.BoolVar(&opts.NoRaw, "noraw", false, "do not output the raw bytes of instructions")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments of text listings")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in comments of text listings")
}
