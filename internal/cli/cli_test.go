package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_ExtractOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Extract
	}{
		{
			name: "default flags",
			args: []string{"prog", "md1stin"},
			want: options.Extract{Format: "json", Split: true, Raw: true, HexComments: true, OffsetComments: true},
		},
		{
			name: "nosplit flag",
			args: []string{"prog", "-nosplit", "md1stin"},
			want: options.Extract{Format: "json", Raw: true, HexComments: true, OffsetComments: true},
		},
		{
			name: "text listing flags",
			args: []string{"prog", "-format", "TEXT", "-nohexcomments", "-nooffsets", "md1stin"},
			want: options.Extract{Format: "text", Split: true, Raw: true},
		},
		{
			name: "kind and noraw flags",
			args: []string{"prog", "-t", "battle", "-noraw", "scene.ai"},
			want: options.Extract{Kind: options.Battle, Format: "json", Split: true, HexComments: true, OffsetComments: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args)

			_, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		setArgs(t, []string{"prog"})
		_, _, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("argument after file", func(t *testing.T) {
		setArgs(t, []string{"prog", "md1stin", "-q"})
		_, _, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("unsupported format", func(t *testing.T) {
		setArgs(t, []string{"prog", "-format", "xml", "md1stin"})
		_, _, err := ParseFlags()
		assert.ErrorContains(t, err, "unsupported output format")
	})

	t.Run("unsupported kind", func(t *testing.T) {
		setArgs(t, []string{"prog", "-t", "world", "md1stin"})
		_, _, err := ParseFlags()
		assert.ErrorContains(t, err, "unsupported file kind")
	})
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kujata.yaml")
	content := "input: md1stin\nformat: yaml\nworkers: 2\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	setArgs(t, []string{"prog", "-c", path, "-format", "text"})
	opts, extract, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "md1stin", opts.Input)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, "text", extract.Format)
}

func TestParseFlags_ConfigFilePositionalInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kujata.yaml")
	content := "input: md1stin\nformat: yaml\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	setArgs(t, []string{"prog", "-c", path, "ancnt1"})
	opts, extract, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "ancnt1", opts.Input)
	assert.Equal(t, "yaml", extract.Format)
}

func setArgs(t *testing.T, args []string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}
