package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarespire359/kujata-sub000/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// battleBlock returns an AI block with a single init script "PSHB 1, END".
func battleBlock() []byte {
	data := make([]byte, 32)
	for i := range data {
		data[i] = 0xFF
	}
	data[0], data[1] = 0x20, 0x00
	return append(data, 0x60, 0x01, 0x73)
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		format   string
		expected string
	}{
		{input: "field/md1stin", format: options.FormatJSON, expected: "field/md1stin.json"},
		{input: "battle/scene.ai", format: options.FormatYAML, expected: "battle/scene.yaml"},
		{input: "kernel.bin", format: options.FormatText, expected: "kernel.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateOutputFilename(tt.input, tt.format))
		})
	}
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ai", "b.ai", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	opts := options.Program{}
	opts.Batch = filepath.Join(dir, "*.ai")
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = options.Program{}
	opts.Input = "md1stin"
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"md1stin"}, files)
}

func TestProcessFiles_Batch(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "first.ai"), battleBlock(), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "second.ai"), battleBlock(), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ai"), []byte{0x01}, 0o600))

	opts := options.Program{}
	opts.Batch = filepath.Join(dir, "*.ai")
	opts.Workers = 2
	opts.Quiet = true

	summary, err := ProcessFiles(context.Background(), log.NewTestLogger(t), opts,
		options.NewExtract("", options.FormatJSON))
	assert.NoError(t, err)
	assert.Equal(t, Summary{Files: 3, Failed: 1}, summary)

	output, err := os.ReadFile(filepath.Join(dir, "first.json"))
	assert.NoError(t, err)
	assert.Contains(t, string(output), `"mnemonic": "PSHB"`)

	_, err = os.Stat(filepath.Join(dir, "broken.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProcessFile_Output(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scene.ai")
	output := filepath.Join(dir, "scene.txt")
	assert.NoError(t, os.WriteFile(input, battleBlock(), 0o600))

	opts := options.NewExtract("", options.FormatText)
	opts.OffsetComments = false
	opts.HexComments = false

	result, err := ProcessFile(context.Background(), log.NewTestLogger(t), input, output, opts)
	assert.NoError(t, err)
	assert.Equal(t, options.Battle, result.Kind)

	content, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "init:\n  PSHB value=1\n  END\n", string(content))
}

func TestProcessFiles_NoMatches(t *testing.T) {
	opts := options.Program{}
	opts.Batch = filepath.Join(t.TempDir(), "*.ai")
	opts.Quiet = true

	_, err := ProcessFiles(context.Background(), log.NewTestLogger(t), opts,
		options.NewExtract("", options.FormatJSON))
	assert.ErrorContains(t, err, "no files found")
}

func TestProcessFile_RemovesOutputOnError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scene.ai")
	output := filepath.Join(dir, "scene.json")
	assert.NoError(t, os.WriteFile(input, []byte{0x01, 0x02}, 0o600))

	_, err := ProcessFile(context.Background(), log.NewTestLogger(t), input, output,
		options.NewExtract("", options.FormatJSON))
	assert.Error(t, err)

	_, err = os.Stat(output)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
