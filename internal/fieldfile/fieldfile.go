// Package fieldfile parses the script section of a field file and decodes
// the scripts and dialogs of all its entities.
package fieldfile

import (
	"encoding/binary"
	"fmt"

	"github.com/flarespire359/kujata-sub000/internal/arch/field"
	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/script"
	"github.com/flarespire359/kujata-sub000/internal/text"
	"github.com/flarespire359/kujata-sub000/internal/vars"
	"github.com/go-restruct/restruct"
	"github.com/retroenv/retrogolib/log"
)

const (
	// RoutinesPerEntity is the number of routine slots of every entity.
	RoutinesPerEntity = 32

	headerSize     = 32
	fileHeaderSize = 42
	fieldSections  = 9
	nameSize       = 8
)

// Header is the fixed size start of the script section.
type Header struct {
	Version           uint16
	NumEntities       uint8
	NumModels         uint8
	StringTableOffset uint16
	NumAkaoOffsets    uint16
	Scale             uint16
	Blank             [6]byte
	Creator           [8]byte
	Name              [8]byte
}

// FileHeader is the section table of a decompressed field file.
type FileHeader struct {
	Blank       uint16
	NumSections uint32
	Sections    [fieldSections]uint32
}

// Options controls the script decoding.
type Options struct {
	// NoSplit disables splitting routine 0 into its init and main parts.
	NoSplit bool
}

// Result is the decoded content of a script section.
type Result struct {
	Name        string               `json:"name" yaml:"name"`
	Creator     string               `json:"creator" yaml:"creator"`
	Scale       uint16               `json:"scale" yaml:"scale"`
	NumModels   uint8                `json:"numModels" yaml:"numModels"`
	Entities    []script.Entity      `json:"entities" yaml:"entities"`
	Dialogs     []text.DecodedString `json:"dialogs" yaml:"dialogs"`
	AkaoOffsets []uint32             `json:"akaoOffsets,omitempty" yaml:"akaoOffsets,omitempty"`
	// Variables lists the bank variables that the scripts access.
	Variables []vars.Variable `json:"variables,omitempty" yaml:"variables,omitempty"`

	// Failures lists the routines that could not be fully decoded.
	Failures []*script.RoutineError `json:"-" yaml:"-"`
}

// Parser parses field script sections.
type Parser struct {
	logger *log.Logger
	opts   Options
}

// New returns a new field script section parser.
func New(logger *log.Logger, opts Options) *Parser {
	return &Parser{
		logger: logger,
		opts:   opts,
	}
}

// Parse parses the script section in data. Routine decode failures are
// contained and listed in the result, only a malformed section structure
// returns an error.
// A complete field file is accepted as well, its script section is used.
func (p *Parser) Parse(data []byte) (*Result, error) {
	if section, ok := ScriptSection(data); ok {
		p.logger.Debug("Using script section of field file", log.Int("size", len(section)))
		data = section
	}

	c := cursor.New(data)
	header, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Name:      fixedString(header.Name[:]),
		Creator:   fixedString(header.Creator[:]),
		Scale:     header.Scale,
		NumModels: header.NumModels,
	}

	names := make([]string, header.NumEntities)
	for i := range names {
		names[i], err = c.ReadFixedString(nameSize, true, true)
		if err != nil {
			return nil, fmt.Errorf("reading name of entity %d: %w", i, err)
		}
	}

	result.AkaoOffsets = make([]uint32, header.NumAkaoOffsets)
	for i := range result.AkaoOffsets {
		result.AkaoOffsets[i], err = c.ReadUInt32LE()
		if err != nil {
			return nil, fmt.Errorf("reading akao offset %d: %w", i, err)
		}
	}

	layout, err := readLayout(c, names)
	if err != nil {
		return nil, err
	}
	layout.End = scriptsEnd(header, result.AkaoOffsets)

	result.Dialogs, err = readDialogs(c, int(header.StringTableOffset))
	if err != nil {
		return nil, err
	}
	for i, dialog := range result.Dialogs {
		if err := dialog.Err(); err != nil {
			p.logger.Debug("Dialog contains a malformed sequence", log.Int("dialog", i), log.Err(err))
		}
	}

	decoder := script.New(field.New(result.Dialogs), script.Options{Split: !p.opts.NoSplit})
	result.Entities, result.Failures = decoder.DecodeEntities(data, layout)
	result.Variables = collectVariables(result.Entities)

	p.logger.Debug("Parsed field script section",
		log.String("name", result.Name),
		log.Int("entities", len(result.Entities)),
		log.Int("dialogs", len(result.Dialogs)),
		log.Int("variables", len(result.Variables)),
		log.Int("failures", len(result.Failures)))
	return result, nil
}

// ScriptSection returns the script section of a decompressed field file.
// It returns false if data does not start with a field file section table.
func ScriptSection(data []byte) ([]byte, bool) {
	if len(data) < fileHeaderSize {
		return nil, false
	}
	var header FileHeader
	if err := restruct.Unpack(data[:fileHeaderSize], binary.LittleEndian, &header); err != nil {
		return nil, false
	}
	if header.Blank != 0 || header.NumSections != fieldSections {
		return nil, false
	}

	c := cursor.New(data)
	if err := c.SetPosition(int(header.Sections[0])); err != nil {
		return nil, false
	}
	size, err := c.ReadUInt32LE()
	if err != nil {
		return nil, false
	}
	section, err := c.ReadBytes(int(size))
	if err != nil {
		return nil, false
	}
	return section, true
}

func readHeader(c *cursor.Cursor) (Header, error) {
	var header Header
	b, err := c.ReadBytes(headerSize)
	if err != nil {
		return header, fmt.Errorf("reading header: %w", err)
	}
	if err := restruct.Unpack(b, binary.LittleEndian, &header); err != nil {
		return header, fmt.Errorf("unpacking header: %w", err)
	}
	return header, nil
}

func readLayout(c *cursor.Cursor, names []string) (script.Layout, error) {
	layout := script.Layout{
		Entities: make([]script.EntityLayout, len(names)),
	}

	for i, name := range names {
		slots := make([]int, RoutinesPerEntity)
		for j := range slots {
			offset, err := c.ReadUInt16LE()
			if err != nil {
				return layout, fmt.Errorf("reading routine %d offset of entity %d: %w", j, i, err)
			}
			slots[j] = int(offset)
		}
		layout.Entities[i] = script.EntityLayout{Name: name, Slots: slots}
	}
	return layout, nil
}

// scriptsEnd returns the end offset of the script bytes of the last
// entity. The akao block follows the scripts if it precedes the string table.
func scriptsEnd(header Header, akaoOffsets []uint32) int {
	end := int(header.StringTableOffset)
	if len(akaoOffsets) > 0 && int(akaoOffsets[0]) < end {
		return int(akaoOffsets[0])
	}
	return end
}

func readDialogs(c *cursor.Cursor, tableOffset int) ([]text.DecodedString, error) {
	if err := c.SetPosition(tableOffset); err != nil {
		return nil, fmt.Errorf("seeking to string table: %w", err)
	}
	count, err := c.ReadUInt16LE()
	if err != nil {
		return nil, fmt.Errorf("reading string count: %w", err)
	}

	offsets := make([]int, count)
	for i := range offsets {
		offset, err := c.ReadUInt16LE()
		if err != nil {
			return nil, fmt.Errorf("reading string %d offset: %w", i, err)
		}
		offsets[i] = tableOffset + int(offset)
	}

	dialogs := make([]text.DecodedString, count)
	for i, start := range offsets {
		end := c.Len()
		if i+1 < len(offsets) && offsets[i+1] > start {
			end = offsets[i+1]
		}
		if err := c.SetPosition(start); err != nil {
			return nil, fmt.Errorf("seeking to string %d: %w", i, err)
		}
		dialogs[i], err = text.ReadDialogString(c, end-start)
		if err != nil {
			return nil, fmt.Errorf("reading string %d: %w", i, err)
		}
	}
	return dialogs, nil
}

func collectVariables(entities []script.Entity) []vars.Variable {
	v := vars.New()
	for _, entity := range entities {
		for _, s := range entity.Scripts {
			v.AddOperations(entity.Name, s.Index, s.Operations)
			v.AddOperations(entity.Name, s.Index, s.Main)
		}
	}
	return v.Variables()
}

func fixedString(b []byte) string {
	s, _ := cursor.New(b).ReadFixedString(len(b), true, true)
	return s
}
