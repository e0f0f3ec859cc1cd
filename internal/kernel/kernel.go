// Package kernel reads the gzip compressed section archive of the game
// kernel and decodes its text tables.
package kernel

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/flarespire359/kujata-sub000/internal/cursor"
	"github.com/flarespire359/kujata-sub000/internal/text"
	"github.com/go-restruct/restruct"
	"github.com/retroenv/retrogolib/log"
)

const (
	sectionHeaderSize = 6

	firstTextSection = 9
	lastTextSection  = 26
)

// textSectionNames names the text table sections by section index.
var textSectionNames = map[int]string{
	9:  "commandDescriptions",
	10: "magicDescriptions",
	11: "itemDescriptions",
	12: "weaponDescriptions",
	13: "armorDescriptions",
	14: "accessoryDescriptions",
	15: "materiaDescriptions",
	16: "keyItemDescriptions",
	17: "commandNames",
	18: "magicNames",
	19: "itemNames",
	20: "weaponNames",
	21: "armorNames",
	22: "accessoryNames",
	23: "materiaNames",
	24: "keyItemNames",
	25: "battleText",
	26: "summonAttackNames",
}

// SectionHeader precedes the compressed data of every section.
type SectionHeader struct {
	CompressedSize   uint16
	UncompressedSize uint16
	FileType         uint16
}

// Section is a decompressed archive section.
type Section struct {
	Index    int    `json:"index" yaml:"index"`
	FileType uint16 `json:"fileType" yaml:"fileType"`
	Size     int    `json:"size" yaml:"size"`
	Data     []byte `json:"-" yaml:"-"`
}

// TextTable is a decoded text section.
type TextTable struct {
	Index   int                  `json:"index" yaml:"index"`
	Name    string               `json:"name" yaml:"name"`
	Strings []text.DecodedString `json:"strings" yaml:"strings"`
}

// Result is the decoded content of a kernel archive.
type Result struct {
	Sections []Section   `json:"sections" yaml:"sections"`
	Texts    []TextTable `json:"texts" yaml:"texts"`
}

// Parser parses kernel archives.
type Parser struct {
	logger *log.Logger
}

// New returns a new kernel archive parser.
func New(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse decompresses all sections of the archive and decodes the text tables.
func (p *Parser) Parse(data []byte) (*Result, error) {
	sections, err := ReadSections(data)
	if err != nil {
		return nil, err
	}

	result := &Result{Sections: sections}
	for _, section := range sections {
		if section.Index < firstTextSection || section.Index > lastTextSection {
			continue
		}

		strings, err := DecodeTextTable(section.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding text section %d: %w", section.Index, err)
		}
		result.Texts = append(result.Texts, TextTable{
			Index:   section.Index,
			Name:    textSectionNames[section.Index],
			Strings: strings,
		})

		p.logger.Debug("Decoded kernel text section",
			log.Int("section", section.Index),
			log.String("name", textSectionNames[section.Index]),
			log.Int("strings", len(strings)))
	}
	return result, nil
}

// ReadSections reads and decompresses all sections of the archive.
// A section with a compressed size of 0 ends the archive.
func ReadSections(data []byte) ([]Section, error) {
	c := cursor.New(data)
	var sections []Section

	for c.Remaining() >= sectionHeaderSize {
		b, err := c.ReadBytes(sectionHeaderSize)
		if err != nil {
			return nil, fmt.Errorf("reading section %d header: %w", len(sections), err)
		}
		var header SectionHeader
		if err := restruct.Unpack(b, binary.LittleEndian, &header); err != nil {
			return nil, fmt.Errorf("unpacking section %d header: %w", len(sections), err)
		}
		if header.CompressedSize == 0 {
			break
		}

		compressed, err := c.ReadBytes(int(header.CompressedSize))
		if err != nil {
			return nil, fmt.Errorf("reading section %d data: %w", len(sections), err)
		}
		decompressed, err := decompress(compressed)
		if err != nil {
			return nil, fmt.Errorf("decompressing section %d: %w", len(sections), err)
		}
		if len(decompressed) != int(header.UncompressedSize) {
			return nil, fmt.Errorf("section %d decompressed to %d bytes, expected %d",
				len(sections), len(decompressed), header.UncompressedSize)
		}

		sections = append(sections, Section{
			Index:    len(sections),
			FileType: header.FileType,
			Size:     len(decompressed),
			Data:     decompressed,
		})
	}
	return sections, nil
}

func decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading gzip data: %w", err)
	}
	return b, nil
}

// DecodeTextTable decodes a text section. The section starts with a table
// of string offsets, the first offset marks the end of the table.
// Every string is limited to the distance to the next offset.
func DecodeTextTable(data []byte) ([]text.DecodedString, error) {
	c := cursor.New(data)
	if c.Len() < 2 {
		return nil, nil
	}

	first, err := c.ReadUInt16LE()
	if err != nil {
		return nil, err
	}
	offsets := make([]int, int(first)/2)
	if len(offsets) > 0 {
		offsets[0] = int(first)
	}
	for i := 1; i < len(offsets); i++ {
		offset, err := c.ReadUInt16LE()
		if err != nil {
			return nil, fmt.Errorf("reading string %d offset: %w", i, err)
		}
		offsets[i] = int(offset)
	}

	strings := make([]text.DecodedString, len(offsets))
	for i, start := range offsets {
		if start >= c.Len() {
			strings[i] = text.DecodedString{}
			continue
		}

		end := c.Len()
		if i+1 < len(offsets) && offsets[i+1] > start {
			end = offsets[i+1]
		}
		if err := c.SetPosition(start); err != nil {
			return nil, fmt.Errorf("seeking to string %d: %w", i, err)
		}
		strings[i], err = text.ReadKernelString(c, end-start)
		if err != nil {
			return nil, fmt.Errorf("reading string %d: %w", i, err)
		}
	}
	return strings, nil
}
