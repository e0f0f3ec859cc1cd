package text

import (
	"github.com/flarespire359/kujata-sub000/internal/cursor"
)

const (
	dialogEscape     = 0xFE
	dialogBankRef    = 0xE2
	dialogVarDecr    = 0xE1
	bankRefTrailerAt = 4
)

// dialogBanks maps the bank selector of a bank reference escape to the
// script memory bank it displays.
var dialogBanks = map[byte]uint8{
	0: 1,
	1: 3,
	2: 11,
	3: 13,
	4: 15,
}

// unknownBank is returned for bank selectors outside of dialogBanks.
// Real game data contains such entries so it is not treated as an error.
const unknownBank = 0

// ReadDialogString decodes a field dialog string of at most maxLength bytes.
// The cursor is left just past the 0xFF terminator, or where reading stopped
// once maxLength bytes were consumed.
func ReadDialogString(c *cursor.Cursor, maxLength int) (DecodedString, error) {
	var b builder
	start := c.Position()

	for c.Position()-start < maxLength {
		ch, err := c.ReadUInt8()
		if err != nil {
			return nil, err
		}

		switch ch {
		case terminator:
			return b.result(), nil

		case dialogEscape:
			tok, err := readDialogEscape(c)
			if err != nil {
				return nil, err
			}
			b.token(tok)

		default:
			b.text(DialogChar(ch))
		}
	}
	return b.result(), nil
}

func readDialogEscape(c *cursor.Cursor) (Token, error) {
	feCodePos := c.Position()
	feCode, err := c.ReadUInt8()
	if err != nil {
		return nil, err
	}

	switch {
	case feCode == dialogBankRef && isBankRef(c.Bytes(), feCodePos):
		params, err := c.ReadBytes(bankRefTrailerAt)
		if err != nil {
			return nil, err
		}
		return BankValue{
			Bank:  bankOf(params[1]),
			Index: params[0],
			Size:  params[2],
		}, nil

	case feCode == dialogVarDecr:
		return Variable("VARDECR"), nil

	default:
		return Text(DialogChar(feCode)), nil
	}
}

// isBankRef reports whether the 0xE2 escape at pos is followed by the 4 byte
// bank reference whose last byte is zero.
func isBankRef(data []byte, pos int) bool {
	trailer := pos + bankRefTrailerAt
	return trailer < len(data) && data[trailer] == 0x00
}

func bankOf(selector byte) uint8 {
	bank, ok := dialogBanks[selector]
	if !ok {
		return unknownBank
	}
	return bank
}
