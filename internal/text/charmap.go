package text

import (
	"fmt"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// printableLimit is the first byte value that is not a plain character in
// the native charset.
const printableLimit = 0xE0

// The native charset is the Mac OS Roman table shifted down by 0x20:
// byte 0x00 is a space, 0x21 is 'A' and 0x60 onwards maps to the upper half
// of Mac OS Roman.
var nativeCharset [256]string

// kernelSpecials maps the non glyph characters below the kernel control range.
var kernelSpecials = map[byte]string{
	0xE0: "{CHOICE}",
	0xE1: "\t",
	0xE2: ", ",
	0xE3: ".\"",
	0xE4: "…\"",
}

// dialogSpecials extends kernelSpecials with the field dialog control characters.
var dialogSpecials = map[byte]string{
	0xE7: "\n",
	0xE8: "{NEW}",
	0xEA: "{CLOUD}",
	0xEB: "{BARRET}",
	0xEC: "{TIFA}",
	0xED: "{AERITH}",
	0xEE: "{RED XIII}",
	0xEF: "{YUFFIE}",
	0xF0: "{CAIT SITH}",
	0xF1: "{VINCENT}",
	0xF2: "{CID}",
	0xF3: "{PARTY #1}",
	0xF4: "{PARTY #2}",
	0xF5: "{PARTY #3}",
	0xF6: "{CIRCLE}",
	0xF7: "{TRIANGLE}",
	0xF8: "{SQUARE}",
	0xF9: "{CROSS}",
}

var dialogCharset [256]string

func init() {
	for i := range 256 {
		b := byte(i)
		nativeCharset[i] = escape(b)
		if b < printableLimit {
			r := charmap.Macintosh.DecodeByte(b + 0x20)
			if unicode.IsPrint(r) {
				nativeCharset[i] = string(r)
			}
		}
	}
	for b, s := range kernelSpecials {
		nativeCharset[b] = s
	}

	dialogCharset = nativeCharset
	for b, s := range dialogSpecials {
		dialogCharset[b] = s
	}
}

// Char returns the native charset representation of a single byte.
// Bytes without a glyph are returned as an escape marker like <0xE6>.
func Char(b byte) string {
	return nativeCharset[b]
}

// DialogChar returns the field dialog representation of a single byte.
func DialogChar(b byte) string {
	return dialogCharset[b]
}

func escape(b byte) string {
	return fmt.Sprintf("<0x%02X>", b)
}
