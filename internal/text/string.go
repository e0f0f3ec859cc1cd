// Package text decodes the game's native string encodings into token
// annotated strings.
package text

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedString labels decoder sentinel results. The decoders never
// fail on it, malformed sequences produce a defined sentinel value that Err
// reports.
var ErrMalformedString = errors.New("malformed string")

// Token is a part of a decoded string.
type Token interface {
	fmt.Stringer
	isToken()
}

// Text is a run of plain characters.
type Text string

// Variable is an inline reference that the game replaces at display time,
// rendered as {NAME}.
type Variable string

// Color switches the text color, rendered as {COLOR(n)}.
type Color uint8

// BankValue displays a value read from a memory bank, rendered as
// {BANK,bank,index,size}. Bank 0 marks an unknown bank selector.
type BankValue struct {
	Bank  uint8
	Index uint8
	Size  uint8
}

// Escape is a byte without a known meaning, rendered as <0xNN>.
type Escape uint8

func (Text) isToken()      {}
func (Variable) isToken()  {}
func (Color) isToken()     {}
func (BankValue) isToken() {}
func (Escape) isToken()    {}

func (t Text) String() string     { return string(t) }
func (v Variable) String() string { return "{" + string(v) + "}" }
func (c Color) String() string    { return fmt.Sprintf("{COLOR(%d)}", uint8(c)) }
func (e Escape) String() string   { return escape(byte(e)) }

func (b BankValue) String() string {
	return fmt.Sprintf("{BANK,%d,%d,%d}", b.Bank, b.Index, b.Size)
}

// Err returns ErrMalformedString for the unknown bank selector sentinel.
func (b BankValue) Err() error {
	if b.Bank == 0 {
		return fmt.Errorf("bank value %s: %w", b, ErrMalformedString)
	}
	return nil
}

// DecodedString is an immutable sequence of tokens.
type DecodedString []Token

// String renders all tokens.
func (s DecodedString) String() string {
	var sb strings.Builder
	for _, t := range s {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Err returns the error of the first sentinel token, or nil if the string
// was decoded without malformed sequences.
func (s DecodedString) Err() error {
	for _, t := range s {
		if b, ok := t.(BankValue); ok {
			if err := b.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// MarshalText renders the string for JSON and YAML output.
func (s DecodedString) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// builder accumulates tokens, merging adjacent text runs.
type builder struct {
	tokens DecodedString
}

func (b *builder) text(s string) {
	if n := len(b.tokens); n > 0 {
		if last, ok := b.tokens[n-1].(Text); ok {
			b.tokens[n-1] = last + Text(s)
			return
		}
	}
	b.tokens = append(b.tokens, Text(s))
}

func (b *builder) token(t Token) {
	if txt, ok := t.(Text); ok {
		b.text(string(txt))
		return
	}
	b.tokens = append(b.tokens, t)
}

func (b *builder) splice(s DecodedString) {
	for _, t := range s {
		b.token(t)
	}
}

func (b *builder) result() DecodedString {
	if b.tokens == nil {
		return DecodedString{}
	}
	return b.tokens
}
