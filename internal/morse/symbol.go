package morse

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	// Dot descends to the left child
	Dot = '.'
	// Dash descends to the right child
	Dash = '-'
	// Separator ends a code group; a second one marks a word gap
	Separator = ' '
)

// Symbol is the payload stored in the code tree
type Symbol rune

// Placeholder is the payload of nodes that only exist as a prefix of longer codes.
const Placeholder Symbol = 0

// String renders the symbol as its character. Placeholder renders as "".
func (s Symbol) String() string {
	if s == Placeholder {
		return ""
	}
	return string(rune(s))
}

// ParseSymbol is the inverse of Symbol.String
func ParseSymbol(text string) (Symbol, error) {
	if text == "" {
		return Placeholder, nil
	}
	r, n := utf8.DecodeRuneInString(text)
	if n != len(text) || r == utf8.RuneError {
		return Placeholder, fmt.Errorf("%w: %q is not a single character", ErrInvalidSymbol, text)
	}
	return Symbol(r), nil
}

// fold maps a character to the case used for table lookups
func fold(r rune) Symbol {
	return Symbol(unicode.ToLower(r))
}
