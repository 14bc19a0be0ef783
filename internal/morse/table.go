package morse

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// CodeTable maps symbols to their code strings. It is immutable once built.
type CodeTable struct {
	codes map[Symbol]string
}

// NewTable validates entries and builds a CodeTable. Keys are folded to lower
// case. Whitespace and control characters cannot be symbols, every code must
// be a non-empty string of dots and dashes, and no two symbols may share a code.
func NewTable(entries map[rune]string) (*CodeTable, error) {
	codes := make(map[Symbol]string, len(entries))
	owners := make(map[string]Symbol, len(entries))

	for r, code := range entries {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == utf8.RuneError {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, r)
		}
		if err := validateCode(code); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", r, err)
		}

		sym := fold(r)
		if prev, ok := codes[sym]; ok && prev != code {
			return nil, fmt.Errorf("%w: %q maps to both %q and %q", ErrInvalidSymbol, sym, prev, code)
		}
		if owner, ok := owners[code]; ok && owner != sym {
			a, b := min(owner, sym), max(owner, sym)
			return nil, fmt.Errorf("%w: %q is used by %q and %q", ErrDuplicateCode, code, a, b)
		}
		codes[sym] = code
		owners[code] = sym
	}
	return &CodeTable{codes: codes}, nil
}

// validateCode checks that code is a non-empty string over {Dot, Dash}
func validateCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	for i, ch := range code {
		if ch != Dot && ch != Dash {
			return fmt.Errorf("%w: %q at offset %d of %q", ErrInvalidCodeCharacter, ch, i, code)
		}
	}
	return nil
}

// Code returns the code for the case-folded form of r
func (t *CodeTable) Code(r rune) (string, bool) {
	code, ok := t.codes[fold(r)]
	return code, ok
}

// Len returns the number of symbols in the table
func (t *CodeTable) Len() int {
	return len(t.codes)
}

// Symbols returns the table's symbols in ascending order
func (t *CodeTable) Symbols() []Symbol {
	syms := lo.Keys(t.codes)
	slices.Sort(syms)
	return syms
}

// Entries returns a copy of the table keyed by the symbol's string form
func (t *CodeTable) Entries() map[string]string {
	return lo.MapKeys(t.codes, func(_ string, s Symbol) string {
		return s.String()
	})
}

// MaxCodeLen returns the length of the longest code, which is also the
// height of the tree built from the table.
func (t *CodeTable) MaxCodeLen() int {
	n := 0
	for _, code := range t.codes {
		n = max(n, len(code))
	}
	return n
}
