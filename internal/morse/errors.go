package morse

import "errors"

var (
	// ErrInvalidCodeCharacter is returned when a code string contains a character other than '.' or '-'.
	ErrInvalidCodeCharacter = errors.New("invalid code character")
	// ErrEmptyCode is returned when a table maps a symbol to an empty code.
	ErrEmptyCode = errors.New("empty code")
	// ErrDuplicateCode is returned when two symbols share the same code.
	ErrDuplicateCode = errors.New("duplicate code")
	// ErrInvalidSymbol is returned for table keys that cannot be encoded.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrUnknownSymbol is returned by strict encoding for a character missing from the table.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrMalformedCode is returned when coded text does not follow a path in the tree.
	ErrMalformedCode = errors.New("malformed code")
)
