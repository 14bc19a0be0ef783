package morse

import (
	"fmt"
	"strings"
)

// UnknownPolicy decides what Encode does with characters missing from the table.
type UnknownPolicy int

const (
	// SkipUnknown writes only the separator for an unknown character.
	SkipUnknown UnknownPolicy = iota
	// RejectUnknown fails with ErrUnknownSymbol.
	RejectUnknown
)

func (p UnknownPolicy) String() string {
	switch p {
	case SkipUnknown:
		return "skip"
	case RejectUnknown:
		return "reject"
	default:
		return fmt.Sprintf("UnknownPolicy(%d)", int(p))
	}
}

// Encode translates text to code groups. Each character is case-folded and
// replaced by its code followed by a Separator; a space becomes a single
// Separator, so words end up divided by two separators. Text that starts
// with a space therefore yields a leading separator, which Decode rejects as
// an empty code group.
func Encode(text string, table *CodeTable, policy UnknownPolicy) (string, error) {
	var sb strings.Builder
	for i, ch := range text {
		if ch == Separator {
			sb.WriteRune(Separator)
			continue
		}
		code, ok := table.Code(ch)
		if !ok && policy == RejectUnknown {
			return "", fmt.Errorf("%w: %q at offset %d", ErrUnknownSymbol, ch, i)
		}
		sb.WriteString(code)
		sb.WriteRune(Separator)
	}
	return sb.String(), nil
}
