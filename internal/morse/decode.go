package morse

import (
	"fmt"
	"strings"

	"github.com/kumarlokesh/morse-tree/internal/prefixtree"
)

// Decode translates code groups back to text using a tree produced by Build.
//
// The cursor starts at the root. A dot or dash moves it to the matching child,
// and a separator emits the symbol under the cursor and returns it to the
// root. A separator that directly follows the one closing a group is a word
// gap and emits a space. A code still open at the end of the input is emitted
// as if it were terminated.
//
// Decoding fails with ErrMalformedCode on a character outside the code
// alphabet, on a step to a missing child, on a code that ends at a node
// without a symbol, and on a separator before the first code group.
func Decode(code string, tree prefixtree.Tree[Symbol]) (string, error) {
	if tree.IsEmpty() {
		return "", prefixtree.ErrEmptyTree
	}

	var out strings.Builder
	cursor := tree
	groupStart := -1 // offset of the open group, -1 when the cursor is at the root
	emitted := false

	for i, ch := range code {
		switch ch {
		case Dot, Dash:
			b, _ := branchOf(ch)
			next := cursor.Child(b)
			if next.IsEmpty() {
				start := i
				if groupStart >= 0 {
					start = groupStart
				}
				return "", fmt.Errorf("%w: no code %q (offset %d)", ErrMalformedCode, code[start:i+1], start)
			}
			if groupStart < 0 {
				groupStart = i
			}
			cursor = next

		case Separator:
			if groupStart < 0 {
				if !emitted {
					return "", fmt.Errorf("%w: empty code group at offset %d", ErrMalformedCode, i)
				}
				out.WriteRune(Separator)
				continue
			}
			if err := emit(&out, cursor, code[groupStart:i], groupStart); err != nil {
				return "", err
			}
			emitted = true
			cursor = tree
			groupStart = -1

		default:
			return "", fmt.Errorf("%w: unexpected character %q at offset %d", ErrMalformedCode, ch, i)
		}
	}

	if groupStart >= 0 {
		if err := emit(&out, cursor, code[groupStart:], groupStart); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

// emit appends the symbol held by node, which was reached by group.
func emit(out *strings.Builder, node prefixtree.Tree[Symbol], group string, offset int) error {
	sym, err := node.Payload()
	if err != nil {
		return err
	}
	if sym == Placeholder {
		return fmt.Errorf("%w: code %q (offset %d) has no symbol", ErrMalformedCode, group, offset)
	}
	out.WriteRune(rune(sym))
	return nil
}
