package morse

import (
	"fmt"

	"github.com/kumarlokesh/morse-tree/internal/prefixtree"
)

// Build creates the code tree for table. The root and every node that is only
// a prefix of longer codes hold Placeholder; each code's final node holds its
// symbol.
func Build(table *CodeTable) (prefixtree.Tree[Symbol], error) {
	root := prefixtree.New(Placeholder)
	for sym, code := range table.codes {
		if err := insert(root, sym, code); err != nil {
			return prefixtree.Tree[Symbol]{}, err
		}
	}
	return root, nil
}

// insert walks code from root, creating missing nodes, and stores sym at the end.
func insert(root prefixtree.Tree[Symbol], sym Symbol, code string) error {
	current := root
	for i, ch := range code {
		b, ok := branchOf(ch)
		if !ok {
			return fmt.Errorf("%w: %q at offset %d of %q", ErrInvalidCodeCharacter, ch, i, code)
		}
		next, err := current.Grow(b, Placeholder)
		if err != nil {
			return err
		}
		current = next
	}
	return current.SetPayload(sym)
}

func branchOf(ch rune) (prefixtree.Branch, bool) {
	switch ch {
	case Dot:
		return prefixtree.Left, true
	case Dash:
		return prefixtree.Right, true
	}
	return 0, false
}
