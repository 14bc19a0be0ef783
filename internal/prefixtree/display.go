package prefixtree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EmptyMarker is the display line written for an absent subtree
const EmptyMarker = "EMPTY"

// ErrTruncatedDump is returned by Parse when the input ends before the tree is complete.
var ErrTruncatedDump = errors.New("truncated tree dump")

// String returns the display dump of the tree using fmt.Sprint for payloads.
func (t Tree[T]) String() string {
	return t.Format(func(v T) string { return fmt.Sprint(v) })
}

// Format returns a depth-first dump of the tree, one node per line: the
// payload, then the left subtree, then the right subtree. Absent subtrees are
// written as EmptyMarker.
func (t Tree[T]) Format(format func(T) string) string {
	var sb strings.Builder
	writeDump(&sb, t.root, format)
	return sb.String()
}

func writeDump[T any](sb *strings.Builder, n *node[T], format func(T) string) {
	if n == nil {
		sb.WriteString(EmptyMarker)
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(format(n.payload))
	sb.WriteByte('\n')
	writeDump(sb, n.left, format)
	writeDump(sb, n.right, format)
}

// Parse reads a dump produced by Format and rebuilds the tree. parse converts
// a payload line back to a value.
func Parse[T any](r io.Reader, parse func(string) (T, error)) (Tree[T], error) {
	sc := bufio.NewScanner(r)
	line := 0
	var read func() (Tree[T], error)
	read = func() (Tree[T], error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Tree[T]{}, fmt.Errorf("failed to read dump: %w", err)
			}
			return Tree[T]{}, fmt.Errorf("%w: expected node at line %d", ErrTruncatedDump, line+1)
		}
		line++
		text := sc.Text()
		if text == EmptyMarker {
			return Tree[T]{}, nil
		}
		payload, err := parse(text)
		if err != nil {
			return Tree[T]{}, fmt.Errorf("line %d: %w", line, err)
		}
		left, err := read()
		if err != nil {
			return Tree[T]{}, err
		}
		right, err := read()
		if err != nil {
			return Tree[T]{}, err
		}
		return Join(payload, left, right), nil
	}
	return read()
}
