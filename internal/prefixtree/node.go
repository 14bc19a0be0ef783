package prefixtree

import "errors"

// ErrEmptyTree is returned when a payload is read or written through the empty tree.
var ErrEmptyTree = errors.New("tree is empty")

// Branch selects one of the two children of a node
type Branch uint8

const (
	// Left is the "dot" (0) branch
	Left Branch = iota
	// Right is the "dash" (1) branch
	Right
)

func (b Branch) String() string {
	if b == Left {
		return "left"
	}
	return "right"
}

// node represents a node in the tree
type node[T any] struct {
	payload T

	// left and right are owned exclusively by this node
	left  *node[T]
	right *node[T]
}

// newNode creates a new node holding payload
func newNode[T any](payload T) *node[T] {
	return &node[T]{payload: payload}
}

func (n *node[T]) child(b Branch) *node[T] {
	if b == Left {
		return n.left
	}
	return n.right
}

func (n *node[T]) setChild(b Branch, c *node[T]) {
	if b == Left {
		n.left = c
		return
	}
	n.right = c
}

// Tree is a view of a binary tree rooted at some node.
// The zero value is the empty tree. Subtrees returned by Left, Right and Child
// share storage with the tree they were taken from.
type Tree[T any] struct {
	root *node[T]
}

// New creates a single-node tree holding payload
func New[T any](payload T) Tree[T] {
	return Tree[T]{root: newNode(payload)}
}

// Join creates a tree whose root holds payload and adopts left and right as its
// subtrees. The subtrees are not copied.
func Join[T any](payload T, left, right Tree[T]) Tree[T] {
	n := newNode(payload)
	n.left = left.root
	n.right = right.root
	return Tree[T]{root: n}
}

// IsEmpty reports whether the tree has no root node
func (t Tree[T]) IsEmpty() bool {
	return t.root == nil
}

// IsLeaf reports whether the tree is a single node without children
func (t Tree[T]) IsLeaf() bool {
	return t.root != nil && t.root.left == nil && t.root.right == nil
}

// Payload returns the value stored at the root
func (t Tree[T]) Payload() (T, error) {
	if t.root == nil {
		var zero T
		return zero, ErrEmptyTree
	}
	return t.root.payload, nil
}

// SetPayload overwrites the value stored at the root
func (t Tree[T]) SetPayload(v T) error {
	if t.root == nil {
		return ErrEmptyTree
	}
	t.root.payload = v
	return nil
}

// Left returns the left ("dot") subtree, or the empty tree
func (t Tree[T]) Left() Tree[T] {
	return t.Child(Left)
}

// Right returns the right ("dash") subtree, or the empty tree
func (t Tree[T]) Right() Tree[T] {
	return t.Child(Right)
}

// Child returns the subtree on branch b, or the empty tree
func (t Tree[T]) Child(b Branch) Tree[T] {
	if t.root == nil {
		return Tree[T]{}
	}
	return Tree[T]{root: t.root.child(b)}
}
