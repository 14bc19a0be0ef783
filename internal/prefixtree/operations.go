package prefixtree

// Grow returns the subtree on branch b, creating it with placeholder as its
// payload when it does not exist yet.
func (t Tree[T]) Grow(b Branch, placeholder T) (Tree[T], error) {
	if t.root == nil {
		return Tree[T]{}, ErrEmptyTree
	}
	c := t.root.child(b)
	if c == nil {
		c = newNode(placeholder)
		t.root.setChild(b, c)
	}
	return Tree[T]{root: c}, nil
}

// Height returns the number of edges on the longest path from the root.
// A single node has height 0 and the empty tree has height -1.
func (t Tree[T]) Height() int {
	return height(t.root)
}

func height[T any](n *node[T]) int {
	if n == nil {
		return -1
	}
	return 1 + max(height(n.left), height(n.right))
}

// Size returns the number of nodes in the tree
func (t Tree[T]) Size() int {
	return size(t.root)
}

func size[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + size(n.left) + size(n.right)
}

// WalkFunc is the type of the function called for each node visited by Walk.
// path holds the branches taken from the root and is only valid during the call.
// If the function returns false, the walk stops.
type WalkFunc[T any] func(path []Branch, payload T, leaf bool) bool

// Walk visits every node in preorder (root, left, right).
func (t Tree[T]) Walk(f WalkFunc[T]) {
	walk(t.root, make([]Branch, 0, 8), f)
}

func walk[T any](n *node[T], path []Branch, f WalkFunc[T]) bool {
	if n == nil {
		return true
	}
	if !f(path, n.payload, n.left == nil && n.right == nil) {
		return false
	}
	if !walk(n.left, append(path, Left), f) {
		return false
	}
	return walk(n.right, append(path, Right), f)
}
