package prefixtree

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// sample builds
//
//	   root
//	  /    \
//	 a      b
//	  \
//	   c
func sample(t *testing.T) Tree[string] {
	t.Helper()
	tr := New("root")
	a, err := tr.Grow(Left, "a")
	if err != nil {
		t.Fatalf("Grow() error = %v", err)
	}
	if _, err := tr.Grow(Right, "b"); err != nil {
		t.Fatalf("Grow() error = %v", err)
	}
	if _, err := a.Grow(Right, "c"); err != nil {
		t.Fatalf("Grow() error = %v", err)
	}
	return tr
}

func TestTree_Empty(t *testing.T) {
	var tr Tree[int]

	if !tr.IsEmpty() {
		t.Error("zero value should be empty")
	}
	if tr.IsLeaf() {
		t.Error("empty tree is not a leaf")
	}
	if _, err := tr.Payload(); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("Payload() error = %v, want %v", err, ErrEmptyTree)
	}
	if err := tr.SetPayload(1); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("SetPayload() error = %v, want %v", err, ErrEmptyTree)
	}
	if _, err := tr.Grow(Left, 0); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("Grow() error = %v, want %v", err, ErrEmptyTree)
	}
	if !tr.Left().IsEmpty() || !tr.Right().IsEmpty() {
		t.Error("children of the empty tree should be empty")
	}
	if got := tr.Height(); got != -1 {
		t.Errorf("Height() = %d, want -1", got)
	}
	if got := tr.Size(); got != 0 {
		t.Errorf("Size() = %d, want 0", got)
	}
}

func TestTree_Structure(t *testing.T) {
	tr := sample(t)

	if tr.IsLeaf() {
		t.Error("root has children, should not be a leaf")
	}
	if got, _ := tr.Left().Payload(); got != "a" {
		t.Errorf("Left().Payload() = %q, want %q", got, "a")
	}
	if got, _ := tr.Right().Payload(); got != "b" {
		t.Errorf("Right().Payload() = %q, want %q", got, "b")
	}
	if !tr.Right().IsLeaf() {
		t.Error("right child should be a leaf")
	}
	if !tr.Left().Left().IsEmpty() {
		t.Error("a has no left child")
	}
	if got, _ := tr.Left().Right().Payload(); got != "c" {
		t.Errorf("Left().Right().Payload() = %q, want %q", got, "c")
	}
	if got := tr.Height(); got != 2 {
		t.Errorf("Height() = %d, want 2", got)
	}
	if got := tr.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
}

func TestTree_GrowReusesExistingChild(t *testing.T) {
	tr := sample(t)

	a, err := tr.Grow(Left, "ignored")
	if err != nil {
		t.Fatalf("Grow() error = %v", err)
	}
	if got, _ := a.Payload(); got != "a" {
		t.Errorf("Grow() returned payload %q, want existing %q", got, "a")
	}
	if got := tr.Size(); got != 4 {
		t.Errorf("Size() = %d after regrow, want 4", got)
	}
}

func TestTree_ViewsAliasStorage(t *testing.T) {
	tr := sample(t)

	if err := tr.Left().Right().SetPayload("changed"); err != nil {
		t.Fatalf("SetPayload() error = %v", err)
	}
	if got, _ := tr.Left().Right().Payload(); got != "changed" {
		t.Errorf("payload through a fresh view = %q, want %q", got, "changed")
	}
}

func TestTree_Walk(t *testing.T) {
	tr := sample(t)

	var visited []string
	tr.Walk(func(path []Branch, payload string, leaf bool) bool {
		var sb strings.Builder
		for _, b := range path {
			sb.WriteString(strconv.Itoa(int(b)))
		}
		visited = append(visited, sb.String()+"="+payload+":"+strconv.FormatBool(leaf))
		return true
	})

	want := []string{"=root:false", "0=a:false", "01=c:true", "1=b:true"}
	if strings.Join(visited, " ") != strings.Join(want, " ") {
		t.Errorf("Walk() visited %v, want %v", visited, want)
	}

	count := 0
	tr.Walk(func([]Branch, string, bool) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Walk() did not stop early, visited %d nodes", count)
	}
}

func TestTree_Display(t *testing.T) {
	tr := sample(t)

	want := "root\na\nEMPTY\nc\nEMPTY\nEMPTY\nb\nEMPTY\nEMPTY\n"
	if got := tr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	var empty Tree[string]
	if got := empty.String(); got != "EMPTY\n" {
		t.Errorf("String() of empty tree = %q, want %q", got, "EMPTY\n")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	identity := func(s string) (string, error) { return s, nil }

	tests := []struct {
		name string
		tree Tree[string]
	}{
		{name: "empty", tree: Tree[string]{}},
		{name: "single node", tree: New("only")},
		{name: "sample", tree: sample(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dump := tt.tree.String()
			got, err := Parse(strings.NewReader(dump), identity)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			verifyTreeStructure(t, tt.tree.root, got.root)
			if got.String() != dump {
				t.Errorf("re-dump = %q, want %q", got.String(), dump)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	identity := func(s string) (string, error) { return s, nil }

	_, err := Parse(strings.NewReader("root\nEMPTY\n"), identity)
	if !errors.Is(err, ErrTruncatedDump) {
		t.Errorf("Parse() error = %v, want %v", err, ErrTruncatedDump)
	}

	bad := errors.New("bad payload")
	_, err = Parse(strings.NewReader("x\nEMPTY\nEMPTY\n"), func(string) (string, error) { return "", bad })
	if !errors.Is(err, bad) {
		t.Errorf("Parse() error = %v, want %v", err, bad)
	}
}

func verifyTreeStructure[T comparable](t *testing.T, expected, actual *node[T]) {
	t.Helper()

	if (expected == nil) != (actual == nil) {
		t.Fatalf("presence mismatch: expected %v, got %v", expected != nil, actual != nil)
	}
	if expected == nil {
		return
	}
	if expected.payload != actual.payload {
		t.Errorf("payload mismatch: expected %v, got %v", expected.payload, actual.payload)
	}
	verifyTreeStructure(t, expected.left, actual.left)
	verifyTreeStructure(t, expected.right, actual.right)
}
