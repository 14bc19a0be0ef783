package morse

import (
	"fmt"
	"io"

	"github.com/kumarlokesh/morse-tree/internal/codec"
	"github.com/kumarlokesh/morse-tree/internal/prefixtree"
)

var symbolCodec = codec.MustCBOR[Symbol]()

// PayloadCodec returns the snapshot payload codec called name: "cbor" (the
// default used by MarshalTree) or "msgpack".
func PayloadCodec(name string) (codec.Codec[Symbol], error) {
	switch name {
	case "", "cbor":
		return symbolCodec, nil
	case "msgpack":
		return codec.Msgpack[Symbol]{}, nil
	}
	return nil, fmt.Errorf("unknown payload codec %q", name)
}

// Dump returns the display form of tree: one line per node in preorder, the
// symbol (empty for Placeholder) or prefixtree.EmptyMarker for an absent subtree.
func Dump(tree prefixtree.Tree[Symbol]) string {
	return tree.Format(Symbol.String)
}

// ParseDump rebuilds a tree from the output of Dump
func ParseDump(r io.Reader) (prefixtree.Tree[Symbol], error) {
	return prefixtree.Parse(r, ParseSymbol)
}

// MarshalTree encodes tree into the binary snapshot format with CBOR payloads
func MarshalTree(tree prefixtree.Tree[Symbol]) ([]byte, error) {
	return tree.Serialize(symbolCodec)
}

// UnmarshalTree decodes a snapshot produced by MarshalTree
func UnmarshalTree(data []byte) (prefixtree.Tree[Symbol], error) {
	return prefixtree.Deserialize[Symbol](data, symbolCodec)
}

// MarshalTreeWith is MarshalTree with payloads encoded by c
func MarshalTreeWith(tree prefixtree.Tree[Symbol], c codec.Codec[Symbol]) ([]byte, error) {
	return tree.Serialize(c)
}

// UnmarshalTreeWith decodes a snapshot written by MarshalTreeWith using the same codec
func UnmarshalTreeWith(data []byte, c codec.Codec[Symbol]) (prefixtree.Tree[Symbol], error) {
	return prefixtree.Deserialize(data, c)
}
