package prefixtree

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/kumarlokesh/morse-tree/internal/codec"
)

func TestTree_Serialize_Deserialize(t *testing.T) {
	tests := []struct {
		name string
		tree func(t *testing.T) Tree[string]
	}{
		{
			name: "empty tree",
			tree: func(*testing.T) Tree[string] { return Tree[string]{} },
		},
		{
			name: "single node",
			tree: func(*testing.T) Tree[string] { return New("root") },
		},
		{
			name: "branching",
			tree: sample,
		},
		{
			name: "right spine",
			tree: func(t *testing.T) Tree[string] {
				tr := New("")
				cur := tr
				for i := 0; i < 5; i++ {
					var err error
					if cur, err = cur.Grow(Right, "-"); err != nil {
						t.Fatalf("Grow() error = %v", err)
					}
				}
				return tr
			},
		},
	}

	codecs := map[string]codec.Codec[string]{
		"cbor":    codec.MustCBOR[string](),
		"msgpack": codec.Msgpack[string]{},
	}

	for cname, c := range codecs {
		for _, tt := range tests {
			t.Run(cname+"/"+tt.name, func(t *testing.T) {
				tree := tt.tree(t)

				data, err := tree.Serialize(c)
				if err != nil {
					t.Fatalf("Serialize() error = %v", err)
				}

				got, err := Deserialize(data, c)
				if err != nil {
					t.Fatalf("Deserialize() error = %v", err)
				}

				verifyTreeStructure(t, tree.root, got.root)
			})
		}
	}
}

func TestDeserialize_Corrupt(t *testing.T) {
	c := codec.MustCBOR[string]()
	data, err := sample(t).Serialize(c)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	badType := append([]byte(nil), data...)
	badType[0] = 7

	badOffset := append([]byte(nil), data...)
	payloadLen := binary.BigEndian.Uint32(badOffset[1:5])
	entry := headerSize + int(payloadLen)
	binary.BigEndian.PutUint64(badOffset[entry+1:entry+9], 3)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "truncated", data: data[:len(data)-1]},
		{name: "trailing bytes", data: append(append([]byte(nil), data...), 0)},
		{name: "unknown node type", data: badType},
		{name: "child offset", data: badOffset},
		{name: "short header", data: data[:4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize[string](tt.data, c)
			if !errors.Is(err, ErrCorruptSnapshot) {
				t.Errorf("Deserialize() error = %v, want %v", err, ErrCorruptSnapshot)
			}
		})
	}
}
