package prefixtree

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kumarlokesh/morse-tree/internal/codec"
)

// Serialization format:
// [node type: 1 byte][payload length: 4 bytes][payload][num children: 4 bytes][(branch: 1 byte, child offset: 8 bytes)...]
// - node type: 0 = internal node, 1 = leaf node
// - payload: bytes produced by the payload codec
// - for each child: branch (0 = left, 1 = right) and offset of the child relative to the start of this node
// Children are written in branch order directly after their parent, so the
// first child always starts where the parent's header ends.

const (
	nodeTypeInternal = iota
	nodeTypeLeaf
)

const (
	headerSize     = 9 // type (1) + payloadLen (4) + numChildren (4)
	childEntrySize = 9 // branch (1) + offset (8)
)

const maxPayloadSize = 1 << 20

// ErrCorruptSnapshot is returned when a snapshot cannot be decoded.
var ErrCorruptSnapshot = errors.New("snapshot is corrupted")

// Serialize converts the tree to a byte slice, encoding payloads with c.
// The empty tree serializes to an empty slice.
func (t Tree[T]) Serialize(c codec.Codec[T]) ([]byte, error) {
	if t.root == nil {
		return []byte{}, nil
	}
	buf := &bytes.Buffer{}
	if err := serializeNode(t.root, c, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serializeNode recursively serializes a node and its children
func serializeNode[T any](n *node[T], c codec.Codec[T], w io.Writer) error {
	payload, err := c.Encode(n.payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("payload of %d bytes exceeds limit of %d", len(payload), maxPayloadSize)
	}

	var branches []Branch
	for _, b := range []Branch{Left, Right} {
		if n.child(b) != nil {
			branches = append(branches, b)
		}
	}

	nodeType := nodeTypeInternal
	if len(branches) == 0 {
		nodeType = nodeTypeLeaf
	}

	// Children are serialized first so their sizes are known when the
	// offsets are written.
	childBuffers := make([]*bytes.Buffer, len(branches))
	for i, b := range branches {
		childBuf := &bytes.Buffer{}
		if err := serializeNode(n.child(b), c, childBuf); err != nil {
			return fmt.Errorf("failed to serialize %s child: %w", b, err)
		}
		childBuffers[i] = childBuf
	}

	nodeSize := headerSize + len(payload) + len(branches)*childEntrySize

	header := make([]byte, headerSize)
	header[0] = byte(nodeType)
	binary.BigEndian.PutUint32(header[1:5], uint32(len(payload)))
	binary.BigEndian.PutUint32(header[5:9], uint32(len(branches)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
	}

	currentOffset := nodeSize
	for i, b := range branches {
		entry := make([]byte, childEntrySize)
		entry[0] = byte(b)
		binary.BigEndian.PutUint64(entry[1:], uint64(currentOffset))
		if _, err := w.Write(entry); err != nil {
			return fmt.Errorf("failed to write child entry: %w", err)
		}
		currentOffset += childBuffers[i].Len()
	}

	for _, buf := range childBuffers {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write child node: %w", err)
		}
	}
	return nil
}

// Deserialize loads a tree from a byte slice produced by Serialize, decoding
// payloads with c.
func Deserialize[T any](data []byte, c codec.Codec[T]) (Tree[T], error) {
	if len(data) == 0 {
		return Tree[T]{}, nil
	}

	r := bytes.NewReader(data)
	root, end, err := deserializeNode(r, 0, c)
	if err != nil {
		return Tree[T]{}, fmt.Errorf("failed to deserialize tree: %w", err)
	}
	if end != int64(len(data)) {
		return Tree[T]{}, fmt.Errorf("%w: %d trailing bytes", ErrCorruptSnapshot, int64(len(data))-end)
	}
	return Tree[T]{root: root}, nil
}

// deserializeNode reads the node at offset and its children. It returns the
// offset just past the node's subtree.
func deserializeNode[T any](r *bytes.Reader, offset int64, c codec.Codec[T]) (*node[T], int64, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("failed to seek to offset %d: %w", offset, err)
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, 0, fmt.Errorf("%w: short header at offset %d", ErrCorruptSnapshot, offset)
	}

	nodeType := header[0]
	payloadLen := binary.BigEndian.Uint32(header[1:5])
	numChildren := binary.BigEndian.Uint32(header[5:9])

	if nodeType != nodeTypeInternal && nodeType != nodeTypeLeaf {
		return nil, 0, fmt.Errorf("%w: unknown node type %d at offset %d", ErrCorruptSnapshot, nodeType, offset)
	}
	if numChildren > 2 {
		return nil, 0, fmt.Errorf("%w: node at offset %d has %d children", ErrCorruptSnapshot, offset, numChildren)
	}
	if (nodeType == nodeTypeLeaf) != (numChildren == 0) {
		return nil, 0, fmt.Errorf("%w: node type %d does not match %d children at offset %d",
			ErrCorruptSnapshot, nodeType, numChildren, offset)
	}
	if int64(payloadLen) > int64(r.Len()) {
		return nil, 0, fmt.Errorf("%w: payload length %d overruns input at offset %d", ErrCorruptSnapshot, payloadLen, offset)
	}

	raw := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, 0, fmt.Errorf("%w: short payload at offset %d", ErrCorruptSnapshot, offset)
	}
	payload, err := c.Decode(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode payload at offset %d: %w", offset, err)
	}
	n := newNode(payload)

	branches := make([]Branch, 0, numChildren)
	offsets := make([]int64, 0, numChildren)
	for i := uint32(0); i < numChildren; i++ {
		var entry [childEntrySize]byte
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, 0, fmt.Errorf("%w: short child entry at offset %d", ErrCorruptSnapshot, offset)
		}
		b := Branch(entry[0])
		if b != Left && b != Right {
			return nil, 0, fmt.Errorf("%w: invalid branch %d at offset %d", ErrCorruptSnapshot, entry[0], offset)
		}
		if i > 0 && b <= branches[i-1] {
			return nil, 0, fmt.Errorf("%w: children out of order at offset %d", ErrCorruptSnapshot, offset)
		}
		branches = append(branches, b)
		offsets = append(offsets, int64(binary.BigEndian.Uint64(entry[1:])))
	}

	// Each child must start exactly where the previous part of the node ends.
	next := offset + headerSize + int64(payloadLen) + int64(numChildren)*childEntrySize
	for i, b := range branches {
		if offset+offsets[i] != next {
			return nil, 0, fmt.Errorf("%w: %s child offset %d does not follow its parent at offset %d",
				ErrCorruptSnapshot, b, offsets[i], offset)
		}
		child, end, err := deserializeNode(r, next, c)
		if err != nil {
			return nil, 0, err
		}
		n.setChild(b, child)
		next = end
	}
	return n, next, nil
}
