package morse

import (
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/morse-tree/internal/prefixtree"
)

// Codec bundles a code table with the tree built from it. A Codec is safe for
// concurrent use because the tree is never modified after construction.
type Codec struct {
	table  *CodeTable
	tree   prefixtree.Tree[Symbol]
	policy UnknownPolicy
	logger zerolog.Logger
}

// Option configures a Codec
type Option func(*Codec)

// WithPolicy sets how unknown characters are encoded
func WithPolicy(p UnknownPolicy) Option {
	return func(c *Codec) {
		c.policy = p
	}
}

// WithLogger sets the logger used for build diagnostics
func WithLogger(l zerolog.Logger) Option {
	return func(c *Codec) {
		c.logger = l
	}
}

// NewCodec builds the tree for table
func NewCodec(table *CodeTable, opts ...Option) (*Codec, error) {
	c := &Codec{
		table:  table,
		policy: SkipUnknown,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	tree, err := Build(table)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to build code tree")
		return nil, err
	}
	c.tree = tree

	c.logger.Debug().
		Int("symbols", table.Len()).
		Int("nodes", tree.Size()).
		Int("height", tree.Height()).
		Stringer("policy", c.policy).
		Msg("built code tree")
	return c, nil
}

// Encode translates text using the codec's table and policy
func (c *Codec) Encode(text string) (string, error) {
	return Encode(text, c.table, c.policy)
}

// Decode translates code groups using the codec's tree
func (c *Codec) Decode(code string) (string, error) {
	return Decode(code, c.tree)
}

// Table returns the code table
func (c *Codec) Table() *CodeTable {
	return c.table
}

// Tree returns a read-only view of the code tree. Callers must not modify it.
func (c *Codec) Tree() prefixtree.Tree[Symbol] {
	return c.tree
}

// Policy returns the unknown-character policy
func (c *Codec) Policy() UnknownPolicy {
	return c.policy
}
