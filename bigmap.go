package tzkit

import (
	"context"
	"math/big"
)

// BigMap is a lazy reference to an on-chain big-map. Construction never
// performs I/O; contents are fetched only when a specific key is requested.
//
// A reference built from a storage node carrying no identifier is
// "detached": it represents a big-map literal that was never allocated on
// chain, and keyed lookups on it fail with ErrDetachedBigMap.
type BigMap struct {
	id     *big.Int
	schema StorageSchema
	client StorageClient
}

// NewBigMap is the decode-time hook for big-map-typed storage nodes. The
// external decoder invokes it with the raw node value and the node's
// declared value-type expression.
//
// A node without an integer identifier yields a detached reference rather
// than an error. Otherwise the reference captures the identifier, a value
// schema built from the type expression, and the client to query through.
func NewBigMap(node *Expr, valueType *Expr, factory SchemaFactory, client StorageClient) (*BigMap, error) {
	if node == nil || node.Int == "" {
		return &BigMap{}, nil
	}
	id, ok := new(big.Int).SetString(node.Int, 10)
	if !ok {
		return &BigMap{}, nil
	}

	schema, err := factory.StorageSchema(valueType)
	if err != nil {
		return nil, err
	}

	return &BigMap{
		id:     id,
		schema: schema,
		client: client,
	}, nil
}

// ID returns the big-map identifier, or nil for a detached reference.
func (b *BigMap) ID() *big.Int {
	return b.id
}

// Detached returns true if the reference carries no on-chain identifier.
func (b *BigMap) Detached() bool {
	return b.id == nil
}

// Get fetches and decodes the value stored under key, delegating to the
// storage query capability with the captured identifier and schema.
func (b *BigMap) Get(ctx context.Context, key any) (any, error) {
	if b.id == nil {
		return nil, ErrDetachedBigMap
	}
	return b.client.BigMapValueByID(ctx, b.id, key, b.schema)
}
