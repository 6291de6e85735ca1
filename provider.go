package tzkit

import (
	"context"
	"math/big"
)

// ChainClient reads per-account state from a ledger node.
type ChainClient interface {
	// Counter returns the account's current counter. Accounts unknown to
	// the chain report zero; a nil result is treated as zero.
	Counter(ctx context.Context, account string) (*big.Int, error)
}

// ParameterSchema is the external encoding capability for one parameter
// type: an arity/type description plus an encode operation producing the
// wire-format value.
type ParameterSchema interface {
	// ExtractSchema returns the decoded type description. A keyed map
	// describes a composite parameter (one key per field or entrypoint);
	// anything else describes a single positional argument.
	ExtractSchema() any

	// Encode translates positional call arguments into the wire-format
	// Micheline value.
	Encode(args ...any) (*Expr, error)

	// IsMultipleEntrypoint reports whether the schema's type carries
	// multiple named entrypoints (legacy or-routed parameter).
	IsMultipleEntrypoint() bool
}

// StorageSchema is the external decoding capability for a storage type.
// It is held locally and handed back to the storage query capability,
// which uses it to materialize decoded values.
type StorageSchema interface {
	// ExtractSchema returns the decoded type description.
	ExtractSchema() any
}

// SchemaFactory builds schema capabilities from Micheline type expressions.
type SchemaFactory interface {
	ParameterSchema(ty *Expr) (ParameterSchema, error)
	StorageSchema(ty *Expr) (StorageSchema, error)
}

// TransactionParameters is the parameter payload of a transaction
// operation: the target entrypoint plus the encoded argument value.
type TransactionParameters struct {
	Entrypoint string `json:"entrypoint"`
	Value      *Expr  `json:"value"`
}

// TransferRequest describes one transfer operation handed to the
// submission capability. When RawParam is set the Parameter value is
// already wire-encoded and must bypass any default encoding the
// submission layer would otherwise apply.
type TransferRequest struct {
	To           string
	Amount       *big.Int
	Fee          *big.Int
	GasLimit     *big.Int
	StorageLimit *big.Int
	Parameter    *TransactionParameters
	RawParam     bool
}

// Operation is the handle returned by the submission capability for an
// injected operation. Its contents are returned verbatim; this library
// does not interpret them.
type Operation struct {
	Hash     string
	Contents []OperationContents
}

// Submitter is the external operation-submission capability.
type Submitter interface {
	Transfer(ctx context.Context, req TransferRequest) (*Operation, error)
}

// StorageClient is the external storage and big-map query capability. The
// caller supplies the schema used for decoding.
type StorageClient interface {
	// Storage fetches and decodes a contract's current storage.
	Storage(ctx context.Context, address string, schema StorageSchema) (any, error)

	// BigMapValue fetches and decodes one big-map entry by key, addressed
	// through the owning contract.
	BigMapValue(ctx context.Context, address string, key any, schema StorageSchema) (any, error)

	// BigMapValueByID fetches and decodes one big-map entry by key,
	// addressed by big-map identifier.
	BigMapValueByID(ctx context.Context, id *big.Int, key any, schema StorageSchema) (any, error)
}

// Backend bundles the external capabilities a Contract needs: schema
// construction, operation submission, and storage queries.
type Backend interface {
	SchemaFactory
	Submitter
	StorageClient
}
