package tzkit

import (
	"context"
	"math/big"
)

// SendOptions carries the optional limits attached to a method call.
// Amount defaults to zero when nil.
type SendOptions struct {
	Fee          *big.Int
	GasLimit     *big.Int
	StorageLimit *big.Int
	Amount       *big.Int
}

func (o SendOptions) amount() *big.Int {
	if o.Amount != nil {
		return o.Amount
	}
	return new(big.Int)
}

// Method is a validated, invocable contract call. Implementations are
// ephemeral: each one is built fresh per invocation and carries just
// enough state to produce one transfer request.
type Method interface {
	// Name returns the method's entrypoint name.
	Name() string

	// TransferParams encodes the captured arguments through the bound
	// schema and returns the resulting transfer request without
	// submitting it.
	TransferParams(opts SendOptions) (TransferRequest, error)

	// Send builds the transfer request and hands it to the submission
	// capability, returning its result verbatim.
	Send(ctx context.Context, opts SendOptions) (*Operation, error)
}

// ContractMethod is a method of a contract using the entrypoint dispatch
// style: the schema is scoped to one entrypoint, and the outgoing request
// is addressed by entrypoint name.
type ContractMethod struct {
	submitter Submitter
	address   string
	schema    ParameterSchema
	name      string
	args      []any
	multiple  bool
}

// Name returns the method's entrypoint name.
func (m *ContractMethod) Name() string {
	return m.name
}

// TransferParams encodes the captured arguments and builds the transfer
// request. The parameter's entrypoint is the method name when the contract
// exposes multiple entrypoints, the fixed default name otherwise; the value
// is exactly the schema-encoded arguments, marked pre-encoded.
func (m *ContractMethod) TransferParams(opts SendOptions) (TransferRequest, error) {
	value, err := m.schema.Encode(m.args...)
	if err != nil {
		return TransferRequest{}, &EncodingError{Entrypoint: m.name, Err: err}
	}

	entrypoint := DefaultEntrypoint
	if m.multiple {
		entrypoint = m.name
	}

	return TransferRequest{
		To:           m.address,
		Amount:       opts.amount(),
		Fee:          opts.Fee,
		GasLimit:     opts.GasLimit,
		StorageLimit: opts.StorageLimit,
		Parameter: &TransactionParameters{
			Entrypoint: entrypoint,
			Value:      value,
		},
		RawParam: true,
	}, nil
}

// Send builds the transfer request and submits it.
func (m *ContractMethod) Send(ctx context.Context, opts SendOptions) (*Operation, error) {
	req, err := m.TransferParams(opts)
	if err != nil {
		return nil, err
	}
	return m.submitter.Transfer(ctx, req)
}

// LegacyContractMethod is a method of a contract using the legacy dispatch
// style, where the contract's single global schema encodes both routing
// and payload.
type LegacyContractMethod struct {
	submitter Submitter
	address   string
	schema    ParameterSchema
	name      string
	args      []any
}

// Name returns the method's entrypoint name.
func (m *LegacyContractMethod) Name() string {
	return m.name
}

// TransferParams encodes the captured arguments and builds the transfer
// request. When the schema itself routes by entrypoint, the method name is
// passed as a leading selector argument so the encoded value already
// combines routing and payload.
func (m *LegacyContractMethod) TransferParams(opts SendOptions) (TransferRequest, error) {
	var value *Expr
	var err error
	if m.schema.IsMultipleEntrypoint() {
		value, err = m.schema.Encode(append([]any{m.name}, m.args...)...)
	} else {
		value, err = m.schema.Encode(m.args...)
	}
	if err != nil {
		return TransferRequest{}, &EncodingError{Entrypoint: m.name, Err: err}
	}

	return TransferRequest{
		To:           m.address,
		Amount:       opts.amount(),
		Fee:          opts.Fee,
		GasLimit:     opts.GasLimit,
		StorageLimit: opts.StorageLimit,
		Parameter: &TransactionParameters{
			Entrypoint: DefaultEntrypoint,
			Value:      value,
		},
		RawParam: true,
	}, nil
}

// Send builds the transfer request and submits it.
func (m *LegacyContractMethod) Send(ctx context.Context, opts SendOptions) (*Operation, error) {
	req, err := m.TransferParams(opts)
	if err != nil {
		return nil, err
	}
	return m.submitter.Transfer(ctx, req)
}
