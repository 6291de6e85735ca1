package tzkit

import (
	"context"
	"math/big"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// OpKind tags an operation request with its ledger kind.
type OpKind string

const (
	// OpKindActivation activates a commitment account. Not counter bearing.
	OpKindActivation OpKind = "activate_account"

	// OpKindReveal publishes a source account's public key.
	OpKindReveal OpKind = "reveal"

	// OpKindTransaction transfers funds and optionally invokes a contract.
	OpKindTransaction OpKind = "transaction"

	// OpKindOrigination deploys a new contract.
	OpKindOrigination OpKind = "origination"

	// OpKindDelegation sets or clears a delegate.
	OpKindDelegation OpKind = "delegation"
)

// RequiresCounter reports whether the ledger expects operations of this
// kind to carry a per-account counter.
func (k OpKind) RequiresCounter() bool {
	switch k {
	case OpKindReveal, OpKindTransaction, OpKindOrigination, OpKindDelegation:
		return true
	default:
		return false
	}
}

// OperationContents is one logical operation request in its RPC shape.
// Fields that don't apply to the request's kind stay zero and are omitted
// from the JSON form.
type OperationContents struct {
	Kind         OpKind                 `json:"kind"`
	Source       string                 `json:"source,omitempty"`
	Fee          *big.Int               `json:"fee,omitempty"`
	Counter      *big.Int               `json:"counter,omitempty"`
	GasLimit     *big.Int               `json:"gas_limit,omitempty"`
	StorageLimit *big.Int               `json:"storage_limit,omitempty"`
	Amount       *big.Int               `json:"amount,omitempty"`
	Destination  string                 `json:"destination,omitempty"`
	Parameters   *TransactionParameters `json:"parameters,omitempty"`
	PublicKey    string                 `json:"public_key,omitempty"`
	Delegate     string                 `json:"delegate,omitempty"`
	Balance      *big.Int               `json:"balance,omitempty"`
	Script       *Script                `json:"script,omitempty"`
	Pkh          string                 `json:"pkh,omitempty"`
	Secret       string                 `json:"secret,omitempty"`
}

// Preparer fills in counters for ordered operation batches. Requests in a
// batch are visited strictly in input order, each counter step completing
// before the next request is touched; that serialization, not locking, is
// what keeps counters monotonic per account.
type Preparer struct {
	counters *CounterProvider
	log      zerolog.Logger
}

// NewPreparer creates a Preparer with a fresh CounterProvider reading
// through the given client. Use WithCounterProvider to share counter state
// across batches instead.
func NewPreparer(client ChainClient, opts ...PreparerOption) *Preparer {
	p := &Preparer{
		counters: NewCounterProvider(client),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Counters returns the provider backing this Preparer, for Reset between
// retries.
func (p *Preparer) Counters() *CounterProvider {
	return p.counters
}

// Prepare annotates the batch's counter-bearing requests with strictly
// increasing counters from the source account's Counter, in input order.
// Other kinds pass through untouched. Output length and order equal the
// input's.
//
// Any chain-fetch failure aborts the whole batch: the error names the
// failing request and no partial result is returned. Callers that retry
// should Reset the source account first so the baseline is refetched.
func (p *Preparer) Prepare(ctx context.Context, source string, ops []OperationContents) ([]OperationContents, error) {
	counter := p.counters.For(source)

	p.log.Debug().
		Str("source", source).
		Int("ops", len(ops)).
		Msg("preparing batch")

	prepared := make([]OperationContents, len(ops))
	for i, op := range ops {
		if !op.Kind.RequiresCounter() {
			prepared[i] = op
			continue
		}

		next, err := counter.Next(ctx)
		if err != nil {
			return nil, &PrepareError{Index: i, Kind: op.Kind, Err: err}
		}

		op.Counter = next
		if op.Source == "" {
			op.Source = source
		}
		prepared[i] = op

		p.log.Debug().
			Str("source", source).
			Str("kind", string(op.Kind)).
			Str("counter", next.String()).
			Msg("assigned counter")
	}

	return prepared, nil
}

// PrepareAll prepares several single-source batches, keyed by source
// account, concurrently. Each batch owns its account's Counter for the
// duration, so per-account work stays serialized while unrelated accounts
// proceed in parallel. The first failure cancels the rest and the whole
// result is discarded.
func (p *Preparer) PrepareAll(ctx context.Context, batches map[string][]OperationContents) (map[string][]OperationContents, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[string][]OperationContents, len(batches))

	for source, ops := range batches {
		source, ops := source, ops
		g.Go(func() error {
			prepared, err := p.Prepare(ctx, source, ops)
			if err != nil {
				return err
			}
			mu.Lock()
			results[source] = prepared
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
