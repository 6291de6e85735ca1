package tzkit

import (
	"context"
	"math/big"
	"sync"
)

// Counter tracks the next valid operation counter for one account within a
// preparation session. The first Next fetches the account's current counter
// from the chain as a baseline; every later Next advances purely in memory.
//
// A Counter assumes sequential Next calls: operations sharing a source
// account must be prepared in input order, one at a time. That ordering is
// the correctness mechanism for monotonicity - see Preparer.
type Counter struct {
	account string
	client  ChainClient
	value   *big.Int // nil until the baseline fetch succeeds
}

// Account returns the owning account identifier.
func (c *Counter) Account() string {
	return c.account
}

// Next returns the next counter value for the account, strictly greater
// than every value previously returned by this Counter.
//
// On the first call the baseline is fetched from the chain (zero for
// accounts unknown to it). A fetch failure propagates without caching
// anything, so a retry re-attempts the fetch.
func (c *Counter) Next(ctx context.Context) (*big.Int, error) {
	if c.value == nil {
		baseline, err := c.client.Counter(ctx, c.account)
		if err != nil {
			return nil, &CounterError{Account: c.account, Err: err}
		}
		if baseline == nil {
			baseline = new(big.Int)
		}
		c.value = new(big.Int).Set(baseline)
	}
	c.value.Add(c.value, bigOne)
	return new(big.Int).Set(c.value), nil
}

var bigOne = big.NewInt(1)

// CounterProvider owns the account-to-Counter mapping for one preparation
// session. At most one Counter exists per account; repeated For calls
// return the same instance.
//
// The provider is caller-owned: use a fresh one per session unless
// cross-batch counter continuity is explicitly wanted. After a failed or
// cancelled batch, Reset the affected account (or drop the provider) so the
// next use refetches from the chain instead of resuming stale state.
//
// Map operations are safe for concurrent use so that batches for distinct
// accounts may share a provider; the Counters themselves are not
// synchronized and rely on per-account serialization.
type CounterProvider struct {
	client ChainClient

	mu       sync.Mutex
	counters map[string]*Counter
}

// NewCounterProvider creates an empty provider reading baselines through
// the given client.
func NewCounterProvider(client ChainClient) *CounterProvider {
	return &CounterProvider{
		client:   client,
		counters: make(map[string]*Counter),
	}
}

// For returns the account's Counter, creating it on first reference.
func (p *CounterProvider) For(account string) *Counter {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.counters[account]
	if !ok {
		c = &Counter{account: account, client: p.client}
		p.counters[account] = c
	}
	return c
}

// Reset drops the account's cached Counter, forcing re-initialization from
// the chain on next use.
func (p *CounterProvider) Reset(account string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.counters, account)
}

// ResetAll drops every cached Counter.
func (p *CounterProvider) ResetAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counters = make(map[string]*Counter)
}

// Len returns the number of accounts with a cached Counter.
func (p *CounterProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.counters)
}
