package tzkit

import "github.com/rs/zerolog"

// PreparerOption configures a Preparer.
type PreparerOption func(*Preparer)

// WithLogger sets the logger used for preparation debug events.
// Default is a no-op logger.
func WithLogger(log zerolog.Logger) PreparerOption {
	return func(p *Preparer) {
		p.log = log
	}
}

// WithCounterProvider makes the Preparer use an existing provider instead
// of a fresh one, carrying counter state across batches. Use only when
// cross-batch counter continuity is wanted; a stale provider left over
// from a failed batch will hand out stale counters.
func WithCounterProvider(counters *CounterProvider) PreparerOption {
	return func(p *Preparer) {
		p.counters = counters
	}
}

// ContractOption configures NewContract.
type ContractOption func(*contractConfig)

// WithEntrypoints supplies the node's explicit entrypoint metadata,
// selecting the entrypoint dispatch style. Passing metadata with an empty
// map still selects it; omitting the option selects the legacy style.
func WithEntrypoints(entrypoints *Entrypoints) ContractOption {
	return func(c *contractConfig) {
		c.entrypoints = entrypoints
	}
}

// WithContractLogger sets the logger used for contract construction debug
// events. Default is a no-op logger.
func WithContractLogger(log zerolog.Logger) ContractOption {
	return func(c *contractConfig) {
		c.log = log
	}
}
