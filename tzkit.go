// Package tzkit prepares Tezos ledger operations for signing and submission.
//
// The library covers the two steps between "a client decided what to do" and
// "a signed operation goes on the wire": assigning each source account a
// gap-free, strictly increasing counter across a batch of operations, and
// turning a smart contract's on-chain interface into callable, validated
// methods that produce encoded transfer requests.
//
// # Counter Sequencing
//
// A CounterProvider owns one Counter per source account for the life of a
// preparation session. Counters initialize lazily from the chain on first
// use and advance purely in memory afterwards:
//
//	provider := tzkit.NewCounterProvider(client)
//	preparer := tzkit.NewPreparer(client, tzkit.WithCounterProvider(provider))
//
//	prepared, err := preparer.Prepare(ctx, "tz1...", []tzkit.OperationContents{
//	    {Kind: tzkit.OpKindReveal, PublicKey: pk},
//	    {Kind: tzkit.OpKindTransaction, Destination: "tz1...", Amount: big.NewInt(100)},
//	})
//
// Counter-bearing operations (reveal, transaction, origination, delegation)
// receive strictly increasing counters in input order; other kinds pass
// through untouched. A failed chain fetch aborts the whole batch.
//
// # Contract Methods
//
// A Contract is built from a fetched script, plus the node's entrypoint
// metadata when available. Each entrypoint becomes a named method; invoking
// one validates argument count against the entrypoint's schema and yields an
// object whose Send produces a transfer request with the parameter value
// already encoded:
//
//	contract, err := tzkit.NewContract(addr, script, backend,
//	    tzkit.WithEntrypoints(entrypoints))
//
//	method, err := contract.Method("transfer", to, big.NewInt(5))
//	op, err := method.Send(ctx, tzkit.SendOptions{})
//
// Contracts without entrypoint metadata use the legacy dispatch style, where
// routing is folded into the encoded value itself. The style is chosen once
// at construction and never re-evaluated.
//
// # External Collaborators
//
// The wire transport, the parameter encoding scheme, signing, and broadcast
// are all consumed through interfaces (ChainClient, SchemaFactory,
// Submitter, StorageClient) and never implemented here. Big-map storage
// nodes decode to lazy references that perform no I/O until a key is
// requested.
package tzkit
