package tzkit

import (
	"context"
	"math/big"
	"sync"
)

// fakeChain serves account counters from a fixed map and records how often
// each account was fetched.
type fakeChain struct {
	mu       sync.Mutex
	counters map[string]*big.Int
	err      error
	fetches  map[string]int
}

func (f *fakeChain) Counter(_ context.Context, account string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetches == nil {
		f.fetches = make(map[string]int)
	}
	f.fetches[account]++
	if f.err != nil {
		return nil, f.err
	}
	return f.counters[account], nil
}

func (f *fakeChain) fetchCount(account string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[account]
}

// fakeSchema is a canned ParameterSchema recording every Encode call.
type fakeSchema struct {
	desc     any
	multiple bool
	value    *Expr
	err      error
	encoded  [][]any
}

func (s *fakeSchema) ExtractSchema() any { return s.desc }

func (s *fakeSchema) IsMultipleEntrypoint() bool { return s.multiple }

func (s *fakeSchema) Encode(args ...any) (*Expr, error) {
	s.encoded = append(s.encoded, args)
	if s.err != nil {
		return nil, s.err
	}
	return s.value, nil
}

// fakeStorageSchema is a canned StorageSchema.
type fakeStorageSchema struct {
	ty *Expr
}

func (s *fakeStorageSchema) ExtractSchema() any { return s.ty }

// bigMapCall records one storage or big-map query.
type bigMapCall struct {
	address string
	id      *big.Int
	key     any
	schema  StorageSchema
}

// fakeBackend implements Backend. Parameter schemas are looked up by type
// expression identity, matching how the Contract hands back the exact
// pointers it was built from.
type fakeBackend struct {
	params     map[*Expr]*fakeSchema
	paramErr   error
	storageErr error

	transfers   []TransferRequest
	transferOp  *Operation
	transferErr error

	storageValue any
	storageCalls []bigMapCall
	bigMapValue  any
	bigMapCalls  []bigMapCall
}

func (b *fakeBackend) ParameterSchema(ty *Expr) (ParameterSchema, error) {
	if b.paramErr != nil {
		return nil, b.paramErr
	}
	if s, ok := b.params[ty]; ok {
		return s, nil
	}
	return &fakeSchema{}, nil
}

func (b *fakeBackend) StorageSchema(ty *Expr) (StorageSchema, error) {
	if b.storageErr != nil {
		return nil, b.storageErr
	}
	return &fakeStorageSchema{ty: ty}, nil
}

func (b *fakeBackend) Transfer(_ context.Context, req TransferRequest) (*Operation, error) {
	b.transfers = append(b.transfers, req)
	if b.transferErr != nil {
		return nil, b.transferErr
	}
	if b.transferOp != nil {
		return b.transferOp, nil
	}
	return &Operation{Hash: "oo6chaiyo"}, nil
}

func (b *fakeBackend) Storage(_ context.Context, address string, schema StorageSchema) (any, error) {
	b.storageCalls = append(b.storageCalls, bigMapCall{address: address, schema: schema})
	return b.storageValue, nil
}

func (b *fakeBackend) BigMapValue(_ context.Context, address string, key any, schema StorageSchema) (any, error) {
	b.bigMapCalls = append(b.bigMapCalls, bigMapCall{address: address, key: key, schema: schema})
	return b.bigMapValue, nil
}

func (b *fakeBackend) BigMapValueByID(_ context.Context, id *big.Int, key any, schema StorageSchema) (any, error) {
	b.bigMapCalls = append(b.bigMapCalls, bigMapCall{id: id, key: key, schema: schema})
	return b.bigMapValue, nil
}

// testScript builds a minimal script with parameter and storage sections.
func testScript(paramTy, storageTy *Expr) *Script {
	return &Script{
		Code: []*Expr{
			Prim("parameter", paramTy),
			Prim("storage", storageTy),
			Prim("code", Seq()),
		},
		Storage: Prim("Unit"),
	}
}

const (
	testContractAddr = "KT1BEqzn5Wx8uJrZNvuS9DVHmLvG9td3fDLi"
	testSourceAddr   = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
)
