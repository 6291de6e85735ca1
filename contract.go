package tzkit

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
)

const (
	// DefaultMethodName is the name under which a contract without named
	// entrypoints exposes its single method.
	DefaultMethodName = "main"

	// DefaultEntrypoint is the entrypoint addressed when a contract does
	// not route calls by name.
	DefaultEntrypoint = "default"
)

// dispatchStyle selects how a Contract builds and addresses its methods.
// Exactly one style is chosen at construction and never re-evaluated.
type dispatchStyle uint8

const (
	// dispatchEntrypoints builds methods from the node's explicit
	// entrypoint metadata.
	dispatchEntrypoints dispatchStyle = iota

	// dispatchLegacy builds methods from the parameter schema alone, for
	// protocols that predate entrypoint metadata.
	dispatchLegacy
)

// methodSpec describes one invocable entrypoint in the contract's method
// table.
type methodSpec struct {
	name string

	// ty is the entrypoint's parameter type expression. Set only for the
	// entrypoint dispatch style with a non-empty entrypoint map; a fresh
	// schema is scoped to it per invocation.
	ty *Expr

	// multiple marks the contract as exposing several named entrypoints,
	// which decides how the outgoing request is addressed.
	multiple bool
}

// Contract wraps an on-chain contract's interface as a set of named,
// schema-validated methods. Immutable after construction.
type Contract struct {
	address       string
	script        *Script
	backend       Backend
	storageSchema StorageSchema
	paramSchema   ParameterSchema
	entrypoints   map[string]*Expr // nil in legacy style
	style         dispatchStyle
	methods       map[string]methodSpec
}

// NewContract builds a Contract from a fetched script. Pass the node's
// entrypoint metadata with WithEntrypoints when the protocol serves it;
// without it the contract uses the legacy dispatch style.
func NewContract(address string, script *Script, backend Backend, opts ...ContractOption) (*Contract, error) {
	if script == nil {
		return nil, ErrNilScript
	}

	cfg := defaultContractConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	paramTy, ok := script.section("parameter")
	if !ok {
		return nil, &ScriptError{Section: "parameter"}
	}
	storageTy, ok := script.section("storage")
	if !ok {
		return nil, &ScriptError{Section: "storage"}
	}

	paramSchema, err := backend.ParameterSchema(paramTy)
	if err != nil {
		return nil, err
	}
	storageSchema, err := backend.StorageSchema(storageTy)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		address:       address,
		script:        script,
		backend:       backend,
		storageSchema: storageSchema,
		paramSchema:   paramSchema,
	}

	if cfg.entrypoints != nil {
		c.style = dispatchEntrypoints
		c.entrypoints = cfg.entrypoints.Entrypoints
		c.methods = entrypointMethods(c.entrypoints)
	} else {
		c.style = dispatchLegacy
		c.methods = legacyMethods(paramSchema)
	}

	cfg.log.Debug().
		Str("contract", address).
		Int("methods", len(c.methods)).
		Bool("legacy", c.style == dispatchLegacy).
		Msg("built contract method table")

	return c, nil
}

// entrypointMethods builds the method table from explicit entrypoint
// metadata. An empty map yields the single default method.
func entrypointMethods(entrypoints map[string]*Expr) map[string]methodSpec {
	if len(entrypoints) == 0 {
		return map[string]methodSpec{
			DefaultMethodName: {name: DefaultMethodName},
		}
	}

	methods := make(map[string]methodSpec, len(entrypoints))
	for name, ty := range entrypoints {
		methods[name] = methodSpec{name: name, ty: ty, multiple: true}
	}
	return methods
}

// legacyMethods builds the method table from the global parameter schema:
// one method per entrypoint the schema itself reports, or the single
// default method.
func legacyMethods(schema ParameterSchema) map[string]methodSpec {
	if schema.IsMultipleEntrypoint() {
		if desc, ok := schema.ExtractSchema().(map[string]any); ok {
			methods := make(map[string]methodSpec, len(desc))
			for name := range desc {
				methods[name] = methodSpec{name: name, multiple: true}
			}
			return methods
		}
	}
	return map[string]methodSpec{
		DefaultMethodName: {name: DefaultMethodName},
	}
}

// Address returns the contract address.
func (c *Contract) Address() string {
	return c.address
}

// Script returns the contract script the Contract was built from.
func (c *Contract) Script() *Script {
	return c.script
}

// ParameterSchema returns the contract's global parameter schema.
func (c *Contract) ParameterSchema() ParameterSchema {
	return c.paramSchema
}

// StorageSchema returns the contract's storage schema.
func (c *Contract) StorageSchema() StorageSchema {
	return c.storageSchema
}

// Entrypoints returns the explicit entrypoint map, or nil for legacy-style
// contracts.
func (c *Contract) Entrypoints() map[string]*Expr {
	return c.entrypoints
}

// HasMethod returns true if the contract exposes a method with the given
// name.
func (c *Contract) HasMethod(name string) bool {
	_, ok := c.methods[name]
	return ok
}

// MethodNames returns the names of all exposed methods, sorted.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Method invokes the named method with the given arguments, validating the
// argument count against the entrypoint's schema. On success it returns an
// ephemeral method object carrying everything needed to produce one
// transfer request.
//
// Validation happens here, at call construction, not at contract
// construction: the error names the entrypoint, the received and expected
// counts, and the expected keys.
func (c *Contract) Method(name string, args ...any) (Method, error) {
	spec, ok := c.methods[name]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.address, Method: name}
	}

	switch c.style {
	case dispatchEntrypoints:
		schema := c.paramSchema
		if spec.ty != nil {
			var err error
			schema, err = c.backend.ParameterSchema(spec.ty)
			if err != nil {
				return nil, err
			}
		}
		if err := validateArity(name, schema.ExtractSchema(), args); err != nil {
			return nil, err
		}
		return &ContractMethod{
			submitter: c.backend,
			address:   c.address,
			schema:    schema,
			name:      name,
			args:      args,
			multiple:  spec.multiple,
		}, nil

	default: // dispatchLegacy
		desc := c.paramSchema.ExtractSchema()
		if spec.multiple {
			if byName, ok := desc.(map[string]any); ok {
				desc = byName[name]
			}
		}
		if err := validateArity(name, desc, args); err != nil {
			return nil, err
		}
		return &LegacyContractMethod{
			submitter: c.backend,
			address:   c.address,
			schema:    c.paramSchema,
			name:      name,
			args:      args,
		}, nil
	}
}

// MustMethod is like Method but panics on error.
func (c *Contract) MustMethod(name string, args ...any) Method {
	m, err := c.Method(name, args...)
	if err != nil {
		panic(err)
	}
	return m
}

// Storage fetches and decodes the contract's current storage through its
// storage schema.
func (c *Contract) Storage(ctx context.Context) (any, error) {
	return c.backend.Storage(ctx, c.address, c.storageSchema)
}

// BigMapValue fetches and decodes one big-map entry by key through the
// contract's storage schema.
func (c *Contract) BigMapValue(ctx context.Context, key any) (any, error) {
	return c.backend.BigMapValue(ctx, c.address, key, c.storageSchema)
}

// validateArity checks the argument count against a schema's extracted
// type description. A keyed map expects one argument per key; any other
// description expects exactly one argument. The rule is deliberately loose
// for schemas whose single argument is itself a nested composite; keyed
// descriptions dominate in practice.
func validateArity(entrypoint string, desc any, args []any) error {
	want := 1
	var keys []string
	if byKey, ok := desc.(map[string]any); ok {
		want = len(byKey)
		keys = make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	if len(args) != want {
		return &ArityError{
			Entrypoint: entrypoint,
			Got:        len(args),
			Want:       want,
			Keys:       keys,
		}
	}
	return nil
}

// contractConfig holds construction options for NewContract.
type contractConfig struct {
	entrypoints *Entrypoints
	log         zerolog.Logger
}

func defaultContractConfig() *contractConfig {
	return &contractConfig{log: zerolog.Nop()}
}
