package tzkit

import (
	"encoding/json"
	"math/big"
)

// Expr is one node of a Micheline expression in its JSON form. The library
// carries expressions opaquely - between the node that served them and the
// schema capability that encodes or decodes them - and only ever inspects
// the few fields called out below (script section prims, big-map integer
// identifiers).
type Expr struct {
	Prim   string   `json:"prim,omitempty"`
	Int    string   `json:"int,omitempty"`
	String *string  `json:"string,omitempty"`
	Bytes  string   `json:"bytes,omitempty"`
	Args   []*Expr  `json:"args,omitempty"`
	Annots []string `json:"annots,omitempty"`

	// Seq holds the elements when the node is a sequence. Sequences are
	// plain JSON arrays on the wire, so marshaling is overridden below.
	Seq []*Expr `json:"-"`
}

// exprObject mirrors Expr without its method set, for un/marshaling the
// object form.
type exprObject Expr

// UnmarshalJSON accepts both the object form and the sequence (array) form.
func (e *Expr) UnmarshalJSON(data []byte) error {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			var seq []*Expr
			if err := json.Unmarshal(data, &seq); err != nil {
				return err
			}
			*e = Expr{Seq: seq}
			return nil
		}
		break
	}
	var obj exprObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*e = Expr(obj)
	return nil
}

// MarshalJSON emits the sequence form when Seq is set, the object form
// otherwise.
func (e *Expr) MarshalJSON() ([]byte, error) {
	if e.Seq != nil {
		return json.Marshal(e.Seq)
	}
	return json.Marshal((*exprObject)(e))
}

// IsSeq returns true if the node is a sequence.
func (e *Expr) IsSeq() bool {
	return e.Seq != nil
}

// Prim builds a primitive application node.
func Prim(prim string, args ...*Expr) *Expr {
	return &Expr{Prim: prim, Args: args}
}

// IntExpr builds an integer literal node.
func IntExpr(v *big.Int) *Expr {
	return &Expr{Int: v.String()}
}

// StringExpr builds a string literal node.
func StringExpr(s string) *Expr {
	return &Expr{String: &s}
}

// Seq builds a sequence node.
func Seq(elems ...*Expr) *Expr {
	if elems == nil {
		elems = []*Expr{}
	}
	return &Expr{Seq: elems}
}

// Script is a contract's code and current storage value as served by the
// node. Code is the toplevel sequence holding the parameter, storage and
// code declarations.
type Script struct {
	Code    []*Expr `json:"code"`
	Storage *Expr   `json:"storage"`
}

// section returns the argument of the named toplevel declaration
// ("parameter" or "storage").
func (s *Script) section(name string) (*Expr, bool) {
	if s == nil {
		return nil, false
	}
	for _, e := range s.Code {
		if e != nil && e.Prim == name && len(e.Args) > 0 {
			return e.Args[0], true
		}
	}
	return nil, false
}

// Entrypoints is the node's explicit entrypoint metadata for a contract:
// entrypoint name to parameter type expression. Protocols before entrypoint
// support do not serve it, which selects the legacy dispatch style.
type Entrypoints struct {
	Entrypoints map[string]*Expr `json:"entrypoints"`
}
