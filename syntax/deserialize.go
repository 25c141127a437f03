package syntax

import (
	"fmt"
	"strings"

	"github.com/kurogane/wam/engine"
)

// BadCellReadError is reported when deserialization dereferences or
// indexes an address with no backing cell.
type BadCellReadError struct {
	Ref engine.CellRef
}

func (e BadCellReadError) Error() string {
	return fmt.Sprintf("bad cell read at %v", e.Ref)
}

// NotASigError is reported when an Rcd cell's target is not a functor
// cell: a heap layout violation, caused either by a serializer bug or
// by operator-corrupted cells.
type NotASigError struct {
	Ref engine.CellRef
}

func (e NotASigError) Error() string {
	return fmt.Sprintf("expected Rcd to point to a Sig at %v", e.Ref)
}

// SigNotAValueError is reported when a functor marker is treated as a
// term.
type SigNotAValueError struct {
	Ref engine.CellRef
}

func (e SigNotAValueError) Error() string {
	return fmt.Sprintf("a Sig is not a value: %v", e.Ref)
}

// Deserialize walks heap cells starting at root and reconstructs a
// Term. Layout violations are surfaced to the caller, never patched or
// defaulted: the root may be an operator-supplied or corrupted address.
func Deserialize(m *engine.Mem, root engine.CellRef) (Term, error) {
	c, ok := m.TryCellRead(root)
	if !ok {
		return nil, BadCellReadError{Ref: root}
	}
	switch c := c.(type) {
	case engine.Nil:
		return Nil{}, nil
	case engine.Ref:
		target, ok := m.TryCellRead(c.Target)
		if !ok {
			return nil, BadCellReadError{Ref: c.Target}
		}
		if r, isRef := target.(engine.Ref); isRef && r.Target == c.Target {
			// Unbound. Named variables keep their display name;
			// synthesized and underscore names come back anonymous.
			name := m.VarName(c.Target)
			if strings.HasPrefix(name, "_") {
				return Var(""), nil
			}
			return Var(name), nil
		}
		return Deserialize(m, c.Target)
	case engine.Rcd:
		sig, ok := m.TryCellRead(c.Sig)
		if !ok {
			return nil, BadCellReadError{Ref: c.Sig}
		}
		f, isSig := sig.(engine.Sig)
		if !isSig {
			return nil, NotASigError{Ref: c.Sig}
		}
		args := make([]Term, int(f.Arity))
		for i := range args {
			arg, err := Deserialize(m, c.Sig.Add(1+i))
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Record{Functor: m.SymName(f.Name), Args: args}, nil
	case engine.Int:
		return Int(c), nil
	case engine.Atom:
		return Atom(m.SymName(engine.Sym(c))), nil
	case engine.Sig:
		return nil, SigNotAValueError{Ref: root}
	case engine.Lst:
		car, err := Deserialize(m, c.Car)
		if err != nil {
			return nil, err
		}
		cdr, err := Deserialize(m, c.Car.Add(1))
		if err != nil {
			return nil, err
		}
		return &Cons{Car: car, Cdr: cdr}, nil
	default:
		panic(fmt.Sprintf("syntax: Deserialize: unhandled cell %T (%v)", c, c))
	}
}
