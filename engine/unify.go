package engine

import "fmt"

// Unify reports whether the terms rooted at a and b can be made equal
// by binding variables, writing any bindings into m. Bindings made
// before a failure are left in place: there is no trail, so callers
// that need to retry must snapshot heap state themselves.
//
// This is the recursive strategy. It is the simplest to read but
// consumes native stack proportional to term depth; prefer Solver when
// the depth of the input is not under your control.
func Unify(m *Mem, a, b CellRef) bool {
	aRef, ac := m.Resolve(a)
	bRef, bc := m.Resolve(b)

	// A Ref surviving Resolve is an unbound variable. Binding an
	// unbound pair always points the first at the second.
	if _, ok := ac.(Ref); ok {
		m.CellWrite(aRef, Ref{Target: bRef})
		return true
	}
	if _, ok := bc.(Ref); ok {
		m.CellWrite(bRef, Ref{Target: aRef})
		return true
	}

	switch c1 := ac.(type) {
	case Int:
		c2, ok := bc.(Int)
		return ok && c1 == c2
	case Atom:
		c2, ok := bc.(Atom)
		return ok && c1 == c2
	case Sig:
		// Functor markers are not values, but raw addresses handed in
		// by the operator can land on one.
		c2, ok := bc.(Sig)
		return ok && c1 == c2
	case Nil:
		_, ok := bc.(Nil)
		return ok
	case Lst:
		c2, ok := bc.(Lst)
		if !ok {
			return ok
		}
		if !Unify(m, c1.Car, c2.Car) {
			return false
		}
		return Unify(m, c1.Car.Add(1), c2.Car.Add(1))
	case Rcd:
		c2, ok := bc.(Rcd)
		if !ok {
			return ok
		}
		f1, ok := m.CellRead(c1.Sig).(Sig)
		if !ok {
			return false
		}
		f2, ok := m.CellRead(c2.Sig).(Sig)
		if !ok {
			return false
		}
		if f1 != f2 {
			return false
		}
		for i := 0; i < int(f1.Arity); i++ {
			if !Unify(m, c1.Sig.Add(1+i), c2.Sig.Add(1+i)) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("engine: Unify: unhandled cell %T (%v)", ac, ac))
	}
}
