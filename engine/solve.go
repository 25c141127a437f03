package engine

import "fmt"

// Solver is the iterative unification strategy. It keeps an explicit
// worklist of address pairs still to compare, so native stack usage
// stays constant no matter how deep the terms are; the worklist itself
// grows with term size instead. That is the right trade-off for terms
// whose depth is input-controlled.
//
// A Solver is reused across unifications: Reset seeds the worklist and
// Run drives it to an answer. Callers that want a step budget call Step
// themselves and stop after N iterations; there is no other
// cancellation point.
type Solver struct {
	mem      *Mem
	worklist []pair
}

type pair struct {
	a, b CellRef
}

// NewSolver returns a Solver operating on m.
func NewSolver(m *Mem) *Solver {
	return &Solver{mem: m}
}

// Mem returns the heap the solver binds into.
func (s *Solver) Mem() *Mem {
	return s.mem
}

// Reset discards any in-progress work and seeds the worklist with the
// pair (a, b).
func (s *Solver) Reset(a, b CellRef) {
	s.worklist = s.worklist[:0]
	s.worklist = append(s.worklist, pair{a, b})
}

// Run steps until the unification started by Reset concludes, and
// reports whether it succeeded. As with Unify, bindings made before a
// failure stay in place.
func (s *Solver) Run() bool {
	for {
		done, ok := s.Step()
		if done {
			return ok
		}
	}
}

// Step pops one address pair and compares it, pushing argument pairs of
// matching compounds back onto the worklist instead of recursing. It
// returns done=true when the unification has concluded, with ok
// carrying the outcome. An empty worklist concludes successfully.
//
// Argument pairs are pushed in ascending offset order and popped LIFO,
// so they are compared in descending offset order. The order does not
// change the outcome, only which of several aliased variables is bound
// first; keeping it fixed keeps binding states reproducible.
func (s *Solver) Step() (done, ok bool) {
	n := len(s.worklist)
	if n == 0 {
		return true, true
	}
	p := s.worklist[n-1]
	s.worklist = s.worklist[:n-1]

	aRef, ac := s.mem.Resolve(p.a)
	bRef, bc := s.mem.Resolve(p.b)

	if _, isRef := ac.(Ref); isRef {
		s.mem.CellWrite(aRef, Ref{Target: bRef})
		return false, false
	}
	if _, isRef := bc.(Ref); isRef {
		s.mem.CellWrite(bRef, Ref{Target: aRef})
		return false, false
	}

	switch c1 := ac.(type) {
	case Int:
		c2, isInt := bc.(Int)
		return s.outcome(isInt && c1 == c2)
	case Atom:
		c2, isAtom := bc.(Atom)
		return s.outcome(isAtom && c1 == c2)
	case Sig:
		c2, isSig := bc.(Sig)
		return s.outcome(isSig && c1 == c2)
	case Nil:
		_, isNil := bc.(Nil)
		return s.outcome(isNil)
	case Lst:
		c2, isLst := bc.(Lst)
		if !isLst {
			return true, false
		}
		s.worklist = append(s.worklist,
			pair{c1.Car, c2.Car},
			pair{c1.Car.Add(1), c2.Car.Add(1)},
		)
		return false, false
	case Rcd:
		c2, isRcd := bc.(Rcd)
		if !isRcd {
			return true, false
		}
		f1, isSig := s.mem.CellRead(c1.Sig).(Sig)
		if !isSig {
			return true, false
		}
		f2, isSig := s.mem.CellRead(c2.Sig).(Sig)
		if !isSig {
			return true, false
		}
		if f1 != f2 {
			return true, false
		}
		for i := 0; i < int(f1.Arity); i++ {
			s.worklist = append(s.worklist, pair{c1.Sig.Add(1 + i), c2.Sig.Add(1 + i)})
		}
		return false, false
	default:
		panic(fmt.Sprintf("engine: Solver.Step: unhandled cell %T (%v)", ac, ac))
	}
}

// outcome translates a pairwise comparison into a step result: a
// mismatch concludes the whole unification, a match just continues.
func (s *Solver) outcome(matched bool) (done, ok bool) {
	if !matched {
		return true, false
	}
	return false, false
}
