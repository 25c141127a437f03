package syntax

import (
	"fmt"

	"github.com/kurogane/wam/engine"
)

// Placeholder target for compound cells whose body has not been pushed
// yet. Always patched before Serialize returns.
const unpatched = engine.CellRef(-1)

// Serialize lowers one term into fresh heap cells and returns the
// address of its root. Serializing a well-formed term cannot fail.
//
// Lowering is two-phase. The flatten pass pushes one cell per node at
// the current level, leaving a placeholder for each compound and
// queueing its body. The remainder pass drains the queue, pushing each
// record's functor cell immediately followed by its flattened arguments
// and each cons's car immediately followed by its cdr, then patches the
// placeholder. This guarantees the contiguous layouts the rest of the
// system navigates by address arithmetic; a naive depth-first lowering
// would interleave sibling subterms and break them.
func Serialize(t Term, m *engine.Mem) engine.CellRef {
	var s serializer
	start := engine.CellRef(m.Len())
	s.flatten(t, m)
	for len(s.remaining) > 0 {
		s.remainder(m)
	}
	return start
}

type serializer struct {
	remaining []body
}

// body is a queued compound body: either a record's functor and
// arguments, or a cons's halves.
type body struct {
	at       engine.CellRef // placeholder cell to patch
	functor  engine.Functor
	args     []Term
	car, cdr Term
	isCons   bool
}

func (s *serializer) flatten(t Term, m *engine.Mem) {
	switch t := t.(type) {
	case Int:
		m.Push(engine.Int(t))
	case Atom:
		m.Push(engine.Atom(m.InternSym(string(t))))
	case Var:
		if t == "" {
			m.PushFreshVar()
		} else {
			m.PushVar(string(t))
		}
	case Nil:
		m.Push(engine.Nil{})
	case *Record:
		at := m.Push(engine.Rcd{Sig: unpatched})
		s.remaining = append(s.remaining, body{
			at:      at,
			functor: m.InternFunctor(t.Functor, uint8(len(t.Args))),
			args:    t.Args,
		})
	case *Cons:
		at := m.Push(engine.Lst{Car: unpatched})
		s.remaining = append(s.remaining, body{
			at:     at,
			car:    t.Car,
			cdr:    t.Cdr,
			isCons: true,
		})
	default:
		panic(fmt.Sprintf("syntax: Serialize: unhandled term %T (%v)", t, t))
	}
}

// remainder drains one batch of queued bodies. Flattening an argument
// may queue further bodies, picked up by the next batch.
func (s *serializer) remainder(m *engine.Mem) {
	batch := s.remaining
	s.remaining = nil
	for _, tb := range batch {
		if tb.isCons {
			car := engine.CellRef(m.Len())
			s.flatten(tb.car, m)
			// The cdr lands at car+1: nothing else is pushed between.
			s.flatten(tb.cdr, m)
			m.CellWrite(tb.at, engine.Lst{Car: car})
			continue
		}
		sig := m.Push(engine.Sig(tb.functor))
		for _, arg := range tb.args {
			s.flatten(arg, m)
		}
		m.CellWrite(tb.at, engine.Rcd{Sig: sig})
	}
}
