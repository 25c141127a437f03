package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Mem owns the heap of cells and the symbol table backing Syms and
// Functors. It is created empty, grows monotonically through Push and
// interning for the lifetime of a session, and is exclusively owned by
// one engine instance at a time: no locking, no concurrent access.
type Mem struct {
	heap    []Cell
	symbols []string

	// Display names for variable cells, and the reverse mapping used
	// to share a named variable between serializations.
	varNames map[CellRef]string
	varRefs  map[string]CellRef
}

// NewMem returns an empty Mem.
func NewMem() *Mem {
	return &Mem{
		varNames: make(map[CellRef]string),
		varRefs:  make(map[string]CellRef),
	}
}

// Len returns the number of cells on the heap. The next pushed cell
// lands at CellRef(Len()).
func (m *Mem) Len() int {
	return len(m.heap)
}

// Push appends a cell and returns its address.
func (m *Mem) Push(c Cell) CellRef {
	m.heap = append(m.heap, c)
	return CellRef(len(m.heap) - 1)
}

// CellRead returns the cell at ref. It panics when ref is out of
// bounds: internal callers have already established the address is
// valid, so a violation is a programming error, not a recoverable
// condition. Callers that must tolerate operator-supplied addresses use
// TryCellRead.
func (m *Mem) CellRead(ref CellRef) Cell {
	if ref < 0 || int(ref) >= len(m.heap) {
		panic(fmt.Sprintf("engine: cell read out of bounds: %v (heap size %d)", ref, len(m.heap)))
	}
	return m.heap[ref]
}

// TryCellRead returns the cell at ref, or false when ref has no backing
// cell.
func (m *Mem) TryCellRead(ref CellRef) (Cell, bool) {
	if ref < 0 || int(ref) >= len(m.heap) {
		return nil, false
	}
	return m.heap[ref], true
}

// CellWrite overwrites the cell at ref. The heap is otherwise
// append-only: writing is reserved for patching a placeholder allocated
// earlier in the same serialization pass and for binding a variable
// during unification. Panics when ref is out of bounds.
func (m *Mem) CellWrite(ref CellRef, c Cell) {
	if ref < 0 || int(ref) >= len(m.heap) {
		panic(fmt.Sprintf("engine: cell write out of bounds: %v (heap size %d)", ref, len(m.heap)))
	}
	m.heap[ref] = c
}

// Resolve follows a chain of Ref cells starting at ref until it reaches
// either a self-referential Ref (an unbound variable, returned as-is)
// or a non-Ref cell, returned together with its address. This is the
// only sanctioned way to inspect a potentially-bound variable.
func (m *Mem) Resolve(ref CellRef) (CellRef, Cell) {
	for {
		c := m.CellRead(ref)
		r, ok := c.(Ref)
		if !ok || r.Target == ref {
			return ref, c
		}
		ref = r.Target
	}
}

// InternSym returns the identifier for text, interning it on first use.
// Lookup is a linear scan: symbol tables stay small and interning is
// rare next to unification volume.
func (m *Mem) InternSym(text string) Sym {
	for i, s := range m.symbols {
		if s == text {
			return Sym(i)
		}
	}
	m.symbols = append(m.symbols, text)
	return Sym(len(m.symbols) - 1)
}

// InternFunctor interns name and pairs it with arity.
func (m *Mem) InternFunctor(name string, arity uint8) Functor {
	return Functor{Name: m.InternSym(name), Arity: arity}
}

// SymName resolves a Sym back to its text. Panics on a Sym that was not
// produced by this Mem.
func (m *Mem) SymName(s Sym) string {
	if s < 0 || int(s) >= len(m.symbols) {
		panic(fmt.Sprintf("engine: unknown symbol %v (table size %d)", s, len(m.symbols)))
	}
	return m.symbols[s]
}

// Symbols returns the interned strings in interning order.
func (m *Mem) Symbols() []string {
	return m.symbols
}

// PushVar pushes a cell for the variable called name. The first
// occurrence of a name allocates an unbound self-referential Ref and
// registers the name; later occurrences push a Ref forwarding to the
// first, so that every mention of X in a Mem denotes the same variable.
func (m *Mem) PushVar(name string) CellRef {
	if target, ok := m.varRefs[name]; ok {
		return m.Push(Ref{Target: target})
	}
	ref := m.PushFreshVar()
	m.varNames[ref] = name
	m.varRefs[name] = ref
	return ref
}

// PushFreshVar pushes an unbound variable with no display name.
func (m *Mem) PushFreshVar() CellRef {
	ref := CellRef(len(m.heap))
	return m.Push(Ref{Target: ref})
}

// VarRef returns the cell of the variable called name, if one was ever
// pushed.
func (m *Mem) VarRef(name string) (CellRef, bool) {
	ref, ok := m.varRefs[name]
	return ref, ok
}

// VarName returns the human-readable name for the variable cell at ref:
// the name it was pushed under, or a synthesized "_<address>" for fresh
// variables.
func (m *Mem) VarName(ref CellRef) string {
	if name, ok := m.varNames[ref]; ok {
		return name
	}
	return "_" + strconv.Itoa(int(ref))
}

// FormatCell renders a single cell with symbols resolved, without
// following references. For whole terms use FormatTerm.
func (m *Mem) FormatCell(c Cell) string {
	switch c := c.(type) {
	case Ref, Rcd, Int, Lst, Nil:
		return c.String()
	case Atom:
		return m.SymName(Sym(c))
	case Sig:
		return fmt.Sprintf("%s/%d", m.SymName(c.Name), c.Arity)
	default:
		panic(fmt.Sprintf("engine: FormatCell: unhandled cell %T (%v)", c, c))
	}
}

// FormatTerm renders the term rooted at ref in surface syntax,
// following bound variables. The address must hold a valid term layout;
// use the deserializer for operator-supplied addresses.
func (m *Mem) FormatTerm(ref CellRef) string {
	var b strings.Builder
	m.formatTerm(&b, ref)
	return b.String()
}

func (m *Mem) formatTerm(b *strings.Builder, ref CellRef) {
	switch c := m.CellRead(ref).(type) {
	case Ref:
		if c.Target == ref {
			b.WriteString(m.VarName(ref))
			return
		}
		m.formatTerm(b, c.Target)
	case Rcd:
		sig, ok := m.CellRead(c.Sig).(Sig)
		if !ok {
			panic(fmt.Sprintf("engine: FormatTerm: Rcd at %v does not point to a Sig", ref))
		}
		b.WriteString(m.SymName(sig.Name))
		if sig.Arity == 0 {
			return
		}
		b.WriteByte('(')
		for i := 0; i < int(sig.Arity); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			m.formatTerm(b, c.Sig.Add(1+i))
		}
		b.WriteByte(')')
	case Int:
		b.WriteString(strconv.FormatInt(int64(c), 10))
	case Atom:
		b.WriteString(m.SymName(Sym(c)))
	case Sig:
		// Not a value, but the operator may point the display at one.
		b.WriteString(fmt.Sprintf("%s/%d", m.SymName(c.Name), c.Arity))
	case Lst:
		m.formatList(b, c)
	case Nil:
		b.WriteString("[]")
	default:
		panic(fmt.Sprintf("engine: FormatTerm: unhandled cell %T (%v)", c, c))
	}
}

func (m *Mem) formatList(b *strings.Builder, l Lst) {
	b.WriteByte('[')
	m.formatTerm(b, l.Car)
	cdrRef := l.Car.Add(1)
	for {
		ref, c := m.Resolve(cdrRef)
		switch c := c.(type) {
		case Lst:
			b.WriteString(", ")
			m.formatTerm(b, c.Car)
			cdrRef = c.Car.Add(1)
		case Nil:
			b.WriteByte(']')
			return
		default:
			b.WriteByte('|')
			m.formatTerm(b, ref)
			b.WriteByte(']')
			return
		}
	}
}
