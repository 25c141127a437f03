package engine

import "fmt"

// Sym identifies a string interned in a Mem's symbol table. Two Syms
// interned in the same Mem are equal iff their texts are equal; a Sym is
// meaningless outside the Mem that produced it.
type Sym int32

func (s Sym) String() string {
	return fmt.Sprintf("#%d", int32(s))
}

// Functor identifies the head of a compound term by name and arity.
type Functor struct {
	Name  Sym
	Arity uint8
}

func (f Functor) String() string {
	return fmt.Sprintf("%v/%d", f.Name, f.Arity)
}

// CellRef is an index into a Mem's heap. It acts as a typed pointer:
// Add computes neighboring addresses, which is how fixed-layout
// structures (functor followed by arguments, car followed by cdr) are
// navigated. The type itself performs no bounds checking; callers
// validate against the heap via Mem.
type CellRef int

// Add returns the address n cells after r.
func (r CellRef) Add(n int) CellRef {
	return r + CellRef(n)
}

func (r CellRef) String() string {
	return fmt.Sprintf("@%d", int(r))
}

// Cell is the fixed-size tagged value stored at each heap address.
//
// The set of variants is closed: Ref, Rcd, Int, Atom, Sig, Lst and Nil.
// Every switch over a Cell lists all of them and panics on anything
// else, so that adding a variant shows up as a runtime failure at every
// unhandled site rather than a silent fallthrough.
type Cell interface {
	fmt.Stringer
	isCell()
}

// Ref is a variable cell. A Ref whose Target is its own address is an
// unbound variable; otherwise it forwards to the cell it is bound to,
// and readers must follow the chain (see Mem.Resolve).
type Ref struct {
	Target CellRef
}

// Rcd is a compound term. Sig is the address of the functor cell; the
// arguments occupy the next Arity addresses after it.
type Rcd struct {
	Sig CellRef
}

// Int is an integer constant cell.
type Int int32

// Atom is a symbolic constant cell holding an interned Sym.
type Atom Sym

// Sig is a functor marker cell. It only ever appears as the target of
// an Rcd cell and is never a term in its own right.
type Sig Functor

// Lst is a cons cell. Car is the address of the head; the tail is
// always at Car+1.
type Lst struct {
	Car CellRef
}

// Nil is the empty list.
type Nil struct{}

func (c Ref) isCell()  {}
func (c Rcd) isCell()  {}
func (c Int) isCell()  {}
func (c Atom) isCell() {}
func (c Sig) isCell()  {}
func (c Lst) isCell()  {}
func (c Nil) isCell()  {}

func (c Ref) String() string  { return fmt.Sprintf("Ref(%v)", c.Target) }
func (c Rcd) String() string  { return fmt.Sprintf("Rcd(%v)", c.Sig) }
func (c Int) String() string  { return fmt.Sprintf("Int(%d)", int32(c)) }
func (c Atom) String() string { return fmt.Sprintf("Atom(%v)", Sym(c)) }
func (c Sig) String() string  { return fmt.Sprintf("Sig(%v)", Functor(c)) }
func (c Lst) String() string  { return fmt.Sprintf("Lst(%v)", c.Car) }
func (c Nil) String() string  { return "Nil" }
