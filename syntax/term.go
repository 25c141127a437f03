// Package syntax defines the surface syntax of terms: an AST
// independent of heap layout, the lexer and parser producing it, and
// the serializer/deserializer moving between the AST and heap cells.
package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is a node of the surface syntax tree. Terms are produced by
// parsing and consumed by serialization; they are never stored on the
// heap directly.
//
// The set of variants is closed: Int, Atom, Var, *Record, *Cons and
// Nil. Switches over a Term list all of them and panic on anything
// else.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Int is an integer literal.
type Int int32

// Atom is a symbolic constant.
type Atom string

// Var is a variable. The empty name is the anonymous variable: each
// occurrence of "_" denotes a distinct fresh variable, while named
// variables with equal names denote the same variable within a Mem.
type Var string

// Record is a compound term: a functor name applied to one or more
// arguments.
type Record struct {
	Functor string
	Args    []Term
}

// Cons is a list pair.
type Cons struct {
	Car, Cdr Term
}

// Nil is the empty list.
type Nil struct{}

func (t Int) isTerm()     {}
func (t Atom) isTerm()    {}
func (t Var) isTerm()     {}
func (t *Record) isTerm() {}
func (t *Cons) isTerm()   {}
func (t Nil) isTerm()     {}

func (t Int) String() string {
	return strconv.FormatInt(int64(t), 10)
}

func (t Atom) String() string {
	return string(t)
}

func (t Var) String() string {
	if t == "" {
		return "_"
	}
	return string(t)
}

func (t *Record) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Functor, strings.Join(args, ", "))
}

func (t *Cons) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(t.Car.String())
	tail := t.Cdr
	for {
		switch tl := tail.(type) {
		case *Cons:
			b.WriteString(", ")
			b.WriteString(tl.Car.String())
			tail = tl.Cdr
		case Nil:
			b.WriteByte(']')
			return b.String()
		default:
			b.WriteByte('|')
			b.WriteString(tl.String())
			b.WriteByte(']')
			return b.String()
		}
	}
}

func (t Nil) String() string {
	return "[]"
}

// List builds a proper list term from elems.
func List(elems ...Term) Term {
	var list Term = Nil{}
	for i := len(elems) - 1; i >= 0; i-- {
		list = &Cons{Car: elems[i], Cdr: list}
	}
	return list
}

// Indicator names a predicate by functor name and arity.
type Indicator struct {
	Name  string
	Arity int
}

func (pi Indicator) String() string {
	return fmt.Sprintf("%s/%d", pi.Name, pi.Arity)
}

// Clause is a fact or rule: a Record head and zero or more body goals.
type Clause struct {
	Head *Record
	Body []Term
}

// Indicator returns the predicate the clause belongs to.
func (c *Clause) Indicator() Indicator {
	return Indicator{Name: c.Head.Functor, Arity: len(c.Head.Args)}
}

func (c *Clause) String() string {
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	goals := make([]string, len(c.Body))
	for i, g := range c.Body {
		goals[i] = g.String()
	}
	return fmt.Sprintf("%s :- %s.", c.Head, strings.Join(goals, ", "))
}

// Module groups clauses by predicate, preserving declaration order
// within each group and the order in which predicates first appear.
type Module struct {
	Predicates map[Indicator][]*Clause
	Order      []Indicator
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{Predicates: make(map[Indicator][]*Clause)}
}

// Add appends c to its predicate's group.
func (m *Module) Add(c *Clause) {
	pi := c.Indicator()
	if _, ok := m.Predicates[pi]; !ok {
		m.Order = append(m.Order, pi)
	}
	m.Predicates[pi] = append(m.Predicates[pi], c)
}
