// Package wam provides the term-representation and unification core of
// a Warren Abstract Machine style logic-programming runtime: a tagged
// cell heap, a term parser, a serializer/deserializer between the two,
// and structural unification in two interchangeable strategies.
//
// Machine ties the pieces together for callers that work with textual
// terms; the engine and syntax packages expose the parts individually.
package wam

import (
	"fmt"

	"github.com/kurogane/wam/engine"
	"github.com/kurogane/wam/syntax"
)

// Machine owns a heap and a clause database and moves terms between
// text, AST and heap form. It is single-threaded: one goroutine at a
// time, like the Mem it owns.
type Machine struct {
	mem       *engine.Mem
	solver    *engine.Solver
	recursive bool

	preds map[syntax.Indicator][]*syntax.Clause
	order []syntax.Indicator
}

// Option configures a Machine.
type Option func(*Machine)

// WithRecursive selects the recursive unification strategy. Simpler
// call graphs when debugging, but native stack use grows with term
// depth.
func WithRecursive() Option {
	return func(m *Machine) {
		m.recursive = true
	}
}

// WithIterative selects the worklist unification strategy, the default.
func WithIterative() Option {
	return func(m *Machine) {
		m.recursive = false
	}
}

// New creates a Machine with an empty heap and database.
func New(opts ...Option) *Machine {
	m := &Machine{
		mem:   engine.NewMem(),
		preds: make(map[syntax.Indicator][]*syntax.Clause),
	}
	for _, o := range opts {
		o(m)
	}
	m.solver = engine.NewSolver(m.mem)
	return m
}

// Mem exposes the machine's heap, for collaborators that read and write
// cells directly.
func (m *Machine) Mem() *engine.Mem {
	return m.mem
}

// ParseTerm parses text as a single term.
func (m *Machine) ParseTerm(text string) (syntax.Term, error) {
	return syntax.ParseTerm(text)
}

// Serialize lowers t onto the machine's heap and returns its root.
func (m *Machine) Serialize(t syntax.Term) engine.CellRef {
	return syntax.Serialize(t, m.mem)
}

// Deserialize reconstructs the term rooted at ref.
func (m *Machine) Deserialize(ref engine.CellRef) (syntax.Term, error) {
	return syntax.Deserialize(m.mem, ref)
}

// Unify attempts to unify the terms rooted at a and b with the
// configured strategy, binding variables in place. Bindings made before
// a failure are kept; callers needing rollback snapshot the heap
// themselves.
func (m *Machine) Unify(a, b engine.CellRef) bool {
	if m.recursive {
		return engine.Unify(m.mem, a, b)
	}
	m.solver.Reset(a, b)
	return m.solver.Run()
}

// UnifyStrings parses both texts, serializes them onto the heap and
// unifies them.
func (m *Machine) UnifyStrings(text1, text2 string) (bool, error) {
	t1, err := m.ParseTerm(text1)
	if err != nil {
		return false, fmt.Errorf("left term: %w", err)
	}
	t2, err := m.ParseTerm(text2)
	if err != nil {
		return false, fmt.Errorf("right term: %w", err)
	}
	return m.Unify(m.Serialize(t1), m.Serialize(t2)), nil
}

// Binding resolves the current binding of the named variable, as a
// term. Unbound variables come back as a Var.
func (m *Machine) Binding(name string) (syntax.Term, error) {
	ref, ok := m.mem.VarRef(name)
	if !ok {
		return nil, fmt.Errorf("unknown variable %s", name)
	}
	return syntax.Deserialize(m.mem, ref)
}

// Assert parses text as a single clause and adds it to the database.
func (m *Machine) Assert(text string) error {
	c, err := syntax.ParseClause(text)
	if err != nil {
		return err
	}
	m.add(c)
	return nil
}

// Consult parses text as a module and merges its clauses into the
// database.
func (m *Machine) Consult(text string) error {
	mod, err := syntax.ParseModule(text)
	if err != nil {
		return err
	}
	for _, pi := range mod.Order {
		for _, c := range mod.Predicates[pi] {
			m.add(c)
		}
	}
	return nil
}

func (m *Machine) add(c *syntax.Clause) {
	pi := c.Indicator()
	if _, ok := m.preds[pi]; !ok {
		m.order = append(m.order, pi)
	}
	m.preds[pi] = append(m.preds[pi], c)
}

// Clauses returns the clauses of name/arity in declaration order.
func (m *Machine) Clauses(name string, arity int) []*syntax.Clause {
	return m.preds[syntax.Indicator{Name: name, Arity: arity}]
}

// Predicates returns the known predicate indicators in first-appearance
// order.
func (m *Machine) Predicates() []syntax.Indicator {
	return m.order
}
