package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMem_InternSym(t *testing.T) {
	m := NewMem()

	foo := m.InternSym("foo")
	bar := m.InternSym("bar")
	assert.NotEqual(t, foo, bar)
	assert.Equal(t, foo, m.InternSym("foo"))
	assert.Equal(t, bar, m.InternSym("bar"))

	assert.Equal(t, "foo", m.SymName(foo))
	assert.Equal(t, "bar", m.SymName(bar))
}

func TestMem_InternFunctor(t *testing.T) {
	m := NewMem()

	f2 := m.InternFunctor("f", 2)
	assert.Equal(t, f2, m.InternFunctor("f", 2))
	assert.NotEqual(t, f2, m.InternFunctor("f", 3))
	assert.NotEqual(t, f2, m.InternFunctor("g", 2))
}

func TestMem_PushAndRead(t *testing.T) {
	m := NewMem()

	a := m.Push(Int(1))
	b := m.Push(Int(2))
	assert.Equal(t, CellRef(0), a)
	assert.Equal(t, CellRef(1), b)
	assert.Equal(t, 2, m.Len())

	assert.Equal(t, Int(1), m.CellRead(a))
	assert.Equal(t, Int(2), m.CellRead(b))

	t.Run("try read out of bounds", func(t *testing.T) {
		_, ok := m.TryCellRead(CellRef(2))
		assert.False(t, ok)
		_, ok = m.TryCellRead(CellRef(-1))
		assert.False(t, ok)
	})

	t.Run("read out of bounds panics", func(t *testing.T) {
		assert.Panics(t, func() {
			m.CellRead(CellRef(2))
		})
	})

	t.Run("write out of bounds panics", func(t *testing.T) {
		assert.Panics(t, func() {
			m.CellWrite(CellRef(2), Int(3))
		})
	})
}

func TestMem_Resolve(t *testing.T) {
	m := NewMem()

	t.Run("unbound", func(t *testing.T) {
		v := m.PushFreshVar()
		ref, c := m.Resolve(v)
		assert.Equal(t, v, ref)
		assert.Equal(t, Ref{Target: v}, c)
	})

	t.Run("chain to concrete", func(t *testing.T) {
		n := m.Push(Int(42))
		b := m.Push(Ref{Target: n})
		a := m.Push(Ref{Target: b})
		ref, c := m.Resolve(a)
		assert.Equal(t, n, ref)
		assert.Equal(t, Int(42), c)
	})

	t.Run("chain to unbound", func(t *testing.T) {
		v := m.PushFreshVar()
		a := m.Push(Ref{Target: v})
		ref, c := m.Resolve(a)
		assert.Equal(t, v, ref)
		assert.Equal(t, Ref{Target: v}, c)
	})
}

func TestMem_PushVar(t *testing.T) {
	m := NewMem()

	x := m.PushVar("X")
	assert.Equal(t, Ref{Target: x}, m.CellRead(x))
	assert.Equal(t, "X", m.VarName(x))

	// A second mention forwards to the first cell.
	x2 := m.PushVar("X")
	assert.NotEqual(t, x, x2)
	assert.Equal(t, Ref{Target: x}, m.CellRead(x2))

	ref, ok := m.VarRef("X")
	require.True(t, ok)
	assert.Equal(t, x, ref)

	_, ok = m.VarRef("Y")
	assert.False(t, ok)

	fresh := m.PushFreshVar()
	assert.Equal(t, "_3", m.VarName(fresh))
}

func TestMem_FormatTerm(t *testing.T) {
	m := NewMem()

	h2 := m.InternFunctor("h", 2)
	f1 := m.InternFunctor("f", 1)
	p3 := m.InternFunctor("p", 3)

	for _, c := range []Cell{
		Rcd{Sig: 1},    // 0
		Sig(h2),        // 1
		Ref{Target: 2}, // 2
		Ref{Target: 3}, // 3
		Rcd{Sig: 5},    // 4
		Sig(f1),        // 5
		Ref{Target: 3}, // 6
		Rcd{Sig: 8},    // 7
		Sig(p3),        // 8
		Ref{Target: 2}, // 9
		Rcd{Sig: 1},    // 10
		Rcd{Sig: 5},    // 11
	} {
		m.Push(c)
	}

	assert.Equal(t, "p(_2, h(_2, _3), f(_3))", m.FormatTerm(CellRef(7)))
}

func TestMem_FormatList(t *testing.T) {
	m := NewMem()

	t.Run("proper", func(t *testing.T) {
		// [1, 2]
		l := m.Push(Lst{Car: 1})
		m.Push(Int(1))      // 1: car
		m.Push(Lst{Car: 3}) // 2: cdr
		m.Push(Int(2))      // 3
		m.Push(Nil{})       // 4
		assert.Equal(t, "[1, 2]", m.FormatTerm(l))
	})

	t.Run("unbound tail", func(t *testing.T) {
		start := CellRef(m.Len())
		m.Push(Lst{Car: start.Add(1)})
		m.Push(Int(7))
		m.Push(Ref{Target: start.Add(2)})
		assert.Equal(t, "[7|_7]", m.FormatTerm(start))
	})
}

func TestMem_FormatCell(t *testing.T) {
	m := NewMem()
	foo := m.InternSym("foo")
	f2 := m.InternFunctor("f", 2)

	assert.Equal(t, "foo", m.FormatCell(Atom(foo)))
	assert.Equal(t, "f/2", m.FormatCell(Sig(f2)))
	assert.Equal(t, "Int(42)", m.FormatCell(Int(42)))
	assert.Equal(t, "Nil", m.FormatCell(Nil{}))
}
