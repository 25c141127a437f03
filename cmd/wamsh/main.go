package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/kurogane/wam"
	"github.com/kurogane/wam/engine"
	"github.com/kurogane/wam/syntax"
)

// Version is a version of this build.
var Version = "wamsh/0.1"

func main() {
	var recursive bool
	pflag.BoolVarP(&recursive, "recursive", "r", false, `use the recursive unification strategy`)
	pflag.Parse()

	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		log.Panicf("failed to enter raw mode: %v", err)
	}
	restore := func() {
		_ = terminal.Restore(0, oldState)
	}
	defer restore()

	t := terminal.NewTerminal(os.Stdin, "?- ")
	defer fmt.Printf("\r\n")

	log.SetOutput(t)

	var opts []wam.Option
	if recursive {
		opts = append(opts, wam.WithRecursive())
	}
	m := wam.New(opts...)

	for _, a := range pflag.Args() {
		b, err := os.ReadFile(a)
		if err != nil {
			log.Panicf("failed to read %s: %v", a, err)
		}
		if err := m.Consult(string(b)); err != nil {
			log.Panicf("failed to consult %s: %v", a, err)
		}
	}

	for {
		line, err := t.ReadLine()
		if err != nil {
			if err == io.EOF {
				return
			}
			log.Printf("failed to read line: %v", err)
			continue
		}
		if err := handleLine(m, t, strings.TrimSpace(line)); err != nil {
			return
		}
	}
}

func handleLine(m *wam.Machine, t *terminal.Terminal, line string) error {
	switch {
	case line == "":
		return nil
	case line == ":quit":
		return io.EOF
	case line == ":version":
		fmt.Fprintf(t, "%s\n", Version)
		return nil
	case line == ":heap":
		dumpHeap(m, t)
		return nil
	case line == ":syms":
		for i, s := range m.Mem().Symbols() {
			fmt.Fprintf(t, "#%d\t%s\n", i, s)
		}
		return nil
	case line == ":preds":
		for _, pi := range m.Predicates() {
			for _, c := range m.Clauses(pi.Name, pi.Arity) {
				fmt.Fprintf(t, "%s\n", c)
			}
		}
		return nil
	}

	line = strings.TrimSuffix(line, ".")
	if left, right, ok := splitQuery(line); ok {
		query(m, t, left, right)
		return nil
	}

	// A bare term: parse, serialize and echo its canonical form.
	tm, err := m.ParseTerm(line)
	if err != nil {
		log.Printf("failed to parse: %v", err)
		return nil
	}
	ref := m.Serialize(tm)
	fmt.Fprintf(t, "%s = %s\n", m.Mem().FormatTerm(ref), ref)
	return nil
}

// splitQuery splits "t1 = t2" on the first '=' outside parens and
// brackets.
func splitQuery(line string) (left, right string, ok bool) {
	depth := 0
	for i, r := range line {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '=':
			if depth == 0 {
				return line[:i], line[i+1:], true
			}
		}
	}
	return "", "", false
}

func query(m *wam.Machine, t *terminal.Terminal, left, right string) {
	t1, err := m.ParseTerm(left)
	if err != nil {
		log.Printf("failed to parse left term: %v", err)
		return
	}
	t2, err := m.ParseTerm(right)
	if err != nil {
		log.Printf("failed to parse right term: %v", err)
		return
	}

	ok := m.Unify(m.Serialize(t1), m.Serialize(t2))
	if !ok {
		fmt.Fprintf(t, "false.\n")
		return
	}

	var ls []string
	for _, n := range varNames(t1, t2) {
		b, err := m.Binding(n)
		if err != nil {
			continue
		}
		if v, isVar := b.(syntax.Var); isVar && string(v) == n {
			continue
		}
		ls = append(ls, fmt.Sprintf("%s = %s", n, b))
	}
	if len(ls) == 0 {
		fmt.Fprintf(t, "true.\n")
		return
	}
	fmt.Fprintf(t, "%s.\n", strings.Join(ls, ",\n"))
}

// varNames collects named variables of the terms in first-appearance
// order.
func varNames(terms ...syntax.Term) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(t syntax.Term)
	walk = func(t syntax.Term) {
		switch t := t.(type) {
		case syntax.Var:
			if t != "" && !seen[string(t)] {
				seen[string(t)] = true
				names = append(names, string(t))
			}
		case *syntax.Record:
			for _, a := range t.Args {
				walk(a)
			}
		case *syntax.Cons:
			walk(t.Car)
			walk(t.Cdr)
		}
	}
	for _, t := range terms {
		walk(t)
	}
	return names
}

func dumpHeap(m *wam.Machine, t *terminal.Terminal) {
	mem := m.Mem()
	for i := 0; i < mem.Len(); i++ {
		c, ok := mem.TryCellRead(engine.CellRef(i))
		if !ok {
			break
		}
		fmt.Fprintf(t, "@%d\t%s\n", i, mem.FormatCell(c))
	}
}
