package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser turns tokens into Terms, Clauses and Modules.
type Parser struct {
	lexer  *Lexer
	peeked *Token
}

// NewParser creates a parser reading from input.
func NewParser(input io.Reader) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// ParseTerm parses text as a single term followed by end of stream.
func ParseTerm(text string) (Term, error) {
	p := NewParser(strings.NewReader(text))
	t, err := p.Term()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEOS); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseClause parses text as a single clause followed by end of stream.
func ParseClause(text string) (*Clause, error) {
	p := NewParser(strings.NewReader(text))
	c, err := p.Clause()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEOS); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseModule parses text as zero or more clauses grouped by predicate.
func ParseModule(text string) (*Module, error) {
	return NewParser(strings.NewReader(text)).Module()
}

type unexpectedTokenError struct {
	actual Token
}

func (e unexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s at %d", e.actual, e.actual.Offset)
}

// ErrHeadNotRecord is reported when a clause head is not a compound
// term.
var ErrHeadNotRecord = fmt.Errorf("clause head is not a compound term")

func (p *Parser) next() (Token, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.lexer.Next()
}

func (p *Parser) backup(t Token) {
	p.peeked = &t
}

func (p *Parser) expect(k TokenKind) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t.Kind != k {
		p.backup(t)
		return unexpectedTokenError{actual: t}
	}
	return nil
}

// Term parses one term.
//
//	term := int | record | list | var_or_sym | '(' term ')'
func (p *Parser) Term() (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case TokenInteger:
		n, err := strconv.ParseInt(t.Val, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("integer out of range at %d: %w", t.Offset, err)
		}
		return Int(n), nil
	case TokenVariable:
		if t.Val == "_" {
			return Var(""), nil
		}
		return Var(t.Val), nil
	case TokenIdent:
		return p.recordOrAtom(t)
	case TokenBracketL:
		return p.list()
	case TokenParenL:
		inner, err := p.Term()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenParenR); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		p.backup(t)
		return nil, unexpectedTokenError{actual: t}
	}
}

// recordOrAtom has consumed an ident token: a following '(' makes it a
// record, anything else leaves it an atom.
func (p *Parser) recordOrAtom(ident Token) (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Kind != TokenParenL {
		p.backup(t)
		return Atom(ident.Val), nil
	}
	args, err := p.terms()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenParenR); err != nil {
		return nil, err
	}
	return &Record{Functor: ident.Val, Args: args}, nil
}

// list has consumed '['. Elements desugar right-to-left into Cons
// chains terminated by Nil; there is no [H|T] sugar.
func (p *Parser) list() (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Kind == TokenBracketR {
		return Nil{}, nil
	}
	p.backup(t)
	elems, err := p.terms()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenBracketR); err != nil {
		return nil, err
	}
	return List(elems...), nil
}

// terms parses a comma-separated sequence of one or more terms.
func (p *Parser) terms() ([]Term, error) {
	var terms []Term
	for {
		t, err := p.Term()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Kind != TokenComma {
			p.backup(sep)
			return terms, nil
		}
	}
}

// Clause parses one clause.
//
//	clause := term ('.' | ':-' term (',' term)* '.')
//
// The head must be a record; any other term kind is a parse error, not
// a silent coercion.
func (p *Parser) Clause() (*Clause, error) {
	head, err := p.Term()
	if err != nil {
		return nil, err
	}
	rec, ok := head.(*Record)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHeadNotRecord, head)
	}
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case TokenPeriod:
		return &Clause{Head: rec}, nil
	case TokenNeck:
		body, err := p.terms()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenPeriod); err != nil {
			return nil, err
		}
		return &Clause{Head: rec, Body: body}, nil
	default:
		p.backup(t)
		return nil, unexpectedTokenError{actual: t}
	}
}

// Module parses clauses until end of stream.
func (p *Parser) Module() (*Module, error) {
	mod := NewModule()
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokenEOS {
			return mod, nil
		}
		p.backup(t)
		c, err := p.Clause()
		if err != nil {
			return nil, err
		}
		mod.Add(c)
	}
}
