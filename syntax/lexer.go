package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Token is the smallest meaningful unit of the term language.
type Token struct {
	Kind   TokenKind
	Val    string
	Offset int // rune offset of the token's first rune
}

func (t Token) String() string {
	return fmt.Sprintf("<%s %s>", t.Kind, t.Val)
}

// TokenKind is a type of Token.
type TokenKind byte

const (
	// TokenEOS represents an end of token stream.
	TokenEOS TokenKind = iota

	// TokenIdent represents a lowercase identifier: an atom or functor
	// name.
	TokenIdent

	// TokenVariable represents a variable name, an identifier starting
	// with an uppercase letter or underscore.
	TokenVariable

	// TokenInteger represents an integer literal, optionally negative.
	TokenInteger

	// TokenComma represents a comma.
	TokenComma

	// TokenPeriod represents a clause-terminating period.
	TokenPeriod

	// TokenNeck represents ":-".
	TokenNeck

	// TokenParenL represents an open parenthesis.
	TokenParenL

	// TokenParenR represents a close parenthesis.
	TokenParenR

	// TokenBracketL represents an open bracket.
	TokenBracketL

	// TokenBracketR represents a close bracket.
	TokenBracketR

	tokenKindLen
)

func (k TokenKind) String() string {
	return [tokenKindLen]string{
		TokenEOS:      "eos",
		TokenIdent:    "ident",
		TokenVariable: "variable",
		TokenInteger:  "integer",
		TokenComma:    "comma",
		TokenPeriod:   "period",
		TokenNeck:     "neck",
		TokenParenL:   "paren L",
		TokenParenR:   "paren R",
		TokenBracketL: "bracket L",
		TokenBracketR: "bracket R",
	}[k]
}

// UnexpectedRuneError is returned when the lexer meets a rune that
// cannot start or continue any token.
type UnexpectedRuneError struct {
	Rune   rune
	Offset int
}

func (e UnexpectedRuneError) Error() string {
	return fmt.Sprintf("unexpected char %q at %d", e.Rune, e.Offset)
}

// Lexer turns runes into tokens.
type Lexer struct {
	input  *bufio.Reader
	tokens []Token
	pos    int
	start  int
}

// NewLexer creates a lexer reading from input.
func NewLexer(input io.Reader) *Lexer {
	return &Lexer{input: bufio.NewReader(input)}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	state := l.init
	for state != nil && len(l.tokens) == 0 {
		r, err := l.next()
		if err != nil {
			return Token{}, err
		}
		state, err = state(r)
		if err != nil {
			return Token{}, err
		}
	}

	if len(l.tokens) > 0 {
		var t Token
		t, l.tokens = l.tokens[0], l.tokens[1:]
		return t, nil
	}

	return Token{}, fmt.Errorf("no match at %d", l.pos)
}

const etx = 0x2

func (l *Lexer) next() (rune, error) {
	r, _, err := l.input.ReadRune()
	switch err {
	case nil:
		break
	case io.EOF:
		r = etx
	default:
		return 0, err
	}
	l.pos++
	return r, nil
}

func (l *Lexer) backup() {
	_ = l.input.UnreadRune()
	l.pos--
}

func (l *Lexer) emit(k TokenKind, val string) {
	l.tokens = append(l.tokens, Token{Kind: k, Val: val, Offset: l.start})
}

type lexState func(rune) (lexState, error)

func (l *Lexer) init(r rune) (lexState, error) {
	l.start = l.pos - 1
	switch {
	case r == etx:
		l.emit(TokenEOS, "")
		return nil, nil
	case unicode.IsSpace(r):
		return l.init, nil
	case r == '%':
		return l.singleLineComment, nil
	case r == '(':
		l.emit(TokenParenL, string(r))
		return nil, nil
	case r == ')':
		l.emit(TokenParenR, string(r))
		return nil, nil
	case r == '[':
		l.emit(TokenBracketL, string(r))
		return nil, nil
	case r == ']':
		l.emit(TokenBracketR, string(r))
		return nil, nil
	case r == ',':
		l.emit(TokenComma, string(r))
		return nil, nil
	case r == '.':
		l.emit(TokenPeriod, string(r))
		return nil, nil
	case r == ':':
		return l.neck, nil
	case r == '-':
		var b strings.Builder
		_, _ = b.WriteRune(r)
		return l.sign(&b), nil
	case unicode.IsNumber(r):
		l.backup()
		return l.integer(&strings.Builder{}), nil
	case unicode.IsUpper(r), r == '_':
		l.backup()
		return l.ident(&strings.Builder{}, TokenVariable), nil
	case unicode.IsLower(r):
		l.backup()
		return l.ident(&strings.Builder{}, TokenIdent), nil
	default:
		l.backup()
		return nil, UnexpectedRuneError{Rune: r, Offset: l.pos}
	}
}

func (l *Lexer) singleLineComment(r rune) (lexState, error) {
	switch r {
	case etx:
		l.backup()
		return l.init, nil
	case '\n':
		return l.init, nil
	default:
		return l.singleLineComment, nil
	}
}

func (l *Lexer) neck(r rune) (lexState, error) {
	if r != '-' {
		l.backup()
		return nil, UnexpectedRuneError{Rune: r, Offset: l.pos}
	}
	l.emit(TokenNeck, ":-")
	return nil, nil
}

// sign has consumed a leading '-', which must begin an integer.
func (l *Lexer) sign(b *strings.Builder) lexState {
	return func(r rune) (lexState, error) {
		if !unicode.IsNumber(r) {
			l.backup()
			return nil, UnexpectedRuneError{Rune: r, Offset: l.pos}
		}
		l.backup()
		return l.integer(b), nil
	}
}

func (l *Lexer) integer(b *strings.Builder) lexState {
	return func(r rune) (lexState, error) {
		switch {
		case unicode.IsNumber(r):
			_, _ = b.WriteRune(r)
			return l.integer(b), nil
		default:
			l.backup()
			l.emit(TokenInteger, b.String())
			return nil, nil
		}
	}
}

func (l *Lexer) ident(b *strings.Builder, kind TokenKind) lexState {
	return func(r rune) (lexState, error) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
			_, _ = b.WriteRune(r)
			return l.ident(b, kind), nil
		default:
			l.backup()
			l.emit(kind, b.String())
			return nil, nil
		}
	}
}
