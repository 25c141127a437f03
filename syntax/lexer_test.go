package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexAll drains the lexer up to and including the end-of-stream token.
func lexAll(t *testing.T, text string) []Token {
	t.Helper()
	l := NewLexer(strings.NewReader(text))
	var tokens []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOS {
			return tokens
		}
	}
}

func TestLexer_Next(t *testing.T) {
	t.Run("idents and variables", func(t *testing.T) {
		assert.Equal(t, []Token{
			{Kind: TokenIdent, Val: "foo"},
			{Kind: TokenIdent, Val: "bar123", Offset: 4},
			{Kind: TokenVariable, Val: "X", Offset: 11},
			{Kind: TokenVariable, Val: "Elder_one", Offset: 13},
			{Kind: TokenVariable, Val: "_", Offset: 23},
			{Kind: TokenVariable, Val: "_acc", Offset: 25},
			{Kind: TokenEOS, Offset: 29},
		}, lexAll(t, "foo bar123 X Elder_one _ _acc"))
	})

	t.Run("integers", func(t *testing.T) {
		assert.Equal(t, []Token{
			{Kind: TokenInteger, Val: "42"},
			{Kind: TokenInteger, Val: "-7", Offset: 3},
			{Kind: TokenInteger, Val: "0", Offset: 6},
			{Kind: TokenEOS, Offset: 7},
		}, lexAll(t, "42 -7 0"))
	})

	t.Run("punctuation", func(t *testing.T) {
		assert.Equal(t, []Token{
			{Kind: TokenParenL, Val: "("},
			{Kind: TokenParenR, Val: ")", Offset: 1},
			{Kind: TokenBracketL, Val: "[", Offset: 2},
			{Kind: TokenBracketR, Val: "]", Offset: 3},
			{Kind: TokenComma, Val: ",", Offset: 4},
			{Kind: TokenPeriod, Val: ".", Offset: 5},
			{Kind: TokenNeck, Val: ":-", Offset: 6},
			{Kind: TokenEOS, Offset: 8},
		}, lexAll(t, "()[],.:-"))
	})

	t.Run("compound term", func(t *testing.T) {
		assert.Equal(t, []Token{
			{Kind: TokenIdent, Val: "point"},
			{Kind: TokenParenL, Val: "(", Offset: 5},
			{Kind: TokenInteger, Val: "1", Offset: 6},
			{Kind: TokenComma, Val: ",", Offset: 7},
			{Kind: TokenVariable, Val: "Y", Offset: 9},
			{Kind: TokenParenR, Val: ")", Offset: 10},
			{Kind: TokenEOS, Offset: 11},
		}, lexAll(t, "point(1, Y)"))
	})

	t.Run("comments", func(t *testing.T) {
		assert.Equal(t, []Token{
			{Kind: TokenIdent, Val: "a", Offset: 12},
			{Kind: TokenIdent, Val: "b", Offset: 24},
			{Kind: TokenEOS, Offset: 31},
		}, lexAll(t, "% comment\n  a % trailer\nb % end"))
	})

	t.Run("clause", func(t *testing.T) {
		assert.Equal(t, []Token{
			{Kind: TokenIdent, Val: "mortal"},
			{Kind: TokenParenL, Val: "(", Offset: 6},
			{Kind: TokenVariable, Val: "X", Offset: 7},
			{Kind: TokenParenR, Val: ")", Offset: 8},
			{Kind: TokenNeck, Val: ":-", Offset: 10},
			{Kind: TokenIdent, Val: "human", Offset: 13},
			{Kind: TokenParenL, Val: "(", Offset: 18},
			{Kind: TokenVariable, Val: "X", Offset: 19},
			{Kind: TokenParenR, Val: ")", Offset: 20},
			{Kind: TokenPeriod, Val: ".", Offset: 21},
			{Kind: TokenEOS, Offset: 22},
		}, lexAll(t, "mortal(X) :- human(X)."))
	})
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		title, text string
		err         error
	}{
		{title: "stray rune", text: "foo @ bar", err: UnexpectedRuneError{Rune: '@', Offset: 4}},
		{title: "lone colon", text: ": x", err: UnexpectedRuneError{Rune: ' ', Offset: 1}},
		{title: "sign without digits", text: "-x", err: UnexpectedRuneError{Rune: 'x', Offset: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			l := NewLexer(strings.NewReader(tt.text))
			for {
				tok, err := l.Next()
				if err != nil {
					assert.Equal(t, tt.err, err)
					return
				}
				require.NotEqual(t, TokenEOS, tok.Kind, "lexer accepted %q", tt.text)
			}
		})
	}
}
