package lexer

import (
	"strings"
	"testing"

	"github.com/emberlang/go-ember/internal/token"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `(1 + 2.5) * 30 / 4 - 5, 6;`

	tests := []token.Token{
		{Type: token.LParen, Literal: "("},
		{Type: token.Number, Literal: "1"},
		{Type: token.Plus, Literal: "+"},
		{Type: token.Number, Literal: "2.5"},
		{Type: token.RParen, Literal: ")"},
		{Type: token.Star, Literal: "*"},
		{Type: token.Number, Literal: "30"},
		{Type: token.Slash, Literal: "/"},
		{Type: token.Number, Literal: "4"},
		{Type: token.Minus, Literal: "-"},
		{Type: token.Number, Literal: "5"},
		{Type: token.Comma, Literal: ","},
		{Type: token.Number, Literal: "6"},
		{Type: token.Semicolon, Literal: ";"},
		{Type: token.EOF},
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected.Type || tok.Literal != expected.Literal {
			t.Fatalf("token %d: expected %v %q, got %v %q", i, expected.Type, expected.Literal, tok.Type, tok.Literal)
		}
	}
}

func TestLexerComments(t *testing.T) {
	input := `1 // trailing comment
+ /* inline */ 2`

	tests := []token.Type{token.Number, token.Plus, token.Number, token.EOF}
	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("token %d: expected %v, got %v", i, expected, tok.Type)
		}
	}
}

func TestLexerLineTracking(t *testing.T) {
	input := "1 +\n2 *\n3"
	l := New(input)

	wantLines := []int{1, 1, 2, 2, 3}
	for i, want := range wantLines {
		tok := l.NextToken()
		if tok.Pos.Line != want {
			t.Fatalf("token %d (%v): expected line %d, got %d", i, tok.Type, want, tok.Pos.Line)
		}
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := New("1 @ 2")

	if tok := l.NextToken(); tok.Type != token.Number {
		t.Fatalf("expected number, got %v", tok.Type)
	}
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal token, got %v", tok.Type)
	}
	if !strings.Contains(tok.Literal, "unexpected character") {
		t.Fatalf("expected message in literal, got %q", tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != token.Number {
		t.Fatalf("lexer did not recover after illegal token, got %v", tok.Type)
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := New("7")
	if tok := l.NextToken(); tok.Type != token.Number {
		t.Fatalf("expected number, got %v", tok.Type)
	}
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != token.EOF {
			t.Fatalf("expected EOF on pull %d, got %v", i, tok.Type)
		}
	}
}

func TestLexerNumberForms(t *testing.T) {
	// a trailing dot is not part of the number
	l := New("1.5 2. .5")

	tok := l.NextToken()
	if tok.Type != token.Number || tok.Literal != "1.5" {
		t.Fatalf("expected 1.5, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.Number || tok.Literal != "2" {
		t.Fatalf("expected 2, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal for stray dot, got %v", tok.Type)
	}
}
