package lexer

import (
	"fmt"
	"strings"

	"github.com/emberlang/go-ember/internal/token"
)

// Lexer converts source text into a stream of tokens.
type Lexer struct {
	input   string
	pos     int  // current position in bytes
	readPos int  // next read position
	ch      byte // current char
	line    int
	column  int
}

// New creates a lexer for the provided source text.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input. Once the input is
// exhausted it keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		if l.ch == 0 {
			return l.makeToken(token.EOF, "")
		}

		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.skipLineComment()
				continue
			}
			if l.peekChar() == '*' {
				l.skipBlockComment()
				continue
			}
		}

		switch l.ch {
		case '+':
			tok := l.makeToken(token.Plus, string(l.ch))
			l.readChar()
			return tok
		case '-':
			tok := l.makeToken(token.Minus, string(l.ch))
			l.readChar()
			return tok
		case '*':
			tok := l.makeToken(token.Star, string(l.ch))
			l.readChar()
			return tok
		case '/':
			tok := l.makeToken(token.Slash, string(l.ch))
			l.readChar()
			return tok
		case '(':
			tok := l.makeToken(token.LParen, string(l.ch))
			l.readChar()
			return tok
		case ')':
			tok := l.makeToken(token.RParen, string(l.ch))
			l.readChar()
			return tok
		case ',':
			tok := l.makeToken(token.Comma, string(l.ch))
			l.readChar()
			return tok
		case ';':
			tok := l.makeToken(token.Semicolon, string(l.ch))
			l.readChar()
			return tok
		default:
			if isDigit(l.ch) {
				return l.readNumber()
			}

			tok := l.makeToken(token.Illegal, fmt.Sprintf("unexpected character %q", string(l.ch)))
			l.readChar()
			return tok
		}
	}
}

func (l *Lexer) makeToken(t token.Type, lit string) token.Token {
	return token.Token{
		Type:    t,
		Literal: lit,
		Pos: token.Position{
			Offset: l.pos,
			Line:   l.line,
			Column: l.column,
		},
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // '/'
	l.readChar() // '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

func (l *Lexer) readNumber() token.Token {
	start := l.makeToken(token.Number, "")
	var sb strings.Builder
	for isDigit(l.ch) {
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		sb.WriteByte(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
	start.Literal = sb.String()
	return start
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.pos = l.readPos
		l.ch = 0
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.pos = l.readPos
	l.readPos++
	l.ch = l.input[l.pos]
	l.column++
}
