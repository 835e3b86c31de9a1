package token

// Type identifies the category of a token.
type Type string

// Token carries the lexical item along with its source position.
// Illegal tokens carry a human-readable message in Literal instead of a lexeme.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

// Position describes a byte offset and 1-based line/column.
type Position struct {
	Offset int
	Line   int
	Column int
}

const (
	Illegal Type = "ILLEGAL"
	EOF     Type = "EOF"

	// literals
	Number Type = "NUMBER"

	// operators
	Plus  Type = "PLUS"  // +
	Minus Type = "MINUS" // -
	Star  Type = "STAR"  // *
	Slash Type = "SLASH" // /

	// delimiters
	LParen    Type = "LPAREN"
	RParen    Type = "RPAREN"
	Comma     Type = "COMMA"
	Semicolon Type = "SEMICOLON"
)

// Kinds returns the closed set of token types the lexer can produce.
func Kinds() []Type {
	return []Type{
		Illegal, EOF,
		Number,
		Plus, Minus, Star, Slash,
		LParen, RParen, Comma, Semicolon,
	}
}
