package compiler

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/emberlang/go-ember/internal/bytecode"
	"github.com/emberlang/go-ember/internal/lexer"
	"github.com/emberlang/go-ember/internal/token"
)

// DefaultMaxDepth bounds expression nesting. Parentheses and unary operators
// each add one level of recursion.
const DefaultMaxDepth = 64

// Config adjusts compilation limits and diagnostic routing.
type Config struct {
	// MaxDepth caps parse recursion; zero selects DefaultMaxDepth.
	MaxDepth int
	// ErrWriter receives formatted diagnostics; nil discards them.
	ErrWriter io.Writer
}

// parser holds the state of one compilation: the prev/curr token pair,
// the output chunk and the error flags. Each call to Compile owns its own
// instance, so independent compilations never share state.
type parser struct {
	lx        *lexer.Lexer
	prev      token.Token
	curr      token.Token
	chunk     *bytecode.Chunk
	errs      *multierror.Error
	errWriter io.Writer
	hadError  bool
	panicMode bool
	depth     int
	maxDepth  int
}

// Compile lowers a single expression to bytecode. The returned chunk is
// valid for execution only when err is nil; on failure it is still returned
// so diagnostics tooling can inspect what was emitted.
func Compile(source string, cfg Config) (*bytecode.Chunk, error) {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	errWriter := cfg.ErrWriter
	if errWriter == nil {
		errWriter = io.Discard
	}
	p := &parser{
		lx:        lexer.New(source),
		chunk:     &bytecode.Chunk{},
		errWriter: errWriter,
		maxDepth:  maxDepth,
	}

	p.advance()
	p.expression()
	p.consume(token.EOF, "expect end of expression")
	p.end()

	if p.hadError {
		return p.chunk, p.errs.ErrorOrNil()
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		var buf bytes.Buffer
		if err := bytecode.NewDisassembler(&buf).Disassemble("code", p.chunk); err == nil {
			logrus.Debugln(buf.String())
		}
	}
	return p.chunk, nil
}

func (p *parser) expression() {
	p.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses one expression whose operators all bind at least
// as tightly as min. The >= comparison in the climb loop is what makes
// equal-precedence operators group to the left.
func (p *parser) parsePrecedence(min Precedence) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.errorAtCurrent("expression too deeply nested")
		return
	}

	p.advance()
	prefix := lookupRule(p.prev.Type).prefix
	if prefix == actNone {
		p.error("expect expression")
		return
	}
	p.runPrefix(prefix)

	for lookupRule(p.curr.Type).prec >= min {
		p.advance()
		p.runInfix(lookupRule(p.prev.Type).infix)
	}
}

func (p *parser) runPrefix(a action) {
	switch a {
	case actNumber:
		p.number()
	case actGrouping:
		p.grouping()
	case actUnary:
		p.unary()
	case actNone, actBinary:
		// unreachable with a well-formed rule table
	}
}

func (p *parser) runInfix(a action) {
	switch a {
	case actBinary:
		p.binary()
	case actNone, actNumber, actGrouping, actUnary:
		// unreachable with a well-formed rule table
	}
}

func (p *parser) number() {
	val, err := strconv.ParseFloat(p.prev.Literal, 64)
	if err != nil {
		// the lexer only produces well-formed number lexemes
		p.error("invalid number literal")
		return
	}
	p.emitConstant(val)
}

func (p *parser) grouping() {
	p.expression()
	p.consume(token.RParen, "expect ')' after expression")
}

func (p *parser) unary() {
	op := p.prev.Type

	// compile the operand first; negation applies to its result
	p.parsePrecedence(PrecUnary)

	switch op {
	case token.Minus:
		p.emitByte(bytecode.OP_NEG)
	}
}

func (p *parser) binary() {
	op := p.prev.Type

	// right operand binds one level tighter, then the operator is emitted
	// post-order so the stack machine sees both operands first
	p.parsePrecedence(lookupRule(op).prec.next())

	switch op {
	case token.Plus:
		p.emitByte(bytecode.OP_ADD)
	case token.Minus:
		p.emitByte(bytecode.OP_SUB)
	case token.Star:
		p.emitByte(bytecode.OP_MUL)
	case token.Slash:
		p.emitByte(bytecode.OP_DIV)
	}
}

// advance shifts curr into prev and pulls the next token, reporting and
// skipping any Illegal tokens the lexer produced.
func (p *parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.lx.NextToken()
		if p.curr.Type != token.Illegal {
			break
		}
		p.errorAtCurrent(p.curr.Literal)
	}
}

func (p *parser) consume(t token.Type, msg string) {
	if p.curr.Type == t {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *parser) emitByte(b byte) {
	p.chunk.Write(b, p.prev.Pos.Line)
}

func (p *parser) emitBytes(bs ...byte) {
	for _, b := range bs {
		p.emitByte(b)
	}
}

func (p *parser) emitConstant(v float64) {
	p.emitBytes(bytecode.OP_CONST, p.makeConstant(v))
}

// makeConstant inserts v into the constant pool. When the pool is full the
// overflow is reported and index 0 stands in, keeping the byte stream width
// intact.
func (p *parser) makeConstant(v float64) byte {
	if len(p.chunk.Consts) >= bytecode.MaxConsts {
		p.error("too many constants in one chunk")
		return 0
	}
	return byte(p.chunk.AddConst(v))
}

func (p *parser) end() {
	p.emitByte(bytecode.OP_RETURN)
}

func (p *parser) error(msg string) {
	p.errorAt(p.prev, msg)
}

func (p *parser) errorAtCurrent(msg string) {
	p.errorAt(p.curr, msg)
}

// errorAt formats and routes one diagnostic. The first error of a
// compilation flips panic mode; while panicking, further diagnostics are
// suppressed but hadError stays set.
func (p *parser) errorAt(tk token.Token, msg string) {
	if p.panicMode {
		p.hadError = true
		return
	}
	p.panicMode = true
	p.hadError = true

	var where string
	switch tk.Type {
	case token.EOF:
		where = " at end"
	case token.Illegal:
		// the message already describes the offending input
	default:
		where = fmt.Sprintf(" at '%s'", tk.Literal)
	}
	err := fmt.Errorf("[line %d] Error%s: %s", tk.Pos.Line, where, msg)
	fmt.Fprintln(p.errWriter, err)
	p.errs = multierror.Append(p.errs, err)
}
