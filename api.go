// Package ember compiles arithmetic expressions to stack-machine bytecode
// in a single pass and evaluates them on a small virtual machine.
package ember

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emberlang/go-ember/internal/bytecode"
	"github.com/emberlang/go-ember/internal/compiler"
	"github.com/emberlang/go-ember/internal/vm"
)

// ErrCompile wraps every compilation failure so callers can branch on it
// with errors.Is.
var ErrCompile = errors.New("compile error")

// Option adjusts compilation and execution behavior.
type Option func(*options)

type options struct {
	maxDepth  int
	maxStack  int
	errWriter io.Writer
}

// WithMaxDepth caps expression nesting depth; pathological nesting then
// produces a reported error instead of exhausting the call stack.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithMaxStack caps the VM operand stack for Run/Eval.
func WithMaxStack(n int) Option {
	return func(o *options) {
		o.maxStack = n
	}
}

// WithErrorWriter routes compiler diagnostics to w instead of os.Stderr.
func WithErrorWriter(w io.Writer) Option {
	return func(o *options) {
		o.errWriter = w
	}
}

// Script is a compiled expression ready for execution.
type Script struct {
	chunk    *bytecode.Chunk
	maxStack int
}

// Compile lowers source to bytecode. On failure the returned error
// aggregates every reported diagnostic and the script is withheld, so a
// chunk from a failed compilation can never be executed.
func Compile(source string, opts ...Option) (*Script, error) {
	o := options{errWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	chunk, err := compiler.Compile(source, compiler.Config{
		MaxDepth:  o.maxDepth,
		ErrWriter: o.errWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return &Script{chunk: chunk, maxStack: o.maxStack}, nil
}

// Eval compiles and executes source in one step.
func Eval(source string, opts ...Option) (float64, error) {
	s, err := Compile(source, opts...)
	if err != nil {
		return 0, err
	}
	return s.Run()
}

// Run executes the compiled expression on a fresh VM instance, so
// concurrent runs of the same script are independent.
func (s *Script) Run() (float64, error) {
	m := vm.New()
	if s.maxStack > 0 {
		m.SetMaxStack(s.maxStack)
	}
	return m.Run(s.chunk)
}

// Disassemble writes an assembly-style dump of the compiled bytecode.
func (s *Script) Disassemble(label string, w io.Writer) error {
	return bytecode.NewDisassembler(w).Disassemble(label, s.chunk)
}

// Bytecode returns a copy of the compiled instruction stream.
func (s *Script) Bytecode() []byte {
	out := make([]byte, len(s.chunk.Code))
	copy(out, s.chunk.Code)
	return out
}

// Constants returns a copy of the constant pool.
func (s *Script) Constants() []float64 {
	out := make([]float64, len(s.chunk.Consts))
	copy(out, s.chunk.Consts)
	return out
}
