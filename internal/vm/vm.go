package vm

import (
	"fmt"

	"github.com/emberlang/go-ember/internal/bytecode"
)

// RuntimeError carries the source line recovered from the chunk's line
// table for VM failures.
type RuntimeError struct {
	Message string
	Line    int
	IP      int
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// DefaultMaxStack caps operand stack growth per execution.
const DefaultMaxStack = 256

// VM is a stack machine over float64 values executing compiled chunks.
// An instance may be reused for sequential runs but is not safe for
// concurrent use; independent runs should use independent instances.
type VM struct {
	stack    []float64
	maxStack int
}

// New constructs an empty VM instance.
func New() *VM {
	return &VM{
		stack:    make([]float64, 0, 64),
		maxStack: DefaultMaxStack,
	}
}

// SetMaxStack adjusts the operand stack ceiling (0 restores the default).
func (vm *VM) SetMaxStack(n int) {
	if n <= 0 {
		n = DefaultMaxStack
	}
	vm.maxStack = n
}

// Run executes chunk and returns the value left behind by OP_RETURN.
func (vm *VM) Run(chunk *bytecode.Chunk) (float64, error) {
	if chunk == nil {
		return 0, &RuntimeError{Message: "nil chunk"}
	}
	vm.stack = vm.stack[:0]
	code := chunk.Code

	for ip := 0; ip < len(code); {
		at := ip
		op := code[ip]
		ip++
		switch op {
		case bytecode.OP_CONST:
			if ip >= len(code) {
				return 0, vm.errorAt(chunk, at, "truncated instruction")
			}
			idx := int(code[ip])
			ip++
			if idx >= len(chunk.Consts) {
				return 0, vm.errorAt(chunk, at, fmt.Sprintf("constant index out of range: %d", idx))
			}
			if err := vm.push(chunk, at, chunk.Consts[idx]); err != nil {
				return 0, err
			}
		case bytecode.OP_ADD, bytecode.OP_SUB, bytecode.OP_MUL, bytecode.OP_DIV:
			b, a, err := vm.popPair(chunk, at)
			if err != nil {
				return 0, err
			}
			var res float64
			switch op {
			case bytecode.OP_ADD:
				res = a + b
			case bytecode.OP_SUB:
				res = a - b
			case bytecode.OP_MUL:
				res = a * b
			case bytecode.OP_DIV:
				res = a / b
			}
			vm.stack = append(vm.stack, res)
		case bytecode.OP_NEG:
			if len(vm.stack) == 0 {
				return 0, vm.errorAt(chunk, at, "stack underflow")
			}
			vm.stack[len(vm.stack)-1] = -vm.stack[len(vm.stack)-1]
		case bytecode.OP_RETURN:
			if len(vm.stack) == 0 {
				return 0, vm.errorAt(chunk, at, "stack underflow")
			}
			return vm.stack[len(vm.stack)-1], nil
		default:
			return 0, vm.errorAt(chunk, at, fmt.Sprintf("unknown opcode 0x%02X", op))
		}
	}

	return 0, vm.errorAt(chunk, len(code)-1, "missing return")
}

func (vm *VM) push(chunk *bytecode.Chunk, at int, v float64) error {
	if len(vm.stack) >= vm.maxStack {
		return vm.errorAt(chunk, at, "stack overflow")
	}
	vm.stack = append(vm.stack, v)
	return nil
}

func (vm *VM) popPair(chunk *bytecode.Chunk, at int) (b, a float64, err error) {
	if len(vm.stack) < 2 {
		return 0, 0, vm.errorAt(chunk, at, "stack underflow")
	}
	b = vm.stack[len(vm.stack)-1]
	a = vm.stack[len(vm.stack)-2]
	vm.stack = vm.stack[:len(vm.stack)-2]
	return b, a, nil
}

func (vm *VM) errorAt(chunk *bytecode.Chunk, at int, msg string) error {
	return &RuntimeError{
		Message: msg,
		Line:    chunk.LineAt(at),
		IP:      at,
	}
}
