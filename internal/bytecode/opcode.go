package bytecode

// OpCode enumerates bytecode operations.
const (
	OP_CONST byte = iota // operand: one-byte constant pool index
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_NEG
	OP_RETURN
)
