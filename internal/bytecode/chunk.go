package bytecode

// Chunk is a compiled bytecode sequence with its constant pool.
// Lines runs parallel to Code: Lines[i] is the source line that produced
// Code[i], which lets the VM map a runtime fault back to source without
// retaining tokens.
type Chunk struct {
	Code   []byte
	Lines  []int
	Consts []float64
}

// MaxConsts is the constant pool capacity implied by the one-byte operand
// of OP_CONST.
const MaxConsts = 256

// Write appends one byte and records its originating source line.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConst appends v to the constant pool and returns its index.
// Duplicates are not pooled. Callers enforce the MaxConsts cap.
func (c *Chunk) AddConst(v float64) int {
	c.Consts = append(c.Consts, v)
	return len(c.Consts) - 1
}

// LineAt returns the source line for the byte at offset, or 0 when the
// offset is out of range.
func (c *Chunk) LineAt(offset int) int {
	if offset < 0 || offset >= len(c.Lines) {
		return 0
	}
	return c.Lines[offset]
}
