package bytecode

import (
	"fmt"
	"io"
	"strconv"
)

// Disassembler formats bytecode as a readable assembly-style dump.
type Disassembler struct {
	w io.Writer
}

// NewDisassembler constructs a disassembler that writes to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// Disassemble emits a readable dump for a chunk under the given label.
func (d *Disassembler) Disassemble(label string, chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("nil chunk")
	}
	fmt.Fprintf(d.w, "== %s ==\n", label)
	code := chunk.Code
	for ip := 0; ip < len(code); {
		offset := ip
		op := code[ip]
		ip++
		line := chunk.LineAt(offset)
		lineStr := "-"
		if line > 0 {
			lineStr = strconv.Itoa(line)
		}
		detail, err := d.decodeOperands(op, chunk, &ip)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.w, "%04d %4s %-10s", offset, lineStr, opName(op))
		if detail != "" {
			fmt.Fprintf(d.w, " %s", detail)
		}
		fmt.Fprintln(d.w)
	}
	return nil
}

func (d *Disassembler) decodeOperands(op byte, chunk *Chunk, ip *int) (string, error) {
	switch op {
	case OP_CONST:
		idx, err := readU8(chunk.Code, ip)
		if err != nil {
			return "", err
		}
		if int(idx) >= len(chunk.Consts) {
			return "", fmt.Errorf("const index out of range: %d", idx)
		}
		return fmt.Sprintf("%d ; const[%d]=%s", idx, idx, formatConst(chunk.Consts[idx])), nil
	default:
		return "", nil
	}
}

func opName(op byte) string {
	switch op {
	case OP_CONST:
		return "OP_CONST"
	case OP_ADD:
		return "OP_ADD"
	case OP_SUB:
		return "OP_SUB"
	case OP_MUL:
		return "OP_MUL"
	case OP_DIV:
		return "OP_DIV"
	case OP_NEG:
		return "OP_NEG"
	case OP_RETURN:
		return "OP_RETURN"
	default:
		return fmt.Sprintf("OP_0x%02X", op)
	}
}

func readU8(code []byte, ip *int) (byte, error) {
	if *ip >= len(code) {
		return 0, fmt.Errorf("unexpected end of bytecode")
	}
	val := code[*ip]
	*ip = *ip + 1
	return val, nil
}

func formatConst(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
