package bytecode

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassembleChunk(t *testing.T) {
	chunk := &Chunk{}
	idx := chunk.AddConst(2.5)
	chunk.Write(OP_CONST, 1)
	chunk.Write(byte(idx), 1)
	chunk.Write(OP_NEG, 1)
	chunk.Write(OP_RETURN, 2)

	var buf bytes.Buffer
	if err := NewDisassembler(&buf).Disassemble("test", chunk); err != nil {
		t.Fatalf("disassemble: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"== test ==", "OP_CONST", "const[0]=2.5", "OP_NEG", "OP_RETURN"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "0003    2 OP_RETURN") {
		t.Fatalf("expected offset/line columns, got:\n%s", out)
	}
}

func TestDisassembleBadConstIndex(t *testing.T) {
	chunk := &Chunk{}
	chunk.Write(OP_CONST, 1)
	chunk.Write(3, 1)

	var buf bytes.Buffer
	if err := NewDisassembler(&buf).Disassemble("bad", chunk); err == nil {
		t.Fatalf("expected error for out-of-range constant")
	}
}

func TestDisassembleTruncatedInstruction(t *testing.T) {
	chunk := &Chunk{}
	chunk.Write(OP_CONST, 1)

	var buf bytes.Buffer
	if err := NewDisassembler(&buf).Disassemble("trunc", chunk); err == nil {
		t.Fatalf("expected error for truncated operand")
	}
}

func TestChunkLineTableStaysParallel(t *testing.T) {
	chunk := &Chunk{}
	chunk.Write(OP_CONST, 7)
	chunk.Write(0, 7)
	chunk.Write(OP_RETURN, 9)
	if len(chunk.Lines) != len(chunk.Code) {
		t.Fatalf("line table length %d, code length %d", len(chunk.Lines), len(chunk.Code))
	}
	if chunk.LineAt(2) != 9 {
		t.Fatalf("expected line 9 at offset 2, got %d", chunk.LineAt(2))
	}
	if chunk.LineAt(99) != 0 {
		t.Fatalf("expected 0 for out-of-range offset")
	}
}
