// Package vm implements the idlevm assembler and bytecode interpreter:
// a line-oriented mnemonic assembler that packs source into 8-byte
// instruction records, and a register-machine interpreter that executes
// them.
package vm

import (
	"encoding/binary"
	"fmt"
)

// Opcode is the stable 16-bit instruction number written into the `op`
// field of every instruction record.
type Opcode uint16

const (
	HLT Opcode = iota
	NOP
	ADD_R
	ADD_I
	SUB_R
	SUB_I
	RSB_R
	RSB_I
	MUL_R
	MUL_I
	DIV_R
	DIV_I
	RDV_R
	RDV_I
	MOD_R
	MOD_I
	RMD_R
	RMD_I
	IMUL_R
	IMUL_I
	IDIV_R
	IDIV_I
	IRDV_R
	IRDV_I
	AND_R
	AND_I
	OR_R
	OR_I
	XOR_R
	XOR_I
	NOT_R
	SHR_R
	SHR_I
	SHL_R
	SHL_I
	MOV_R
	MOV_I
	XCHG
	CMP_R
	CMP_I
	JMP
	JE
	JL
	JG
	JLE
	JGE
	JNE
	INT
	PUSH
	POP
	ASR_R
	ASR_I
	BT_R
	BT_I
	BTS_R
	BTS_I
	BTR_R
	BTR_I
	BTI_R
	BTI_I
	CALL
	RET
	LDB_R
	LDB_I
	LDDB_R
	LDDB_I
	LDQB_R
	LDQB_I
	STB_R
	STB_I
	STDB_R
	STDB_I
	STQB_R
	STQB_I
)

// idDirective is the assembler-only pseudo-op that overwrites the next
// 8 bytes of the output stream with a raw integer literal instead of
// emitting a structured record. It never appears in a decoded program.
const idDirective Opcode = 0xF001

// Flag bits written into regs[0] by CMP.
const (
	flagEqual   uint64 = 0x1
	flagGreater uint64 = 0x2
	flagLess    uint64 = 0x4
)

// Host-call numbers (C8).
const (
	hcExit Opcode = iota
	hcAbort
	hcReadc
	hcWritec
	hcLoadsd
	hcLoadad
	hcLoadid
	hcWrites
	hcReads
	hcWriten
	hcReadn
)

var opcodeNames = map[Opcode]string{
	HLT: "hlt", NOP: "nop",
	ADD_R: "add_r", ADD_I: "add_i", SUB_R: "sub_r", SUB_I: "sub_i",
	RSB_R: "rsb_r", RSB_I: "rsb_i", MUL_R: "mul_r", MUL_I: "mul_i",
	DIV_R: "div_r", DIV_I: "div_i", RDV_R: "rdv_r", RDV_I: "rdv_i",
	MOD_R: "mod_r", MOD_I: "mod_i", RMD_R: "rmd_r", RMD_I: "rmd_i",
	IMUL_R: "imul_r", IMUL_I: "imul_i", IDIV_R: "idiv_r", IDIV_I: "idiv_i",
	IRDV_R: "irdv_r", IRDV_I: "irdv_i",
	AND_R: "and_r", AND_I: "and_i", OR_R: "or_r", OR_I: "or_i",
	XOR_R: "xor_r", XOR_I: "xor_i", NOT_R: "not_r",
	SHR_R: "shr_r", SHR_I: "shr_i", SHL_R: "shl_r", SHL_I: "shl_i",
	MOV_R: "mov_r", MOV_I: "mov_i", XCHG: "xchg",
	CMP_R: "cmp_r", CMP_I: "cmp_i",
	JMP: "jmp", JE: "je", JL: "jl", JG: "jg", JLE: "jle", JGE: "jge", JNE: "jne",
	INT: "int", PUSH: "push", POP: "pop",
	ASR_R: "asr_r", ASR_I: "asr_i",
	BT_R: "bt_r", BT_I: "bt_i", BTS_R: "bts_r", BTS_I: "bts_i",
	BTR_R: "btr_r", BTR_I: "btr_i", BTI_R: "bti_r", BTI_I: "bti_i",
	CALL: "call", RET: "ret",
	LDB_R: "ldb_r", LDB_I: "ldb_i", LDDB_R: "lddb_r", LDDB_I: "lddb_i",
	LDQB_R: "ldqb_r", LDQB_I: "ldqb_i",
	STB_R: "stb_r", STB_I: "stb_i", STDB_R: "stdb_r", STDB_I: "stdb_i",
	STQB_R: "stqb_r", STQB_I: "stqb_i",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("opcode(%d)", uint16(op))
}

// instructionBytes is the on-disk/in-memory record size, fixed by §3/§6.
const instructionBytes = 8

// Instruction is one 64-bit record: opcode, up to two register
// operands, and a 32-bit immediate.
type Instruction struct {
	Op   Opcode
	Arg0 uint8
	Arg1 uint8
	Imm  uint32
}

// Bytes packs the instruction into its 8-byte little-endian wire form.
func (in Instruction) Bytes() []byte {
	b := make([]byte, instructionBytes)
	binary.LittleEndian.PutUint16(b[0:2], uint16(in.Op))
	b[2] = in.Arg0
	b[3] = in.Arg1
	binary.LittleEndian.PutUint32(b[4:8], in.Imm)
	return b
}

// DecodeInstruction unpacks one 8-byte record. It fails only when b is
// not exactly 8 bytes long: any 8-byte pattern decodes to some
// (possibly unknown) opcode, rejected at dispatch time instead.
func DecodeInstruction(b []byte) (Instruction, error) {
	if len(b) != instructionBytes {
		return Instruction{}, fmt.Errorf("vm: instruction record must be %d bytes, got %d", instructionBytes, len(b))
	}
	return Instruction{
		Op:   Opcode(binary.LittleEndian.Uint16(b[0:2])),
		Arg0: b[2],
		Arg1: b[3],
		Imm:  binary.LittleEndian.Uint32(b[4:8]),
	}, nil
}

// rawWord packs v directly into 8 bytes, used by the assembler's `id`
// directive to emit inline data instead of a structured instruction.
func rawWord(v uint64) []byte {
	b := make([]byte, instructionBytes)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// DecodeProgram splits a binary stream into a sequence of
// instructions, 8 bytes at a time.
func DecodeProgram(data []byte) ([]Instruction, error) {
	if len(data)%instructionBytes != 0 {
		return nil, fmt.Errorf("vm: program length %d is not a multiple of %d", len(data), instructionBytes)
	}
	out := make([]Instruction, 0, len(data)/instructionBytes)
	for off := 0; off < len(data); off += instructionBytes {
		in, err := DecodeInstruction(data[off : off+instructionBytes])
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}
