package vm

import "strings"

// argType is the operand-shape tag attached to each mnemonic-table row
// (§4.3): a row is selected by matching both the mnemonic name and the
// exact (at0, at1) pair against the operands the line classifier found.
type argType int

const (
	atNull argType = iota
	atReg
	atImm
	atFloat
	atIdent
)

// mnemonicRow is one entry of the static mnemonic table (C3).
type mnemonicRow struct {
	name string
	op   Opcode
	at0  argType
	at1  argType
}

// mnemonicTable lists (name, opcode, arg0-type, arg1-type). Multiple
// rows may share a name, distinguished by arg-type pair; lookup is
// linear, case-insensitive, first-match-wins (§4.3, §4.6).
var mnemonicTable []mnemonicRow

func init() {
	mnemonicTable = []mnemonicRow{
		{"hlt", HLT, atNull, atNull},
		{"nop", NOP, atNull, atNull},

		{"add", ADD_R, atReg, atReg},
		{"add", ADD_I, atReg, atImm},
		{"sub", SUB_R, atReg, atReg},
		{"sub", SUB_I, atReg, atImm},
		{"rsb", RSB_R, atReg, atReg},
		{"rsb", RSB_I, atReg, atImm},
		{"mul", MUL_R, atReg, atReg},
		{"mul", MUL_I, atReg, atImm},
		{"div", DIV_R, atReg, atReg},
		{"div", DIV_I, atReg, atImm},
		{"rdv", RDV_R, atReg, atReg},
		{"rdv", RDV_I, atReg, atImm},
		{"mod", MOD_R, atReg, atReg},
		{"mod", MOD_I, atReg, atImm},
		{"rmd", RMD_R, atReg, atReg},
		{"rmd", RMD_I, atReg, atImm},

		{"imul", IMUL_R, atReg, atReg},
		{"imul", IMUL_I, atReg, atImm},
		{"idiv", IDIV_R, atReg, atReg},
		{"idiv", IDIV_I, atReg, atImm},
		{"irdv", IRDV_R, atReg, atReg},
		{"irdv", IRDV_I, atReg, atImm},

		{"and", AND_R, atReg, atReg},
		{"and", AND_I, atReg, atImm},
		{"or", OR_R, atReg, atReg},
		{"or", OR_I, atReg, atImm},
		{"xor", XOR_R, atReg, atReg},
		{"xor", XOR_I, atReg, atImm},
		{"not", NOT_R, atReg, atNull},
		{"shr", SHR_R, atReg, atReg},
		{"shr", SHR_I, atReg, atImm},
		{"shl", SHL_R, atReg, atReg},
		{"shl", SHL_I, atReg, atImm},
		{"asr", ASR_R, atReg, atReg},
		{"asr", ASR_I, atReg, atImm},

		{"bt", BT_R, atReg, atReg},
		{"bt", BT_I, atReg, atImm},
		{"bts", BTS_R, atReg, atReg},
		{"bts", BTS_I, atReg, atImm},
		{"btr", BTR_R, atReg, atReg},
		{"btr", BTR_I, atReg, atImm},
		{"bti", BTI_R, atReg, atReg},
		{"bti", BTI_I, atReg, atImm},

		{"mov", MOV_R, atReg, atReg},
		{"mov", MOV_I, atReg, atImm},
		{"xchg", XCHG, atReg, atReg},
		{"cmp", CMP_R, atReg, atReg},
		{"cmp", CMP_I, atReg, atImm},

		{"jmp", JMP, atIdent, atNull},
		{"je", JE, atIdent, atNull},
		{"jl", JL, atIdent, atNull},
		{"jg", JG, atIdent, atNull},
		{"jle", JLE, atIdent, atNull},
		{"jge", JGE, atIdent, atNull},
		{"jne", JNE, atIdent, atNull},
		// Negated-condition aliases carried over from the original
		// mnemonic table; pure spellings, same opcodes as above.
		{"jnge", JL, atIdent, atNull},
		{"jnle", JG, atIdent, atNull},
		{"jng", JLE, atIdent, atNull},
		{"jnl", JGE, atIdent, atNull},

		{"int", INT, atIdent, atNull},
		{"int", INT, atImm, atNull},

		{"push", PUSH, atReg, atNull},
		{"pop", POP, atReg, atNull},

		{"call", CALL, atIdent, atNull},
		{"ret", RET, atNull, atNull},

		{"ldb", LDB_R, atReg, atReg},
		{"ldb", LDB_I, atReg, atImm},
		{"lddb", LDDB_R, atReg, atReg},
		{"lddb", LDDB_I, atReg, atImm},
		{"ldqb", LDQB_R, atReg, atReg},
		{"ldqb", LDQB_I, atReg, atImm},
		{"stb", STB_R, atReg, atReg},
		{"stb", STB_I, atReg, atImm},
		{"stdb", STDB_R, atReg, atReg},
		{"stdb", STDB_I, atReg, atImm},
		{"stqb", STQB_R, atReg, atReg},
		{"stqb", STQB_I, atReg, atImm},

		// "id" is the assembler-only raw-data pseudo-op (§4.6); it has
		// no interpreter opcode of its own, idDirective marks it.
		{"id", idDirective, atImm, atNull},
	}
}

// findMnemonic returns the first row whose name matches (case
// insensitive) and whose arg types match exactly.
func findMnemonic(name string, at0, at1 argType) (mnemonicRow, bool) {
	for _, row := range mnemonicTable {
		if strings.EqualFold(row.name, name) && row.at0 == at0 && row.at1 == at1 {
			return row, true
		}
	}
	return mnemonicRow{}, false
}

// mnemonicExists reports whether any row has this name, regardless of
// arg-type pair — used to distinguish "unknown mnemonic" from "wrong
// operand shape" when producing a diagnostic.
func mnemonicExists(name string) bool {
	for _, row := range mnemonicTable {
		if strings.EqualFold(row.name, name) {
			return true
		}
	}
	return false
}

// registerTable maps case-insensitive register names to indices 0..63
// (§4.3). y50..y63 are present once (Open Question #3: deduplicated).
var registerTable map[string]uint8

func init() {
	registerTable = make(map[string]uint8, 96)

	// Canonical names.
	for i := 0; i < 64; i++ {
		registerTable[canonicalRegName(i)] = uint8(i)
	}

	// Architectural aliases, index-for-index with asm.c's r[] table.
	alias := map[string]int{
		"atr0": 0, "atr1": 1, "rtv": 2, "rta": 3,
		"rg0": 4, "rg1": 5, "rg2": 6, "rg3": 7,
		"sp": 8, "rtaa": 9, "fp": 10,
	}
	for i := 0; i < 13; i++ {
		alias["t"+itoa(i)] = 11 + i // t0..t12
	}
	for i := 0; i < 12; i++ {
		alias["s"+itoa(i)] = 24 + i // s0..s11
	}
	for i := 0; i < 8; i++ {
		alias["p"+itoa(i)] = 36 + i // p0..p7
	}
	alias["xh"] = 44
	alias["xl"] = 45
	alias["yh"] = 46
	alias["yl"] = 47
	alias["zh"] = 48
	alias["zl"] = 49
	for name, idx := range alias {
		registerTable[name] = uint8(idx)
	}
}

func canonicalRegName(i int) string { return "y" + itoa(i) }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := [20]byte{}
	pos := len(digits)
	for i > 0 {
		pos--
		digits[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(digits[pos:])
}

// findRegister looks up a register name case-insensitively.
func findRegister(name string) (uint8, bool) {
	idx, ok := registerTable[strings.ToLower(name)]
	return idx, ok
}

// hostcallTable maps case-sensitive interrupt names to numbers (§4.3).
var hostcallTable = map[string]Opcode{
	"exit":   hcExit,
	"abort":  hcAbort,
	"readc":  hcReadc,
	"writec": hcWritec,
	"loadsd": hcLoadsd,
	"loadad": hcLoadad,
	"loadid": hcLoadid,
	"writes": hcWrites,
	"reads":  hcReads,
	"writen": hcWriten,
	"readn":  hcReadn,
}

// findHostcall looks up a host-call name, case-sensitive.
func findHostcall(name string) (Opcode, bool) {
	n, ok := hostcallTable[name]
	return n, ok
}
