package vm

import "testing"

func TestLexFirstTokenIsMnemonic(t *testing.T) {
	toks := lex("add rg0, rg1 ; trailing")
	var lexemes []string
	for _, tok := range toks {
		lexemes = append(lexemes, tok.Lexeme)
	}
	assert(t, len(lexemes) > 0, "expected at least one token")
	assert(t, lexemes[0] == "add", "first token = %q, want add", lexemes[0])
}

func TestLexStringEscapeLookbehind(t *testing.T) {
	toks := lex(`"a\"b"`)
	assert(t, len(toks) == 1, "expected a single string token, got %d", len(toks))
	assert(t, toks[0].Lexeme == `"a\"b"`, "unexpected string lexeme: %q", toks[0].Lexeme)
}

func TestClassifyIntForms(t *testing.T) {
	cases := []struct {
		lexeme string
		want   uint64
	}{
		{"42", 42},
		{"-42", 1<<64 - 42},
		{"ffh", 0xff},
		{"-0xFF", 1<<64 - 0xff},
		{"17o", 15},
		{"1010b", 10},
		{"077", 63},
	}
	for _, c := range cases {
		v, _, ok, err := classifyInt(c.lexeme)
		assert(t, err == nil, "classifyInt(%q) error: %v", c.lexeme, err)
		assert(t, ok, "classifyInt(%q) not recognized as an integer", c.lexeme)
		assert(t, v == c.want, "classifyInt(%q) = %d, want %d", c.lexeme, v, c.want)
	}
}

func TestClassifyIntRejectsBadDigit(t *testing.T) {
	_, _, ok, err := classifyInt("12b") // '2' is not a valid base-2 digit
	assert(t, ok, "expected lexeme to be recognized as an attempted integer literal")
	assert(t, err != nil, "expected INTEGER_CONST_ISNT_VALID error")
}

func TestRegisterTableDeduplicated(t *testing.T) {
	// y50..y63 must resolve to their canonical index exactly once;
	// Open Question #3's duplicate rows are not carried forward.
	idx, ok := findRegister("y55")
	assert(t, ok, "y55 should resolve")
	assert(t, idx == 55, "y55 resolved to %d, want 55", idx)
}

func TestMnemonicArgShapeSelectsDistinctOpcodes(t *testing.T) {
	regRow, ok := findMnemonic("add", atReg, atReg)
	assert(t, ok, "add reg,reg should resolve")
	assert(t, regRow.op == ADD_R, "add reg,reg resolved to %v, want ADD_R", regRow.op)

	immRow, ok := findMnemonic("add", atReg, atImm)
	assert(t, ok, "add reg,imm should resolve")
	assert(t, immRow.op == ADD_I, "add reg,imm resolved to %v, want ADD_I", immRow.op)
}

func TestIntHostcallByName(t *testing.T) {
	prog := assembleAndCheck(t, "int writec")
	assert(t, prog[0].Op == INT, "expected INT opcode, got %v", prog[0].Op)
	assert(t, prog[0].Imm == uint32(hcWritec), "int writec resolved to %d, want %d", prog[0].Imm, hcWritec)
}

func TestUnknownMnemonicFails(t *testing.T) {
	_, err := Assemble("bogusop rg0, rg1")
	assert(t, err != nil, "expected failure on unknown mnemonic")
	asmErr, ok := err.(*AsmError)
	assert(t, ok, "expected *AsmError, got %T", err)
	assert(t, asmErr.Kind == AsmIncorrectOpcode, "expected INCORRECT_OPCODE, got %v", asmErr.Kind)
}

func TestWrongOperandShapeFails(t *testing.T) {
	// "not" only accepts a single register operand (§4.3's mnemonic
	// table); giving it two is a known mnemonic with the wrong shape.
	_, err := Assemble("not rg0, rg1")
	assert(t, err != nil, "expected failure on wrong operand shape")
	asmErr, ok := err.(*AsmError)
	assert(t, ok, "expected *AsmError, got %T", err)
	assert(t, asmErr.Kind == AsmIncorrectInstruction, "expected INCORRECT_INSTRUCTION, got %v", asmErr.Kind)
}

func TestIDDirectiveEmitsRawWord(t *testing.T) {
	bin, err := Assemble("id 0x1122334455667788")
	assert(t, err == nil, "failed to assemble id directive: %v", err)
	assert(t, len(bin) == instructionBytes, "expected one 8-byte word, got %d bytes", len(bin))
	// Little-endian: low byte first.
	assert(t, bin[0] == 0x88, "low byte = 0x%02x, want 0x88", bin[0])
	assert(t, bin[7] == 0x11, "high byte = 0x%02x, want 0x11", bin[7])
}
