package vm

import "strings"

// opArgType maps a classified operand to the arg-type tag the
// mnemonic table matches against; position i beyond len(args) is
// atNull (operand absent).
func opArgType(args []operand, i int) argType {
	if i >= len(args) {
		return atNull
	}
	switch args[i].Kind {
	case kindRegister:
		return atReg
	case kindImmediate:
		return atImm
	case kindIdentifier:
		return atIdent
	default:
		return argType(-1) // string or other: matches no row
	}
}

// encodeLine emits the 8-byte record (or, for the `id` pseudo-op, the
// 8-byte raw word) for one classified line. curIdx is this line's
// instruction index; it doubles as pass-2's "next output index" I
// since pass-1/pass-2 stay aligned one line == one instruction (§4.5,
// §9 design note 2).
func encodeLine(ln line, curIdx int, syms *symbolTable, lineNo int) ([]byte, error) {
	if !ln.HasOp {
		// Naked "label:" line: anchors a label to an instruction slot
		// without otherwise doing anything (§4.4 point 4).
		return Instruction{Op: NOP}.Bytes(), nil
	}

	if strings.EqualFold(ln.Mnemonic, "id") {
		if len(ln.Args) != 1 || ln.Args[0].Kind != kindImmediate {
			return nil, newAsmErr(AsmIncorrectInstruction, lineNo, "id requires exactly one integer operand")
		}
		return rawWord(ln.Args[0].ImmValue), nil
	}

	at0 := opArgType(ln.Args, 0)
	at1 := opArgType(ln.Args, 1)

	row, found := findMnemonic(ln.Mnemonic, at0, at1)
	if !found {
		if mnemonicExists(ln.Mnemonic) {
			return nil, newAsmErr(AsmIncorrectInstruction, lineNo,
				"mnemonic %q does not accept this operand shape", ln.Mnemonic)
		}
		return nil, newAsmErr(AsmIncorrectOpcode, lineNo, "unknown mnemonic %q", ln.Mnemonic)
	}

	in := Instruction{Op: row.op}

	isIntHostcall := strings.EqualFold(ln.Mnemonic, "int") && at0 == atIdent

	for i, at := range []argType{at0, at1} {
		if at == atNull || i >= len(ln.Args) {
			continue
		}
		arg := ln.Args[i]
		switch at {
		case atReg:
			if i == 0 {
				in.Arg0 = arg.Reg
			} else {
				in.Arg1 = arg.Reg
			}
		case atImm:
			in.Imm = uint32(arg.ImmValue)
		case atIdent:
			if isIntHostcall {
				num, ok := findHostcall(arg.Ident)
				if !ok {
					return nil, newAsmErr(AsmIncorrectArgument, lineNo, "unknown host-call %q", arg.Ident)
				}
				in.Imm = uint32(num)
				continue
			}
			target, ok := syms.resolve(arg.Ident)
			if !ok {
				return nil, newAsmErr(AsmIncorrectArgument, lineNo, "undefined identifier %q", arg.Ident)
			}
			delta := int64(target) - int64(curIdx) - 1
			in.Imm = uint32(int32(delta))
		}
	}

	return in.Bytes(), nil
}
