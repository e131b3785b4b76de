package vm

import "strings"

// preparedLine is a classified, non-blank source line together with
// its original 1-based line number, used for diagnostics.
type preparedLine struct {
	lineNo int
	ln     line
}

// Assemble runs the full two-pass pipeline (C1-C6) over source text
// and returns the packed binary instruction stream, or the first
// fatal AsmError encountered.
func Assemble(source string) ([]byte, error) {
	var prepared []preparedLine

	for i, raw := range splitLines(source) {
		toks := lex(raw)
		if len(toks) == 0 {
			continue
		}
		ln, err := classifyLine(toks, i+1)
		if err != nil {
			return nil, err
		}
		if !ln.HasTag && !ln.HasOp {
			continue
		}
		prepared = append(prepared, preparedLine{lineNo: i + 1, ln: ln})
	}

	// Pass 1: label capture. One prepared line == one instruction
	// slot, so its position in `prepared` is its instruction index.
	syms := newSymbolTable()
	for idx, p := range prepared {
		if p.ln.HasTag {
			syms.define(p.ln.Tag, idx)
		}
	}

	// Pass 2: encode.
	out := make([]byte, 0, len(prepared)*instructionBytes)
	for idx, p := range prepared {
		rec, err := encodeLine(p.ln, idx, syms, p.lineNo)
		if err != nil {
			return nil, err
		}
		out = append(out, rec...)
	}

	return out, nil
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(source, "\n")
}
