package vm

import "strings"

// classifyInt recognizes a lexeme as a signed integer literal in one
// of the forms of §4.2: decimal, and based forms with `0x/0o/0b/0d`
// prefixes or `h/o,q/b,y/d` suffixes, plus a bare leading-zero literal
// as octal. Conversion is positional accumulation; a digit that
// disagrees with the declared base fails. ok is false for lexemes that
// are not integer literals at all (not an error, just "not a number").
func classifyInt(lexeme string) (value uint64, neg bool, ok bool, err error) {
	s := lexeme
	if s == "" {
		return 0, false, false, nil
	}
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false, false, nil
	}

	base := 10
	digits := s

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "0h"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(lower, "0o"), strings.HasPrefix(lower, "0q"):
		base, digits = 8, s[2:]
	case strings.HasPrefix(lower, "0b"), strings.HasPrefix(lower, "0y"):
		base, digits = 2, s[2:]
	case strings.HasPrefix(lower, "0d"):
		base, digits = 10, s[2:]
	case strings.HasSuffix(lower, "h"):
		base, digits = 16, s[:len(s)-1]
	case strings.HasSuffix(lower, "o") || strings.HasSuffix(lower, "q"):
		base, digits = 8, s[:len(s)-1]
	case strings.HasSuffix(lower, "b") || strings.HasSuffix(lower, "y"):
		base, digits = 2, s[:len(s)-1]
	case strings.HasSuffix(lower, "d"):
		base, digits = 10, s[:len(s)-1]
	case len(s) > 1 && s[0] == '0':
		base, digits = 8, s[1:]
	}

	if digits == "" || !isAllDigitChars(digits) {
		return 0, false, false, nil
	}

	var acc uint64
	for i := 0; i < len(digits); i++ {
		d, ok := digitValue(digits[i])
		if !ok || d >= base {
			return 0, false, true, newAsmErr(AsmIntegerConstIsntValid, 0,
				"digit %q is not valid in base %d literal %q", digits[i], base, lexeme)
		}
		acc = acc*uint64(base) + uint64(d)
	}

	if neg {
		acc = -acc // wraps modulo 2^64, per §4.2
	}
	return acc, neg, true, nil
}

func isAllDigitChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if _, ok := digitValue(s[i]); !ok {
			return false
		}
	}
	return true
}

func digitValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
