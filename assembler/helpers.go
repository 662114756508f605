package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseConstant reads a decimal, 0x/$/h hex, 0b binary, character or
// equ-defined value.
func parseConstant(s string, asm *Assembler) (int64, error) {
	s = strings.TrimSpace(s)

	// Character literal ('A')
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return int64(s[1]), nil
	}

	if asm != nil {
		if val, ok := asm.symbols[strings.ToLower(s)]; ok {
			return val, nil
		}
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}

	base := 10
	ls := strings.ToLower(s)
	switch {
	case strings.HasPrefix(s, "$"):
		s = s[1:]
		base = 16
	case strings.HasPrefix(ls, "0x"):
		s = s[2:]
		base = 16
	case strings.HasPrefix(ls, "0b"):
		s = s[2:]
		base = 2
	case strings.HasSuffix(ls, "h") && len(s) > 1:
		s = s[:len(s)-1]
		base = 16
	}

	val, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	if neg {
		val = -val
	}
	return val, nil
}

// toByte accepts -128..255.
func toByte(v int64) (byte, error) {
	if v < -128 || v > 255 {
		return 0, fmt.Errorf("value %d does not fit in a byte", v)
	}
	return byte(v), nil
}

// toWord accepts -32768..65535.
func toWord(v int64) (uint16, error) {
	if v < -32768 || v > 65535 {
		return 0, fmt.Errorf("value %d does not fit in a word", v)
	}
	return uint16(v), nil
}

// fitsInt8 reports whether v can be encoded as a sign-extended byte.
func fitsInt8(v int64) bool {
	return v >= -128 && v <= 127
}
