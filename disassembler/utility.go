package disassembler

import (
	"fmt"
	"strings"
)

// formatDisp renders a displacement as a signed suffix. Zero renders as
// nothing, so [bp+0] and [bp] print the same.
func formatDisp(v int64) string {
	switch {
	case v > 0:
		return fmt.Sprintf("+%d", v)
	case v < 0:
		return fmt.Sprintf("%d", v)
	}
	return ""
}

// hexBytes renders raw bytes as lowercase hex pairs separated by spaces.
func hexBytes(raw []byte) string {
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
