package disassembler

import (
	"fmt"
	"strings"
)

// formatHexBytes formats a slice of bytes into db directives, 16 bytes per line.
func formatHexBytes(data []byte, baseAddr int, addresses bool) string {
	if len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	const bytesPerLine = 16

	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]

		var line strings.Builder
		line.WriteString("db ")
		for j, b := range chunk {
			if j > 0 {
				line.WriteString(", ")
			}
			fmt.Fprintf(&line, "0x%02x", b)
		}

		text := line.String()
		if addresses {
			text = withAddress(text, baseAddr+i, chunk)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String()
}
