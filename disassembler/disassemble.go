package disassembler

import (
	"fmt"
	"strings"
)

// Layout controls the shape of a text listing.
type Layout struct {
	// Header starts the listing with a "bits 16" directive.
	Header bool
	// Addresses appends the offset and raw bytes to each line as a comment.
	Addresses bool
	// Nasm renders every instruction with RenderNasm.
	Nasm bool
}

// Disassemble decodes code and renders the listing. Bytes skipped under
// SkipUnknown come out as db directives in their original position.
func (d *Decoder) Disassemble(code []byte, layout Layout) (string, error) {
	l, err := d.DecodeListing(code)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if layout.Header {
		out.WriteString("bits 16\n\n")
	}

	skipped := l.Skipped
	for _, inst := range l.Instructions {
		n := 0
		for n < len(skipped) && skipped[n] < inst.Offset {
			n++
		}
		writeSkipped(&out, code, skipped[:n], layout)
		skipped = skipped[n:]

		text := Render(inst)
		if layout.Nasm {
			text = RenderNasm(inst)
		}
		if layout.Addresses {
			text = withAddress(text, inst.Offset, code[inst.Offset:inst.Offset+inst.Size])
		}
		out.WriteString(text)
		out.WriteByte('\n')
	}
	writeSkipped(&out, code, skipped, layout)

	return out.String(), nil
}

// writeSkipped emits one data block per run of consecutive offsets.
func writeSkipped(out *strings.Builder, code []byte, offsets []int, layout Layout) {
	for len(offsets) > 0 {
		end := 1
		for end < len(offsets) && offsets[end] == offsets[end-1]+1 {
			end++
		}
		start := offsets[0]
		out.WriteString(formatHexBytes(code[start:start+end], start, layout.Addresses))
		offsets = offsets[end:]
	}
}

func withAddress(text string, offset int, raw []byte) string {
	return fmt.Sprintf("%-24s ; %04x: %s", text, offset, hexBytes(raw))
}
