package assembler

import (
	"fmt"
)

func isDirective(mnemonic string) bool {
	switch mnemonic {
	case "bits", "db", "dw", "equ":
		return true
	}
	return false
}

// generateDirectiveCode generates the binary data for assembler directives.
func (asm *Assembler) generateDirectiveCode(n *Node) ([]byte, error) {
	switch n.Mnemonic {
	case "bits":
		if len(n.Operands) != 1 {
			return nil, fmt.Errorf("bits requires a single value")
		}
		v, err := parseConstant(n.Operands[0], asm)
		if err != nil {
			return nil, err
		}
		if v != 16 {
			return nil, fmt.Errorf("only bits 16 is supported, got %d", v)
		}
		return nil, nil

	case "equ":
		return nil, nil

	case "db", "dw":
		if len(n.Operands) == 0 {
			return nil, fmt.Errorf("%s requires at least one value", n.Mnemonic)
		}
		var out []byte
		for _, s := range n.Operands {
			v, err := parseConstant(s, asm)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", n.Mnemonic, err)
			}
			if n.Mnemonic == "db" {
				b, err := toByte(v)
				if err != nil {
					return nil, err
				}
				out = append(out, b)
				continue
			}
			w, err := toWord(v)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(w), byte(w>>8))
		}
		return out, nil
	}

	return nil, fmt.Errorf("unknown directive: %s", n.Mnemonic)
}

// defineSymbol records "name equ value" so later operands can use name.
func (asm *Assembler) defineSymbol(n *Node) error {
	if len(n.Operands) != 2 {
		return fmt.Errorf("equ requires a name and a value")
	}
	v, err := parseConstant(n.Operands[1], asm)
	if err != nil {
		return err
	}
	asm.symbols[lower(n.Operands[0])] = v
	return nil
}
