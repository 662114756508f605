package assembler

import (
	"fmt"
	"strings"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
	}
}

// Assemble takes 8086 MOV assembly in nasm syntax and returns the machine code.
// Symbols defined with equ only live for the one source.
func (asm *Assembler) Assemble(src string) ([]byte, error) {
	asm.symbols = make(map[string]int64)
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	var machineCode []byte
	for _, n := range nodes {
		var code []byte
		var err error

		switch n.Type {
		case NodeDirective:
			code, err = asm.generateDirectiveCode(n)
		case NodeInstruction:
			code, err = asm.generateInstructionCode(n)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: error generating code for '%s': %w", n.Line, strings.Join(n.Parts, " "), err)
		}
		machineCode = append(machineCode, code...)
	}

	return machineCode, nil
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, line := range lines {
		if commentIndex := strings.IndexRune(line, ';'); commentIndex != -1 {
			line = line[:commentIndex]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		n := &Node{
			Line:     i + 1,
			Mnemonic: strings.ToLower(mnemonic),
			Parts:    []string{mnemonic},
		}
		if operandStr != "" {
			n.Parts = append(n.Parts, operandStr)
			n.Operands = splitOperands(operandStr)
		}

		// "name equ value" names the directive in the second field.
		if fields := strings.Fields(line); len(fields) == 3 && strings.EqualFold(fields[1], "equ") {
			n.Mnemonic = "equ"
			n.Operands = []string{fields[0], fields[2]}
		}

		if isDirective(n.Mnemonic) {
			n.Type = NodeDirective
			if n.Mnemonic == "equ" {
				if err := asm.defineSymbol(n); err != nil {
					return nil, fmt.Errorf("line %d: %w", n.Line, err)
				}
			}
		} else {
			n.Type = NodeInstruction
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// generateInstructionCode dispatches on the mnemonic.
func (asm *Assembler) generateInstructionCode(n *Node) ([]byte, error) {
	switch n.Mnemonic {
	case "mov":
		operands := make([]Operand, 0, len(n.Operands))
		for _, s := range n.Operands {
			op, err := parseOperand(s, asm)
			if err != nil {
				return nil, err
			}
			operands = append(operands, op)
		}
		return assembleMove(operands)
	}
	return nil, fmt.Errorf("unsupported instruction: %s", n.Mnemonic)
}

// splitOperands splits on commas outside brackets.
func splitOperands(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
