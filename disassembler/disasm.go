// Package disassembler decodes 8086 MOV instructions from raw machine code
// and renders them as nasm-compatible assembly.
package disassembler

// Decode decodes code with the default Decoder: unknown opcodes halt the
// pass and any input length is accepted.
func Decode(code []byte) ([]Instruction, error) {
	return New().Decode(code)
}

// Disassemble takes a byte slice of 8086 machine code and returns it as
// assembly text, one instruction per line.
func Disassemble(code []byte) (string, error) {
	return New().Disassemble(code, Layout{})
}
