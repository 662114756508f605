package cpu

// Register is one of the sixteen general purpose register names.
// Codes 0-7 are the byte registers, 8-15 the word registers, so the low
// three bits always equal the reg/rm field that selects them.
type Register uint8

// Byte registers (w=0).
const (
	AL Register = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
)

// Word registers (w=1).
const (
	AX Register = iota + 8
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

// NumRegisters is the size of the register table.
const NumRegisters = 16

var registerNames = [NumRegisters]string{
	"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh",
	"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
}

// ResolveRegister maps a 3-bit reg or r/m field and the w flag to a register.
// Bits above the low three are ignored, so every input is valid.
func ResolveRegister(code uint8, wide bool) Register {
	r := Register(code & 7)
	if wide {
		r |= 8
	}
	return r
}

// Code returns the 3-bit field value that selects r.
func (r Register) Code() uint8 {
	return uint8(r) & 7
}

// Wide reports whether r is a 16-bit register.
func (r Register) Wide() bool {
	return r&8 != 0
}

// String returns the lowercase assembler name.
func (r Register) String() string {
	if int(r) >= NumRegisters {
		return "?"
	}
	return registerNames[r]
}

// LookupRegister finds a register by its assembler name, case-insensitive.
func LookupRegister(name string) (Register, bool) {
	if len(name) != 2 {
		return 0, false
	}
	lc := []byte{name[0] | 0x20, name[1] | 0x20}
	for i, n := range registerNames {
		if n == string(lc) {
			return Register(i), true
		}
	}
	return 0, false
}

// Accumulator returns AL or AX.
func Accumulator(wide bool) Register {
	return ResolveRegister(0, wide)
}
