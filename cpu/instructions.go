package cpu

// Op is the operation of a decoded instruction. Only MOV exists so far.
type Op int

const (
	// OpInvalid is the zero value.
	OpInvalid Op = iota
	// OpMOV is the data transfer instruction.
	OpMOV
)

// Mnemonic returns the lowercase assembler mnemonic.
func (o Op) Mnemonic() string {
	switch o {
	case OpMOV:
		return "mov"
	default:
		return "???"
	}
}

// Encoding is one of the binary layouts an instruction can use.
type Encoding int

const (
	// Unrecognized means no known pattern matched the leading byte.
	Unrecognized Encoding = iota
	// RegisterToRegisterOrMemory is 100010dw mod reg r/m [disp].
	RegisterToRegisterOrMemory
	// ImmediateToRegisterOrMemory is 1100011w mod 000 r/m [disp] data [data].
	ImmediateToRegisterOrMemory
	// ImmediateToRegister is 1011wreg data [data].
	ImmediateToRegister
	// MemoryToAccumulator is 1010000w addr-lo addr-hi.
	MemoryToAccumulator
	// AccumulatorToMemory is 1010001w addr-lo addr-hi.
	AccumulatorToMemory
)

var encodingNames = [...]string{
	Unrecognized:                "unrecognized",
	RegisterToRegisterOrMemory:  "register to register/memory",
	ImmediateToRegisterOrMemory: "immediate to register/memory",
	ImmediateToRegister:         "immediate to register",
	MemoryToAccumulator:         "memory to accumulator",
	AccumulatorToMemory:         "accumulator to memory",
}

func (e Encoding) String() string {
	if e < 0 || int(e) >= len(encodingNames) {
		return "unknown"
	}
	return encodingNames[e]
}

// Op returns the operation carried by the encoding.
func (e Encoding) Op() Op {
	if e == Unrecognized {
		return OpInvalid
	}
	return OpMOV
}

// Opcode patterns for the MOV family.
const (
	OPMOVMemToAcc  = 0xA0 // 1010000w
	OPMOVAccToMem  = 0xA2 // 1010001w
	OPMOVImmToRM   = 0xC6 // 1100011w
	OPMOVRegToRM   = 0x88 // 100010dw
	OPMOVImmToReg  = 0xB0 // 1011wreg
	OPMOVDirection = 0x02 // d bit of 100010dw
	OPMOVWide      = 0x01 // w bit, all but 1011wreg
	OPMOVImmWide   = 0x08 // w bit of 1011wreg
)

type opcodePattern struct {
	mask     byte
	value    byte
	encoding Encoding
}

// opcodePatterns is ordered from the most significant bits matched to the
// least. Classify relies on this order.
var opcodePatterns = []opcodePattern{
	{0xFE, OPMOVMemToAcc, MemoryToAccumulator},
	{0xFE, OPMOVAccToMem, AccumulatorToMemory},
	{0xFE, OPMOVImmToRM, ImmediateToRegisterOrMemory},
	{0xFC, OPMOVRegToRM, RegisterToRegisterOrMemory},
	{0xF0, OPMOVImmToReg, ImmediateToRegister},
}

// Classify returns the encoding that the leading byte b introduces.
func Classify(b byte) Encoding {
	for _, p := range opcodePatterns {
		if b&p.mask == p.value {
			return p.encoding
		}
	}
	return Unrecognized
}

// IsWide reports the w flag of an opcode byte for encoding e.
func IsWide(e Encoding, b byte) bool {
	if e == ImmediateToRegister {
		return b&OPMOVImmWide != 0
	}
	return b&OPMOVWide != 0
}
