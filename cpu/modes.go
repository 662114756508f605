package cpu

// Mode is the 2-bit mod field of a mode byte.
type Mode uint8

const (
	// 00: Memory, no displacement (except r/m 110: direct address)
	ModeMemory Mode = 0
	// 01: Memory, 8-bit displacement, sign-extended
	ModeMemory8 Mode = 1
	// 10: Memory, 16-bit displacement
	ModeMemory16 Mode = 2
	// 11: Register, r/m names a register
	ModeRegister Mode = 3
)

func (m Mode) String() string {
	switch m {
	case ModeMemory:
		return "memory"
	case ModeMemory8:
		return "memory+d8"
	case ModeMemory16:
		return "memory+d16"
	case ModeRegister:
		return "register"
	}
	return "?"
}

// ModeOf extracts the mod field from a mode byte.
func ModeOf(modeByte byte) Mode {
	return Mode(modeByte >> 6)
}

// RegField extracts bits 5-3 of a mode byte.
func RegField(modeByte byte) uint8 {
	return (modeByte >> 3) & 7
}

// RMField extracts bits 2-0 of a mode byte.
func RMField(modeByte byte) uint8 {
	return modeByte & 7
}

// Base is the register part of a memory operand, selected by the r/m field.
// Values 0-7 equal the r/m code; BaseDirect has no registers at all.
type Base uint8

const (
	BaseBXSI Base = iota // 000
	BaseBXDI             // 001
	BaseBPSI             // 010
	BaseBPDI             // 011
	BaseSI               // 100
	BaseDI               // 101
	BaseBP               // 110, mod != 00
	BaseBX               // 111
	BaseDirect           // 110 with mod 00: 16-bit address follows
)

var baseRegisters = [...][]Register{
	BaseBXSI:   {BX, SI},
	BaseBXDI:   {BX, DI},
	BaseBPSI:   {BP, SI},
	BaseBPDI:   {BP, DI},
	BaseSI:     {SI},
	BaseDI:     {DI},
	BaseBP:     {BP},
	BaseBX:     {BX},
	BaseDirect: nil,
}

// ResolveBase maps the r/m field of a memory mode to its base registers.
// r/m 110 with no displacement is the direct address form, not [bp].
func ResolveBase(rm uint8, m Mode) Base {
	rm &= 7
	if m == ModeMemory && rm == uint8(BaseBP) {
		return BaseDirect
	}
	return Base(rm)
}

// Registers returns a copy of the base registers, empty for BaseDirect.
func (b Base) Registers() []Register {
	if int(b) >= len(baseRegisters) {
		return nil
	}
	return append([]Register(nil), baseRegisters[b]...)
}

// RM returns the r/m field value that encodes b.
func (b Base) RM() uint8 {
	if b == BaseDirect {
		return uint8(BaseBP)
	}
	return uint8(b)
}

// String joins the base registers with '+'.
func (b Base) String() string {
	var s string
	for i, r := range b.Registers() {
		if i > 0 {
			s += "+"
		}
		s += r.String()
	}
	return s
}

// LookupBase finds the base whose registers are exactly regs, in any order.
func LookupBase(regs []Register) (Base, bool) {
	for b := BaseBXSI; b <= BaseBX; b++ {
		want := baseRegisters[b]
		if len(want) != len(regs) {
			continue
		}
		match := true
		for _, r := range regs {
			if r != want[0] && (len(want) < 2 || r != want[1]) {
				match = false
			}
		}
		if match && (len(regs) < 2 || regs[0] != regs[1]) {
			return b, true
		}
	}
	return 0, false
}

// DisplacementBytes returns how many bytes follow the mode byte for the
// memory operand: 0, 1 or 2. The direct address form counts as 2.
func DisplacementBytes(m Mode, rm uint8) int {
	switch m {
	case ModeMemory:
		if ResolveBase(rm, m) == BaseDirect {
			return 2
		}
		return 0
	case ModeMemory8:
		return 1
	case ModeMemory16:
		return 2
	}
	return 0
}
