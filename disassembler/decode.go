package disassembler

import (
	"errors"
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
	"github.com/sirupsen/logrus"
)

// Phase is the byte the decoder expects next.
type Phase int

const (
	AwaitingOpcode Phase = iota
	AwaitingModeByte
	AwaitingDisplacementLow
	AwaitingDisplacementHigh
	AwaitingDataLow
	AwaitingDataHigh
)

var phaseNames = [...]string{
	AwaitingOpcode:           "awaiting opcode",
	AwaitingModeByte:         "awaiting mode byte",
	AwaitingDisplacementLow:  "awaiting displacement low",
	AwaitingDisplacementHigh: "awaiting displacement high",
	AwaitingDataLow:          "awaiting data low",
	AwaitingDataHigh:         "awaiting data high",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown phase"
	}
	return phaseNames[p]
}

// state is everything known about the instruction in flight. It is never
// modified in place: each step returns a new value. The zero value waits
// for an opcode.
type state struct {
	phase     Phase
	offset    int
	opcode    byte
	encoding  cpu.Encoding
	wide      bool
	toReg     bool
	reg       cpu.Register
	mode      cpu.Mode
	rm        uint8
	dispBytes int
	dispLo    byte
	dispHi    byte
	dataLo    byte
	dataHi    byte
}

// step feeds one byte at position offset into s. It returns the next state
// and, when b was the last byte of an instruction, the instruction.
func step(s state, b byte, offset int) (state, *Instruction, error) {
	switch s.phase {
	case AwaitingOpcode:
		enc := cpu.Classify(b)
		if enc == cpu.Unrecognized {
			return state{}, nil, &DecodeError{Offset: offset, Byte: b, Phase: AwaitingOpcode, Err: ErrUnrecognizedOpcode}
		}

		next := state{
			offset:   offset,
			opcode:   b,
			encoding: enc,
			wide:     cpu.IsWide(enc, b),
		}
		switch enc {
		case cpu.RegisterToRegisterOrMemory:
			next.toReg = b&cpu.OPMOVDirection != 0
			next.phase = AwaitingModeByte
		case cpu.ImmediateToRegisterOrMemory:
			next.phase = AwaitingModeByte
		case cpu.ImmediateToRegister:
			next.reg = cpu.ResolveRegister(b, next.wide)
			next.phase = AwaitingDataLow
		case cpu.MemoryToAccumulator, cpu.AccumulatorToMemory:
			next.mode = cpu.ModeMemory
			next.rm = cpu.BaseDirect.RM()
			next.dispBytes = 2
			next.phase = AwaitingDisplacementLow
		}
		return next, nil, nil

	case AwaitingModeByte:
		next := s
		next.mode = cpu.ModeOf(b)
		next.rm = cpu.RMField(b)
		// For immediate to register/memory the reg field is an opcode
		// extension (000); it is not an operand.
		next.reg = cpu.ResolveRegister(cpu.RegField(b), s.wide)
		if next.mode != cpu.ModeRegister {
			next.dispBytes = cpu.DisplacementBytes(next.mode, next.rm)
		}
		if next.dispBytes > 0 {
			next.phase = AwaitingDisplacementLow
			return next, nil, nil
		}
		return next.afterDisplacement(offset)

	case AwaitingDisplacementLow:
		next := s
		next.dispLo = b
		if s.dispBytes == 2 {
			next.phase = AwaitingDisplacementHigh
			return next, nil, nil
		}
		return next.afterDisplacement(offset)

	case AwaitingDisplacementHigh:
		next := s
		next.dispHi = b
		return next.afterDisplacement(offset)

	case AwaitingDataLow:
		next := s
		next.dataLo = b
		if s.wide {
			next.phase = AwaitingDataHigh
			return next, nil, nil
		}
		return next.complete(offset)

	case AwaitingDataHigh:
		next := s
		next.dataHi = b
		return next.complete(offset)
	}

	return state{}, nil, fmt.Errorf("decoder in impossible phase %d at offset %d", s.phase, offset)
}

// afterDisplacement moves on once the mode byte and any displacement are in.
func (s state) afterDisplacement(offset int) (state, *Instruction, error) {
	if s.encoding == cpu.ImmediateToRegisterOrMemory {
		s.phase = AwaitingDataLow
		return s, nil, nil
	}
	return s.complete(offset)
}

// complete builds the instruction whose last byte is at offset and resets.
func (s state) complete(offset int) (state, *Instruction, error) {
	inst := s.instruction(offset)
	return state{}, &inst, nil
}

func (s state) instruction(last int) Instruction {
	inst := Instruction{
		Op:       s.encoding.Op(),
		Encoding: s.encoding,
		Offset:   s.offset,
		Size:     last - s.offset + 1,
	}

	switch s.encoding {
	case cpu.RegisterToRegisterOrMemory:
		reg := RegisterOperand(s.reg)
		if s.toReg {
			inst.Dst, inst.Src = reg, s.rmOperand()
		} else {
			inst.Dst, inst.Src = s.rmOperand(), reg
		}
	case cpu.ImmediateToRegisterOrMemory:
		inst.Dst, inst.Src = s.rmOperand(), s.immediate()
	case cpu.ImmediateToRegister:
		inst.Dst, inst.Src = RegisterOperand(s.reg), s.immediate()
	case cpu.MemoryToAccumulator:
		inst.Dst, inst.Src = RegisterOperand(cpu.Accumulator(s.wide)), s.rmOperand()
	case cpu.AccumulatorToMemory:
		inst.Dst, inst.Src = s.rmOperand(), RegisterOperand(cpu.Accumulator(s.wide))
	}
	return inst
}

// rmOperand is the operand named by the mod and r/m fields.
func (s state) rmOperand() Operand {
	if s.mode == cpu.ModeRegister {
		return RegisterOperand(cpu.ResolveRegister(s.rm, s.wide))
	}

	ea := EffectiveAddress{Base: cpu.ResolveBase(s.rm, s.mode)}
	switch {
	case ea.Direct():
		ea.Address = cpu.Word(s.dispLo, s.dispHi)
	case s.dispBytes == 1:
		ea.Disp = cpu.SignExtend(s.dispLo)
		ea.DispBytes = 1
	case s.dispBytes == 2:
		ea.Disp = int16(cpu.Word(s.dispLo, s.dispHi))
		ea.DispBytes = 2
	}
	return MemoryOperand(ea)
}

func (s state) immediate() Operand {
	if s.wide {
		return ImmediateOperand(cpu.Word(s.dataLo, s.dataHi), true)
	}
	return ImmediateOperand(uint16(s.dataLo), false)
}

// Decoder turns raw machine code into instructions in a single pass.
// A Decoder only holds its options and may be shared.
type Decoder struct {
	log    *logrus.Logger
	policy Policy
	unit   int
}

// New returns a Decoder that halts on unknown opcodes and accepts any length.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		log:    discardLogger(),
		policy: HaltOnUnknown,
		unit:   1,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Listing is the result of a decode pass.
type Listing struct {
	Instructions []Instruction
	// Skipped holds the offsets of bytes dropped under SkipUnknown.
	Skipped []int
}

// Decode returns the instructions in code, in input order.
func (d *Decoder) Decode(code []byte) ([]Instruction, error) {
	l, err := d.DecodeListing(code)
	if err != nil {
		return nil, err
	}
	return l.Instructions, nil
}

// DecodeListing decodes code and also reports skipped bytes.
// Any error discards the whole result.
func (d *Decoder) DecodeListing(code []byte) (Listing, error) {
	if rem := len(code) % d.unit; rem != 0 {
		return Listing{}, &DecodeError{
			Offset: len(code) - rem,
			Err:    fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidInputLength, len(code), d.unit),
		}
	}

	trace := d.log.IsLevelEnabled(logrus.DebugLevel)
	var out Listing
	var s state
	for i, b := range code {
		if trace {
			d.log.WithFields(stepFields(i, b, s.phase)).Debug("decode step")
		}

		next, inst, err := step(s, b, i)
		if err != nil {
			if d.policy == SkipUnknown && errors.Is(err, ErrUnrecognizedOpcode) {
				d.log.WithFields(stepFields(i, b, s.phase)).Warn("skipping unrecognized byte")
				out.Skipped = append(out.Skipped, i)
				s = state{}
				continue
			}
			d.log.WithFields(stepFields(i, b, s.phase)).Error(err)
			return Listing{}, err
		}

		s = next
		if inst != nil && trace {
			d.log.WithFields(logrus.Fields{
				"offset":   inst.Offset,
				"size":     inst.Size,
				"encoding": inst.Encoding.String(),
			}).Debug(Render(*inst))
			out.Instructions = append(out.Instructions, *inst)
		}
	}

	if s.phase != AwaitingOpcode {
		return Listing{}, &DecodeError{Offset: s.offset, Byte: s.opcode, Phase: s.phase, Err: ErrTruncatedInstruction}
	}
	return out, nil
}

func stepFields(offset int, b byte, p Phase) logrus.Fields {
	return logrus.Fields{
		"offset": offset,
		"byte":   fmt.Sprintf("0x%02x", b),
		"phase":  p.String(),
	}
}
