package disassembler_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/i8086/cpu"
	"github.com/Urethramancer/i8086/disassembler"
)

var _ = Describe("Render", func() {
	It("is pure", func() {
		inst := decodeOne(0x8B, 0x41, 0xDB)
		Expect(disassembler.Render(inst)).To(Equal(disassembler.Render(inst)))
		Expect(inst.String()).To(Equal(disassembler.Render(inst)))
	})

	DescribeTable("effective addresses",
		func(ea disassembler.EffectiveAddress, want string) {
			Expect(ea.String()).To(Equal(want))
		},
		Entry("two registers", disassembler.EffectiveAddress{Base: cpu.BaseBPSI}, "[bp+si]"),
		Entry("one register", disassembler.EffectiveAddress{Base: cpu.BaseDI}, "[di]"),
		Entry("positive", disassembler.EffectiveAddress{Base: cpu.BaseBX, Disp: 12, DispBytes: 1}, "[bx+12]"),
		Entry("negative", disassembler.EffectiveAddress{Base: cpu.BaseBP, Disp: -3, DispBytes: 1}, "[bp-3]"),
		Entry("zero", disassembler.EffectiveAddress{Base: cpu.BaseBP, DispBytes: 1}, "[bp]"),
		Entry("direct", disassembler.EffectiveAddress{Base: cpu.BaseDirect, Address: 0xFFFF}, "[65535]"),
	)

	It("renders operands by kind", func() {
		Expect(disassembler.RegisterOperand(cpu.SP).String()).To(Equal("sp"))
		Expect(disassembler.ImmediateOperand(0x1FF, false).String()).To(Equal("255"))
		Expect(disassembler.ImmediateOperand(0xFFFF, true).String()).To(Equal("65535"))
		Expect(disassembler.Operand{}.String()).To(Equal("?"))
	})

	It("renders an immediate stored to memory as a bare number", func() {
		Expect(disassembler.Render(decodeOne(0xC6, 0x07, 0x07))).To(Equal("mov [bx], 7"))
		Expect(disassembler.Render(decodeOne(0xC6, 0x07, 0xF4))).To(Equal("mov [bx], 244"))
	})
})

var _ = Describe("RenderNasm", func() {
	It("adds a size keyword only for immediates stored to memory", func() {
		toMem := disassembler.Instruction{
			Op:  cpu.OpMOV,
			Dst: disassembler.MemoryOperand(disassembler.EffectiveAddress{Base: cpu.BaseBX}),
			Src: disassembler.ImmediateOperand(7, false),
		}
		Expect(disassembler.RenderNasm(toMem)).To(Equal("mov [bx], byte 7"))

		toReg := toMem
		toReg.Dst = disassembler.RegisterOperand(cpu.BL)
		Expect(disassembler.RenderNasm(toReg)).To(Equal("mov bl, 7"))
	})

	It("signs immediates in their own width", func() {
		Expect(disassembler.RenderNasm(decodeOne(0xB1, 0xF4))).To(Equal("mov cl, -12"))
		Expect(disassembler.RenderNasm(decodeOne(0xB8, 0xFF, 0xFF))).To(Equal("mov ax, -1"))
		Expect(disassembler.RenderNasm(decodeOne(0xC7, 0x06, 0x04, 0x00, 0xD4, 0xFE))).To(Equal("mov [4], word -300"))
	})

	It("leaves operands without immediates alone", func() {
		inst := decodeOne(0x8B, 0x41, 0xDB)
		Expect(disassembler.RenderNasm(inst)).To(Equal(disassembler.Render(inst)))
	})
})

var _ = Describe("Disassemble", func() {
	It("lists one instruction per line", func() {
		text, err := disassembler.Disassemble([]byte{0x89, 0xD9, 0xB8, 0x01, 0x00})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("mov cx, bx\nmov ax, 1\n"))
	})

	It("returns the decode error", func() {
		text, err := disassembler.Disassemble([]byte{0x89})
		Expect(err).To(MatchError(disassembler.ErrTruncatedInstruction))
		Expect(text).To(BeEmpty())
	})

	It("writes skipped bytes as data in place", func() {
		d := disassembler.New(disassembler.WithPolicy(disassembler.SkipUnknown))
		text, err := d.Disassemble([]byte{0x0F, 0x89, 0xD9, 0xFF, 0xFE}, disassembler.Layout{Header: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("bits 16\n\ndb 0x0f\nmov cx, bx\ndb 0xff, 0xfe\n"))
	})

	It("uses nasm rendering when the layout asks for it", func() {
		code := []byte{0xC6, 0x07, 0x07, 0xB1, 0xF4}

		plain, err := disassembler.New().Disassemble(code, disassembler.Layout{})
		Expect(err).NotTo(HaveOccurred())
		Expect(plain).To(Equal("mov [bx], 7\nmov cl, 244\n"))

		nasm, err := disassembler.New().Disassemble(code, disassembler.Layout{Nasm: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(nasm).To(Equal("mov [bx], byte 7\nmov cl, -12\n"))
	})

	It("splits long data runs", func() {
		code := make([]byte, 20)
		d := disassembler.New(disassembler.WithPolicy(disassembler.SkipUnknown))
		text, err := d.Disassemble(code, disassembler.Layout{})
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(strings.Count(lines[0], "0x00")).To(Equal(16))
		Expect(strings.Count(lines[1], "0x00")).To(Equal(4))
	})

	It("appends offsets and raw bytes as comments", func() {
		text, err := disassembler.New().Disassemble([]byte{0x89, 0xD9, 0xB1, 0x0C}, disassembler.Layout{Addresses: true})
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HavePrefix("mov cx, bx "))
		Expect(lines[0]).To(HaveSuffix("; 0000: 89 d9"))
		Expect(lines[1]).To(HaveSuffix("; 0002: b1 0c"))
	})
})
