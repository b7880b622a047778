package cpu

import (
	"github.com/kestrelsoft/gbcore/internal/host"
	"github.com/kestrelsoft/gbcore/internal/registers"
)

// condTrue evaluates one of the four branch conditions used by JR, JP,
// CALL and RET's conditional forms: 0=NZ 1=Z 2=NC 3=C.
func (c *CPU) condTrue(cc uint8) bool {
	switch cc {
	case 0:
		return !c.Reg.Test(registers.FlagZero)
	case 1:
		return c.Reg.Test(registers.FlagZero)
	case 2:
		return !c.Reg.Test(registers.FlagCarry)
	default:
		return c.Reg.Test(registers.FlagCarry)
	}
}

// rr16 returns the register pair (or SP) selected by the standard 2-bit
// rr index used by INC rr/DEC rr/ADD HL,rr/LD rr,d16: 0=BC 1=DE 2=HL 3=SP.
func (c *CPU) rr16(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setRR16(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	default:
		c.SP = v
	}
}

// execute runs one fetched, non-prefix opcode and returns the T-cycles
// it consumed, including any extra cost a taken conditional branch
// adds over the base cost in op_cycles.
func (c *CPU) execute(op uint8) uint8 {
	switch op {
	case 0x00: // NOP
		return 4
	case 0x10: // STOP
		c.fetch8() // STOP's second byte is conventionally 0x00 and discarded
		c.handleSTOP()
		return 4
	case 0x76: // HALT
		c.handleHALT()
		return 4
	case 0x07: // RLCA
		c.rlca()
		return 4
	case 0x0F: // RRCA
		c.rrca()
		return 4
	case 0x17: // RLA
		c.rla()
		return 4
	case 0x1F: // RRA
		c.rra()
		return 4
	case 0x27: // DAA
		c.daa()
		return 4
	case 0x2F: // CPL
		c.cpl()
		return 4
	case 0x37: // SCF
		c.scf()
		return 4
	case 0x3F: // CCF
		c.ccf()
		return 4
	case 0xF3: // DI
		c.IRQ.IME = false
		return 4
	case 0xFB: // EI
		c.IRQ.IME = true
		return 4
	case 0xCB:
		return c.executeCB(c.fetch8())

	// 16-bit immediate and memory-indirect loads that don't fit the
	// regular rr/r8 patterns below.
	case 0x08: // LD (a16), SP
		addr := c.fetch16()
		c.MMU.Write(addr, uint8(c.SP))
		c.MMU.Write(addr+1, uint8(c.SP>>8))
		return 20
	case 0x02: // LD (BC), A
		c.MMU.Write(c.Reg.BC(), c.Reg.A)
		return 8
	case 0x12: // LD (DE), A
		c.MMU.Write(c.Reg.DE(), c.Reg.A)
		return 8
	case 0x22: // LD (HL+), A
		c.MMU.Write(c.Reg.HL(), c.Reg.A)
		c.Reg.SetHL(c.Reg.HL() + 1)
		return 8
	case 0x32: // LD (HL-), A
		c.MMU.Write(c.Reg.HL(), c.Reg.A)
		c.Reg.SetHL(c.Reg.HL() - 1)
		return 8
	case 0x0A: // LD A, (BC)
		c.Reg.A = c.MMU.Read(c.Reg.BC())
		return 8
	case 0x1A: // LD A, (DE)
		c.Reg.A = c.MMU.Read(c.Reg.DE())
		return 8
	case 0x2A: // LD A, (HL+)
		c.Reg.A = c.MMU.Read(c.Reg.HL())
		c.Reg.SetHL(c.Reg.HL() + 1)
		return 8
	case 0x3A: // LD A, (HL-)
		c.Reg.A = c.MMU.Read(c.Reg.HL())
		c.Reg.SetHL(c.Reg.HL() - 1)
		return 8

	case 0xE0: // LDH (a8), A
		c.MMU.Write(0xFF00+uint16(c.fetch8()), c.Reg.A)
		return 12
	case 0xF0: // LDH A, (a8)
		c.Reg.A = c.MMU.Read(0xFF00 + uint16(c.fetch8()))
		return 12
	case 0xE2: // LD (C), A
		c.MMU.Write(0xFF00+uint16(c.Reg.C), c.Reg.A)
		return 8
	case 0xF2: // LD A, (C)
		c.Reg.A = c.MMU.Read(0xFF00 + uint16(c.Reg.C))
		return 8
	case 0xEA: // LD (a16), A
		c.MMU.Write(c.fetch16(), c.Reg.A)
		return 16
	case 0xFA: // LD A, (a16)
		c.Reg.A = c.MMU.Read(c.fetch16())
		return 16

	case 0xE8: // ADD SP, r8
		c.SP = c.addSPSigned(int8(c.fetch8()))
		return 16
	case 0xF8: // LD HL, SP+r8
		c.Reg.SetHL(c.addSPSigned(int8(c.fetch8())))
		return 12
	case 0xF9: // LD SP, HL
		c.SP = c.Reg.HL()
		return 8

	case 0x18: // JR r8
		off := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(off))
		return 12
	case 0xC3: // JP a16
		c.PC = c.fetch16()
		return 16
	case 0xE9: // JP (HL)
		c.PC = c.Reg.HL()
		return 4
	case 0xCD: // CALL a16
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 24
	case 0xC9: // RET
		c.PC = c.pop16()
		return 16
	case 0xD9: // RETI
		c.PC = c.pop16()
		c.IRQ.IME = true
		return 16
	}

	switch {
	case op >= 0x40 && op <= 0x7F: // LD r, r' (0x76 HALT already handled above)
		dst, src := (op>>3)&7, op&7
		c.setR8(dst, c.r8(src))
		if dst == 6 || src == 6 {
			return 8
		}
		return 4

	case op >= 0x80 && op <= 0xBF: // ALU A, r8
		g, src := (op>>3)&7, op&7
		v := c.r8(src)
		c.aluOp(g, v)
		if src == 6 {
			return 8
		}
		return 4

	case op&0xC7 == 0x04: // INC r8
		idx := (op >> 3) & 7
		c.setR8(idx, c.inc8(c.r8(idx)))
		if idx == 6 {
			return 12
		}
		return 4

	case op&0xC7 == 0x05: // DEC r8
		idx := (op >> 3) & 7
		c.setR8(idx, c.dec8(c.r8(idx)))
		if idx == 6 {
			return 12
		}
		return 4

	case op&0xC7 == 0x06: // LD r8, d8
		idx := (op >> 3) & 7
		c.setR8(idx, c.fetch8())
		if idx == 6 {
			return 12
		}
		return 8

	case op&0xC7 == 0xC6: // ALU A, d8
		g := (op >> 3) & 7
		c.aluOp(g, c.fetch8())
		return 8

	case op&0xC7 == 0xC7: // RST n
		vector := uint16(op & 0x38)
		c.push16(c.PC)
		c.PC = vector
		return 16

	case op&0xCF == 0x01: // LD rr, d16
		c.setRR16((op>>4)&3, c.fetch16())
		return 12

	case op&0xCF == 0x03: // INC rr
		idx := (op >> 4) & 3
		c.setRR16(idx, c.rr16(idx)+1)
		return 8

	case op&0xCF == 0x0B: // DEC rr
		idx := (op >> 4) & 3
		c.setRR16(idx, c.rr16(idx)-1)
		return 8

	case op&0xCF == 0x09: // ADD HL, rr
		c.addHL(c.rr16((op >> 4) & 3))
		return 8

	case op&0xCF == 0xC5: // PUSH rr (2=HL, 3=AF, not SP)
		c.push16(c.pushPopRR((op>>4)&3))
		return 16

	case op&0xCF == 0xC1: // POP rr
		c.setPushPopRR((op>>4)&3, c.pop16())
		return 12

	case op&0xE7 == 0x20: // JR cc, r8
		cc := (op >> 3) & 3
		off := int8(c.fetch8())
		if c.condTrue(cc) {
			c.PC = uint16(int32(c.PC) + int32(off))
			return 12
		}
		return 8

	case op&0xE7 == 0xC2: // JP cc, a16
		cc := (op >> 3) & 3
		addr := c.fetch16()
		if c.condTrue(cc) {
			c.PC = addr
			return 16
		}
		return 12

	case op&0xE7 == 0xC4: // CALL cc, a16
		cc := (op >> 3) & 3
		addr := c.fetch16()
		if c.condTrue(cc) {
			c.push16(c.PC)
			c.PC = addr
			return 24
		}
		return 12

	case op&0xE7 == 0xC0: // RET cc
		cc := (op >> 3) & 3
		if c.condTrue(cc) {
			c.PC = c.pop16()
			return 20
		}
		return 8
	}

	c.Host.Error(host.InvalidOpcode, uint16(op))
	return 4
}

// pushPopRR/setPushPopRR use PUSH/POP's own register ordering, which
// substitutes AF for SP at index 3.
func (c *CPU) pushPopRR(idx uint8) uint16 {
	if idx == 3 {
		return c.Reg.AF()
	}
	return c.rr16(idx)
}

func (c *CPU) setPushPopRR(idx uint8, v uint16) {
	if idx == 3 {
		c.Reg.SetAF(v)
		return
	}
	c.setRR16(idx, v)
}
