package cpu

import "github.com/kestrelsoft/gbcore/internal/registers"

// r8 returns the value of the register (or (HL)) addressed by the
// standard 3-bit r8 index: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *CPU) r8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case 6:
		return c.MMU.Read(c.Reg.HL())
	default:
		return c.Reg.A
	}
}

func (c *CPU) setR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case 6:
		c.MMU.Write(c.Reg.HL(), v)
	default:
		c.Reg.A = v
	}
}

func (c *CPU) add8(v uint8) {
	a := c.Reg.A
	sum := uint16(a) + uint16(v)
	c.Reg.Put(registers.FlagZero, uint8(sum) == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, (a&0xF)+(v&0xF) > 0xF)
	c.Reg.Put(registers.FlagCarry, sum > 0xFF)
	c.Reg.A = uint8(sum)
}

func (c *CPU) adc8(v uint8) {
	carry := uint16(0)
	if c.Reg.Test(registers.FlagCarry) {
		carry = 1
	}
	a := c.Reg.A
	sum := uint16(a) + uint16(v) + carry
	c.Reg.Put(registers.FlagZero, uint8(sum) == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, (a&0xF)+(v&0xF)+uint8(carry) > 0xF)
	c.Reg.Put(registers.FlagCarry, sum > 0xFF)
	c.Reg.A = uint8(sum)
}

func (c *CPU) sub8(v uint8) {
	a := c.Reg.A
	diff := int16(a) - int16(v)
	c.Reg.Put(registers.FlagZero, uint8(diff) == 0)
	c.Reg.Set(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, int16(a&0xF)-int16(v&0xF) < 0)
	c.Reg.Put(registers.FlagCarry, diff < 0)
	c.Reg.A = uint8(diff)
}

func (c *CPU) sbc8(v uint8) {
	carry := int16(0)
	if c.Reg.Test(registers.FlagCarry) {
		carry = 1
	}
	a := c.Reg.A
	diff := int16(a) - int16(v) - carry
	c.Reg.Put(registers.FlagZero, uint8(diff) == 0)
	c.Reg.Set(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, int16(a&0xF)-int16(v&0xF)-carry < 0)
	c.Reg.Put(registers.FlagCarry, diff < 0)
	c.Reg.A = uint8(diff)
}

func (c *CPU) and8(v uint8) {
	c.Reg.A &= v
	c.Reg.Put(registers.FlagZero, c.Reg.A == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Set(registers.FlagHalfCarry)
	c.Reg.Clear(registers.FlagCarry)
}

func (c *CPU) xor8(v uint8) {
	c.Reg.A ^= v
	c.Reg.Put(registers.FlagZero, c.Reg.A == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Clear(registers.FlagCarry)
}

func (c *CPU) or8(v uint8) {
	c.Reg.A |= v
	c.Reg.Put(registers.FlagZero, c.Reg.A == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Clear(registers.FlagCarry)
}

func (c *CPU) cp8(v uint8) {
	a := c.Reg.A
	c.sub8(v)
	c.Reg.A = a // CP discards the result, flags only
}

func (c *CPU) inc8(v uint8) uint8 {
	r := v + 1
	c.Reg.Put(registers.FlagZero, r == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, v&0xF == 0xF)
	return r
}

func (c *CPU) dec8(v uint8) uint8 {
	r := v - 1
	c.Reg.Put(registers.FlagZero, r == 0)
	c.Reg.Set(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, v&0xF == 0)
	return r
}

// aluOp applies ALU group g (0=ADD 1=ADC 2=SUB 3=SBC 4=AND 5=XOR 6=OR
// 7=CP) with operand v, matching the 0x80-0xBF/0xC6-0xFE opcode layout.
func (c *CPU) aluOp(g uint8, v uint8) {
	switch g {
	case 0:
		c.add8(v)
	case 1:
		c.adc8(v)
	case 2:
		c.sub8(v)
	case 3:
		c.sbc8(v)
	case 4:
		c.and8(v)
	case 5:
		c.xor8(v)
	case 6:
		c.or8(v)
	case 7:
		c.cp8(v)
	}
}

func (c *CPU) addHL(v uint16) {
	hl := c.Reg.HL()
	sum := uint32(hl) + uint32(v)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, (hl&0xFFF)+(v&0xFFF) > 0xFFF)
	c.Reg.Put(registers.FlagCarry, sum > 0xFFFF)
	c.Reg.SetHL(uint16(sum))
}

// addSPSigned implements both ADD SP,r8 and LD HL,SP+r8: the flags
// depend only on the low-byte addition, per hardware, regardless of
// the 16-bit result's sign extension.
func (c *CPU) addSPSigned(r8 int8) uint16 {
	sp := c.SP
	v := uint16(int16(r8))
	result := sp + v
	c.Reg.Clear(registers.FlagZero)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Put(registers.FlagHalfCarry, (sp&0xF)+(v&0xF) > 0xF)
	c.Reg.Put(registers.FlagCarry, (sp&0xFF)+(v&0xFF) > 0xFF)
	return result
}

func (c *CPU) daa() {
	a := c.Reg.A
	adjust := uint8(0)
	carry := false

	if c.Reg.Test(registers.FlagHalfCarry) || (!c.Reg.Test(registers.FlagSubtract) && a&0xF > 9) {
		adjust |= 0x06
	}
	if c.Reg.Test(registers.FlagCarry) || (!c.Reg.Test(registers.FlagSubtract) && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.Reg.Test(registers.FlagSubtract) {
		a -= adjust
	} else {
		a += adjust
	}

	c.Reg.A = a
	c.Reg.Put(registers.FlagZero, a == 0)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Put(registers.FlagCarry, carry)
}

func (c *CPU) cpl() {
	c.Reg.A = ^c.Reg.A
	c.Reg.Set(registers.FlagSubtract)
	c.Reg.Set(registers.FlagHalfCarry)
}

func (c *CPU) scf() {
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Set(registers.FlagCarry)
}

func (c *CPU) ccf() {
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Put(registers.FlagCarry, !c.Reg.Test(registers.FlagCarry))
}
