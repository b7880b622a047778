package cpu

import "github.com/kestrelsoft/gbcore/internal/registers"

func rlc(v uint8) (uint8, bool) {
	carry := v&0x80 != 0
	r := v<<1 | v>>7
	return r, carry
}

func rrc(v uint8) (uint8, bool) {
	carry := v&0x01 != 0
	r := v>>1 | v<<7
	return r, carry
}

func rl(v uint8, carryIn bool) (uint8, bool) {
	carry := v&0x80 != 0
	r := v << 1
	if carryIn {
		r |= 1
	}
	return r, carry
}

func rr(v uint8, carryIn bool) (uint8, bool) {
	carry := v&0x01 != 0
	r := v >> 1
	if carryIn {
		r |= 0x80
	}
	return r, carry
}

func sla(v uint8) (uint8, bool) {
	return v << 1, v&0x80 != 0
}

func sra(v uint8) (uint8, bool) {
	return v>>1 | v&0x80, v&0x01 != 0
}

func srl(v uint8) (uint8, bool) {
	return v >> 1, v&0x01 != 0
}

func swap(v uint8) uint8 { return v<<4 | v>>4 }

// shiftFlags applies the shared flag pattern for every rotate/shift
// operation: Z from the result, N and H clear, C from the bit shifted
// out.
func (c *CPU) shiftFlags(result uint8, carry bool) {
	c.Reg.Put(registers.FlagZero, result == 0)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Put(registers.FlagCarry, carry)
}

// rlca/rrca/rla/rra are the accumulator-only, one-byte forms. They use
// the same bit operations as their CB-prefixed counterparts but always
// clear Z (even if A becomes zero), matching hardware.
func (c *CPU) rlca() {
	r, carry := rlc(c.Reg.A)
	c.Reg.A = r
	c.clearA0Flags(carry)
}

func (c *CPU) rrca() {
	r, carry := rrc(c.Reg.A)
	c.Reg.A = r
	c.clearA0Flags(carry)
}

func (c *CPU) rla() {
	r, carry := rl(c.Reg.A, c.Reg.Test(registers.FlagCarry))
	c.Reg.A = r
	c.clearA0Flags(carry)
}

func (c *CPU) rra() {
	r, carry := rr(c.Reg.A, c.Reg.Test(registers.FlagCarry))
	c.Reg.A = r
	c.clearA0Flags(carry)
}

// clearA0Flags applies the accumulator-rotate flag pattern: Z, N and H
// always clear (unlike the CB-prefixed forms, which set Z from the
// result), C from the bit shifted out.
func (c *CPU) clearA0Flags(carry bool) {
	c.Reg.Clear(registers.FlagZero)
	c.Reg.Clear(registers.FlagSubtract)
	c.Reg.Clear(registers.FlagHalfCarry)
	c.Reg.Put(registers.FlagCarry, carry)
}

// executeCB runs a CB-prefixed opcode: rotate/shift/swap (group 0, sub
// op selects which), BIT (group 1), RES (group 2) or SET (group 3),
// each addressed by the standard r8 index in the low 3 bits.
func (c *CPU) executeCB(op uint8) uint8 {
	r := op & 7
	b := (op >> 3) & 7
	group := op >> 6

	mem := r == 6

	switch group {
	case 0:
		v := c.r8(r)
		var result uint8
		var carry bool
		switch b {
		case 0:
			result, carry = rlc(v)
		case 1:
			result, carry = rrc(v)
		case 2:
			result, carry = rl(v, c.Reg.Test(registers.FlagCarry))
		case 3:
			result, carry = rr(v, c.Reg.Test(registers.FlagCarry))
		case 4:
			result, carry = sla(v)
		case 5:
			result, carry = sra(v)
		case 6:
			result = swap(v)
		case 7:
			result, carry = srl(v)
		}
		c.setR8(r, result)
		c.shiftFlags(result, carry)
		if mem {
			return 16
		}
		return 8

	case 1: // BIT b, r8
		v := c.r8(r)
		c.Reg.Put(registers.FlagZero, v&(1<<b) == 0)
		c.Reg.Clear(registers.FlagSubtract)
		c.Reg.Set(registers.FlagHalfCarry)
		if mem {
			return 12
		}
		return 8

	case 2: // RES b, r8
		c.setR8(r, c.r8(r)&^(1<<b))
		if mem {
			return 16
		}
		return 8

	default: // SET b, r8
		c.setR8(r, c.r8(r)|(1<<b))
		if mem {
			return 16
		}
		return 8
	}
}
