// Package cpu implements the Sharp LR35902 instruction set: fetch,
// decode, execute and interrupt dispatch over the register file and the
// shared bus.
package cpu

import (
	"github.com/kestrelsoft/gbcore/internal/host"
	"github.com/kestrelsoft/gbcore/internal/interrupts"
	"github.com/kestrelsoft/gbcore/internal/mmu"
	"github.com/kestrelsoft/gbcore/internal/registers"
)

// CPU owns the register file, program counter, stack pointer and the
// halt/stop latches. All memory access goes through MMU.
type CPU struct {
	Reg registers.File
	PC  uint16
	SP  uint16

	Halted bool
	haltBug bool
	Stopped bool

	IRQ *interrupts.Service
	MMU *mmu.MMU
	Host host.Host
}

// New returns a CPU wired to the given bus and interrupt state. Reset
// (setting the post-boot register values) is the caller's
// responsibility, since those values differ between DMG and CGB.
func New(m *mmu.MMU, irq *interrupts.Service, h host.Host) *CPU {
	return &CPU{MMU: m, IRQ: irq, Host: h}
}

// Step runs exactly one instruction boundary: it services a pending
// interrupt if IME allows it, otherwise fetches and executes one
// opcode, and finally advances every cycle-domain peripheral by the
// resolved cost through MMU.Tick. It returns the number of T-cycles
// consumed.
func (c *CPU) Step() uint8 {
	if cycles := c.serviceInterrupt(); cycles > 0 {
		c.MMU.Tick(cycles)
		return cycles
	}

	if c.Halted {
		c.MMU.Tick(4)
		return 4
	}

	opcode := c.fetch8()
	if c.haltBug {
		// HALT with IME clear and a pending interrupt fails to advance
		// PC past the next opcode once; the instruction byte is read
		// twice. fetch8 already advanced PC, so rewind it.
		c.PC--
		c.haltBug = false
	}

	cycles := c.execute(opcode)
	c.MMU.Tick(cycles)
	return cycles
}

// serviceInterrupt pops, dispatches and clears the highest-priority
// pending interrupt if IME is set, also waking a HALTed CPU regardless
// of IME. Returns 20 (5 M-cycles) if an interrupt was serviced, else 0.
func (c *CPU) serviceInterrupt() uint8 {
	if !c.IRQ.Pending() {
		return 0
	}
	if c.Halted {
		c.Halted = false
	}
	if !c.IRQ.IME {
		return 0
	}

	bit, vector, ok := c.IRQ.Highest()
	if !ok {
		return 0
	}
	c.IRQ.Clear(bit)
	c.IRQ.IME = false
	c.push16(c.PC)
	c.PC = vector
	return 20
}

func (c *CPU) fetch8() uint8 {
	v := c.MMU.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.MMU.Write(c.SP, uint8(v>>8))
	c.SP--
	c.MMU.Write(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.MMU.Read(c.SP)
	c.SP++
	hi := c.MMU.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// handleHALT implements HALT's well-known quirk: with IME clear and an
// interrupt already pending (IE & IF & 0x1F != 0), the CPU does not
// actually halt; instead the next opcode fetch is duplicated (the
// "halt bug"). With no interrupt able to ever become pending at all
// (IE & 0x1F == 0), HALT would spin forever, which is reported to the
// host rather than silently hung.
func (c *CPU) handleHALT() {
	if !c.IRQ.IME && c.IRQ.Pending() {
		c.haltBug = true
		return
	}
	if c.IRQ.IE&interrupts.Mask == 0 {
		c.Host.Error(host.HaltForever, c.PC)
	}
	c.Halted = true
}

// handleSTOP implements STOP's CGB speed-switch overload: if KEY1's
// prepare bit is armed, STOP performs the double-speed toggle instead
// of actually stopping the CPU.
func (c *CPU) handleSTOP() {
	if c.MMU.SpeedSwitchArmed() {
		c.MMU.PerformSpeedSwitch()
		return
	}
	c.Stopped = true
}
