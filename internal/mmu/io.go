package mmu

import "github.com/kestrelsoft/gbcore/internal/interrupts"

// readIO resolves a read in 0xFF00-0xFF7F. Addresses with no register
// behind them (APU, unassigned) fall back to a plain scratch byte so a
// probing game sees its own last write rather than a fixed constant.
func (m *MMU) readIO(addr uint16) uint8 {
	switch addr {
	case 0xFF00:
		return m.Joypad.ReadP1()
	case 0xFF01:
		return m.Serial.SB
	case 0xFF02:
		return m.Serial.SC | 0x7E
	case 0xFF04:
		return m.Timer.DIV
	case 0xFF05:
		return m.Timer.TIMA
	case 0xFF06:
		return m.Timer.TMA
	case 0xFF07:
		return m.Timer.TAC | 0xF8
	case 0xFF0F:
		return m.IRQ.ReadIF()
	case 0xFF40:
		return m.PPU.LCDC
	case 0xFF41:
		return m.PPU.ReadSTAT() | 0x80
	case 0xFF42:
		return m.PPU.SCY
	case 0xFF43:
		return m.PPU.SCX
	case 0xFF44:
		return m.PPU.LY
	case 0xFF45:
		return m.PPU.LYC
	case 0xFF46:
		return m.dmaReg
	case 0xFF47:
		return m.PPU.BGP
	case 0xFF48:
		return m.PPU.OBP0
	case 0xFF49:
		return m.PPU.OBP1
	case 0xFF4A:
		return m.PPU.WY
	case 0xFF4B:
		return m.PPU.WX
	case 0xFF4D:
		return m.ReadKEY1()
	case 0xFF4F:
		return m.PPU.ReadVBK()
	case 0xFF51, 0xFF52, 0xFF53, 0xFF54:
		return 0xFF
	case 0xFF55:
		return m.hdma.read()
	case 0xFF68:
		return m.PPU.ReadBGPI()
	case 0xFF69:
		return m.PPU.ReadBGPD()
	case 0xFF6A:
		return m.PPU.ReadOBPI()
	case 0xFF6B:
		return m.PPU.ReadOBPD()
	case 0xFF70:
		return m.ReadSVBK()
	default:
		if addr >= 0xFF30 && addr <= 0xFF3F {
			return m.waveRAM[addr-0xFF30]
		}
		return m.ioAux[addr-0xFF00]
	}
}

// writeIO resolves a write in 0xFF00-0xFF7F.
func (m *MMU) writeIO(addr uint16, value uint8) {
	switch addr {
	case 0xFF00:
		m.Joypad.WriteP1(value)
	case 0xFF01:
		m.Serial.SB = value
	case 0xFF02:
		m.Serial.WriteSC(value)
	case 0xFF04:
		m.Timer.ResetDIV()
	case 0xFF05:
		m.Timer.TIMA = value
	case 0xFF06:
		m.Timer.TMA = value
	case 0xFF07:
		m.Timer.TAC = value
	case 0xFF0F:
		m.IRQ.IF = value & interrupts.Mask
	case 0xFF40:
		m.PPU.WriteLCDC(value)
	case 0xFF41:
		m.PPU.STAT = value &^ 0x07
	case 0xFF42:
		m.PPU.SCY = value
	case 0xFF43:
		m.PPU.SCX = value
	case 0xFF44:
		// LY is read-only; writes are ignored.
	case 0xFF45:
		m.PPU.LYC = value
	case 0xFF46:
		m.triggerOAMDMA(value)
	case 0xFF47:
		m.PPU.WriteBGP(value)
	case 0xFF48:
		m.PPU.WriteOBP0(value)
	case 0xFF49:
		m.PPU.WriteOBP1(value)
	case 0xFF4A:
		m.PPU.WY = value
	case 0xFF4B:
		m.PPU.WX = value
	case 0xFF4D:
		m.WriteKEY1(value)
	case 0xFF4F:
		m.PPU.WriteVBK(value)
	case 0xFF51:
		m.hdma.srcHi = value
	case 0xFF52:
		m.hdma.srcLo = value & 0xF0
	case 0xFF53:
		m.hdma.dstHi = value & 0x1F
	case 0xFF54:
		m.hdma.dstLo = value & 0xF0
	case 0xFF55:
		m.writeHDMA5(value)
	case 0xFF68:
		m.PPU.WriteBGPI(value)
	case 0xFF69:
		m.PPU.WriteBGPD(value)
	case 0xFF6A:
		m.PPU.WriteOBPI(value)
	case 0xFF6B:
		m.PPU.WriteOBPD(value)
	case 0xFF70:
		m.WriteSVBK(value)
	default:
		if addr >= 0xFF30 && addr <= 0xFF3F {
			m.waveRAM[addr-0xFF30] = value
			return
		}
		m.ioAux[addr-0xFF00] = value
	}
}

// triggerOAMDMA performs the 160-byte copy from (value<<8) into OAM.
// Real hardware spreads this over 160 machine cycles during which most
// of the bus is inaccessible to the CPU; this core applies it
// immediately, which is observably identical for any program that
// polls completion via the documented DMA duration.
func (m *MMU) triggerOAMDMA(value uint8) {
	m.dmaReg = value
	base := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		m.PPU.WriteOAM(0xFE00+i, m.Read(base+i))
	}
}

// ReadKEY1/WriteKEY1 expose the CGB speed-switch register; the actual
// switch happens when the CPU executes STOP with the armed bit set.
func (m *MMU) ReadKEY1() uint8 {
	v := m.key1 & 0x01
	if m.PPU.DoubleSpeed() {
		v |= 0x80
	}
	return v | 0x7E
}

func (m *MMU) WriteKEY1(v uint8) { m.key1 = v & 0x01 }

// SpeedSwitchArmed reports whether KEY1's prepare-switch bit is set.
func (m *MMU) SpeedSwitchArmed() bool { return m.key1&0x01 != 0 }

// PerformSpeedSwitch toggles the PPU's double-speed mode and clears the
// armed bit, as the CPU does when STOP completes a speed switch.
func (m *MMU) PerformSpeedSwitch() {
	m.PPU.SetDoubleSpeed(!m.PPU.DoubleSpeed())
	m.key1 = 0
}

// WriteSVBK/ReadSVBK expose the CGB work-RAM bank register; bank 0
// aliases to 1, and the register is fixed at 0xFF on DMG.
func (m *MMU) WriteSVBK(v uint8) {
	if !m.CGB {
		return
	}
	b := v & 0x07
	if b == 0 {
		b = 1
	}
	m.wramBank = b
}

func (m *MMU) ReadSVBK() uint8 {
	if !m.CGB {
		return 0xFF
	}
	return m.wramBank | 0xF8
}
