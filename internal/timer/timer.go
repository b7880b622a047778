// Package timer implements the DIV/TIMA/TMA/TAC peripheral: DIV free-runs
// at 16384Hz, TIMA ticks at a TAC-selected rate and raises the timer
// interrupt with a TMA reload on overflow.
package timer

import "github.com/kestrelsoft/gbcore/internal/interrupts"

// divCycles is the number of CPU-domain cycles between DIV increments
// (4194304Hz / 16384Hz == 256).
const divCycles = 256

// tacCycles maps the two low bits of TAC to the CPU-domain cycle period
// between TIMA increments, in the hardware's own (non-monotonic) order:
// 4096Hz, 262144Hz, 65536Hz, 16384Hz.
var tacCycles = [4]uint16{1024, 16, 64, 256}

// Controller owns DIV, TIMA, TMA, TAC and their sub-cycle accumulators.
type Controller struct {
	DIV  uint8
	TIMA uint8
	TMA  uint8
	TAC  uint8

	divCount  uint16
	timaCount uint16

	irq *interrupts.Service
}

// New returns a Controller that raises the timer interrupt through irq.
func New(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// enabled reports whether TAC bit 2 (timer enable) is set.
func (t *Controller) enabled() bool { return t.TAC&0x04 != 0 }

// rate returns the TAC-selected cycle period for TIMA.
func (t *Controller) rate() uint16 { return tacCycles[t.TAC&0x03] }

// Tick advances the timer by cycles CPU-domain T-cycles (already
// resolved for the opcode's cost; double-speed halving does not apply to
// the timer).
func (t *Controller) Tick(cycles uint8) {
	t.divCount += uint16(cycles)
	for t.divCount >= divCycles {
		t.divCount -= divCycles
		t.DIV++
	}

	if !t.enabled() {
		return
	}

	t.timaCount += uint16(cycles)
	period := t.rate()
	for t.timaCount >= period {
		t.timaCount -= period
		t.TIMA++
		if t.TIMA == 0 {
			t.TIMA = t.TMA
			t.irq.Request(interrupts.Timer)
		}
	}
}

// ResetDIV handles a write to the DIV register: any write resets it (and
// its sub-cycle accumulator) to zero.
func (t *Controller) ResetDIV() {
	t.DIV = 0
	t.divCount = 0
}
