package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/kestrelsoft/gbcore"
	"github.com/kestrelsoft/gbcore/internal/diagnostics"
	"github.com/kestrelsoft/gbcore/internal/ppu"
	"gonum.org/v1/plot/vg"
)

var modeNames = map[ppu.Mode]string{
	ppu.ModeHBlank:    "hblank",
	ppu.ModeVBlank:    "vblank",
	ppu.ModeOAMSearch: "oam",
	ppu.ModeTransfer:  "transfer",
}

// runWithDiagnostics drives the CPU one instruction at a time instead of
// through RunFrame, so each opcode's cycle cost and each LCD mode visit's
// duration can be sampled into a Recorder, then writes two PNG
// histograms alongside prefix.
func runWithDiagnostics(gb *gbcore.GameBoy, frames int, prefix string) error {
	rec := diagnostics.NewRecorder()

	lastMode := gb.PPU.Mode()
	var modeRun uint16

	flushMode := func() {
		if modeRun > 0 {
			rec.RecordMode(modeNames[lastMode], modeRun)
		}
	}

	for f := 0; f < frames; f++ {
		for {
			opcode := gb.MMU.Read(gb.CPU.PC)
			cycles := gb.StepCPU()
			rec.RecordOpcode(opcode, cycles)

			if mode := gb.PPU.Mode(); mode != lastMode {
				flushMode()
				lastMode, modeRun = mode, 0
			}
			modeRun += uint16(cycles)

			if gb.PPU.FrameDone() {
				break
			}
		}
	}
	flushMode()

	if err := writePNG(prefix+"-opcodes.png", rec.OpcodeHistogram); err != nil {
		return fmt.Errorf("opcode histogram: %w", err)
	}
	if err := writePNG(prefix+"-modes.png", rec.ModeDurationHistogram); err != nil {
		return fmt.Errorf("mode histogram: %w", err)
	}
	return nil
}

func writePNG(path string, render func(w, h vg.Length) (image.Image, error)) error {
	img, err := render(8*vg.Inch, 5*vg.Inch)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
