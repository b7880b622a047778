// Command gbcorectl is a headless driver for gbcore: it loads a ROM
// (optionally from inside a .zip/.7z archive, or via a native file
// picker when none is given), runs it for a fixed number of frames, and
// persists cart-RAM back
// to a sibling .sav file. It exists to exercise the core's host.Host
// contract end to end, not as a reference frontend.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrelsoft/gbcore"
	"github.com/kestrelsoft/gbcore/pkg/log"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcorectl"
	app.Usage = "gbcorectl [options] <rom file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "path to the ROM file, optionally inside a .zip/.7z archive"},
		cli.IntFlag{Name: "frames", Usage: "number of frames to run before exiting", Value: 60},
		cli.BoolFlag{Name: "verbose", Usage: "log non-fatal core diagnostics"},
		cli.StringFlag{Name: "diagnostics", Usage: "write opcode/LCD-mode cycle histograms (PNG) to this path prefix"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gbcorectl:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			picked, err := pickFile()
			if err != nil {
				return fmt.Errorf("no rom given and file picker failed: %w", err)
			}
			romPath = picked
		}
	}

	rom, err := loadROM(romPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", romPath, err)
	}

	savePath := savePathFor(romPath)
	ram := loadSave(savePath)

	logger := log.Nop()
	if c.Bool("verbose") {
		logger = log.New()
	}

	h := &fileHost{rom: rom, ram: ram}
	gb, err := gbcore.New(h, gbcore.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("constructing core: %w", err)
	}
	h.cartRAMDirty = false

	frames := c.Int("frames")
	if prefix := c.String("diagnostics"); prefix != "" {
		if err := runWithDiagnostics(gb, frames, prefix); err != nil {
			return err
		}
	} else {
		for i := 0; i < frames; i++ {
			gb.RunFrame()
		}
	}

	if h.cartRAMDirty {
		if err := os.WriteFile(savePath, h.ram, 0o644); err != nil {
			return fmt.Errorf("writing save %s: %w", savePath, err)
		}
	}

	fmt.Printf("ran %d frames of %q (cgb=%v)\n", frames, gb.Title(), gb.CGB())
	return nil
}

func savePathFor(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + ".sav"
}

func loadSave(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}
