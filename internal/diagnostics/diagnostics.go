// Package diagnostics is a development-only visualizer: it accumulates
// per-opcode cycle costs and LCD mode durations observed during a run
// and renders them as histograms, for performance review rather than
// for anything the core needs at runtime. gbcorectl wires it in behind
// its --diagnostics flag; nothing else in the core depends on it.
package diagnostics

import (
	"fmt"
	"image"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Recorder accumulates samples across a run. It is not safe for
// concurrent use; a host samples it from the same goroutine that drives
// RunFrame.
type Recorder struct {
	opcodeCycles [0x100][]float64
	modeCycles   map[string][]float64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{modeCycles: make(map[string][]float64)}
}

// RecordOpcode logs one executed opcode's cycle cost.
func (r *Recorder) RecordOpcode(op uint8, cycles uint8) {
	r.opcodeCycles[op] = append(r.opcodeCycles[op], float64(cycles))
}

// RecordMode logs how many cycles the PPU spent in the named mode
// (hblank, vblank, oam, transfer) for one visit.
func (r *Recorder) RecordMode(mode string, cycles uint16) {
	r.modeCycles[mode] = append(r.modeCycles[mode], float64(cycles))
}

// OpcodeHistogram renders a bar chart of mean cycle cost per opcode that
// was actually executed at least once, sized w by h pixels.
func (r *Recorder) OpcodeHistogram(w, h vg.Length) (image.Image, error) {
	p := plot.New()
	p.Title.Text = "Opcode cycle cost"
	p.Y.Label.Text = "mean T-cycles"
	p.X.Label.Text = "opcode"

	var values plotter.Values
	for _, samples := range r.opcodeCycles {
		if len(samples) == 0 {
			continue
		}
		values = append(values, mean(samples))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("diagnostics: no opcode samples recorded")
	}

	bars, err := plotter.NewBarChart(values, vg.Points(4))
	if err != nil {
		return nil, fmt.Errorf("diagnostics: new bar chart: %w", err)
	}
	p.Add(bars)

	return render(p, w, h)
}

// ModeDurationHistogram renders a bar chart of mean cycle duration per
// LCD mode.
func (r *Recorder) ModeDurationHistogram(w, h vg.Length) (image.Image, error) {
	p := plot.New()
	p.Title.Text = "LCD mode duration"
	p.Y.Label.Text = "mean T-cycles"

	names := []string{"hblank", "vblank", "oam", "transfer"}
	var values plotter.Values
	var labels []string
	for _, name := range names {
		samples := r.modeCycles[name]
		if len(samples) == 0 {
			continue
		}
		values = append(values, mean(samples))
		labels = append(labels, name)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("diagnostics: no mode samples recorded")
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("diagnostics: new bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	return render(p, w, h)
}

func render(p *plot.Plot, w, h vg.Length) (image.Image, error) {
	img := vgimg.NewWith(vgimg.UseWH(w, h))
	p.Draw(draw.New(img))
	return img.Image(), nil
}

func mean(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}
