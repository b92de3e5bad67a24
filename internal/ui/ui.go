// Package ui renders samples into the single status line.
package ui

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/statline/internal/model"
)

// Unit glyphs appended to the CPU and memory figures.
const (
	CPUSymbol    = "ℂ"
	MemorySymbol = "ℝ"
)

// Palette colours the glyphs of a line. The zero value leaves text plain.
type Palette struct {
	enabled bool
	bars    lipgloss.Style
	cpu     lipgloss.Style
	mem     lipgloss.Style
	heart   lipgloss.Style
}

// NewPalette returns a palette rendering ANSI colours for w when color is
// set. The profile is forced so colour survives being piped into a prompt or
// status bar.
func NewPalette(w io.Writer, color bool) Palette {
	if !color {
		return Palette{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return Palette{
		enabled: true,
		bars:    r.NewStyle().Foreground(lipgloss.Color("6")),
		cpu:     r.NewStyle().Foreground(lipgloss.Color("4")),
		mem:     r.NewStyle().Foreground(lipgloss.Color("5")),
		heart:   r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (p Palette) render(s lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return s.Render(text)
}

// Line accumulates the segments of one status line in their fixed order:
// histogram, aggregate CPU, memory, battery. The first formatting error is
// kept and every later append becomes a no-op.
type Line struct {
	buf bytes.Buffer
	pal Palette
	err error
}

func NewLine(pal Palette) *Line {
	return &Line{pal: pal}
}

func (l *Line) printf(format string, a ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(&l.buf, format, a...)
}

// Histogram appends one glyph per core.
func (l *Line) Histogram(cores []float64) {
	for _, pct := range cores {
		g := Glyph(pct)
		if g == Blank {
			l.printf("%c", g)
			continue
		}
		l.printf("%s", l.pal.render(l.pal.bars, string(g)))
	}
}

// CPU appends the aggregate percentage right-justified to three columns.
func (l *Line) CPU(total float64) {
	l.printf("%3d%s", round(total), l.pal.render(l.pal.cpu, CPUSymbol))
}

// Memory appends a space and the memory percentage.
func (l *Line) Memory(mem model.Memory) {
	l.printf(" %d%s", round(mem.UsedPercent), l.pal.render(l.pal.mem, MemorySymbol))
}

// Battery appends a space, the charge percentage and the state heart.
func (l *Line) Battery(b model.Battery) {
	l.printf(" %d%s", b.Percent, l.pal.render(l.pal.heart, Heart(b.State)))
}

// Err returns the first formatting error, if any.
func (l *Line) Err() error { return l.err }

// String returns the line without a trailing newline.
func (l *Line) String() string { return l.buf.String() }

// Flush writes the line to w in a single write, adding "\n" when newline is
// set.
func (l *Line) Flush(w io.Writer, newline bool) error {
	if l.err != nil {
		return l.err
	}
	out := l.buf.Bytes()
	if newline {
		out = append(append(make([]byte, 0, len(out)+1), out...), '\n')
	}
	_, err := w.Write(out)
	return err
}

// round rounds to the nearest integer, ties to even (42.5 -> 42, 43.5 -> 44);
// NaN renders as 0.
func round(pct float64) int {
	r := math.RoundToEven(pct)
	if math.IsNaN(r) {
		return 0
	}
	return int(r)
}
