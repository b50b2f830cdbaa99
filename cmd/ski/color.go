package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/xyproto/vt"

	"github.com/malphas-lang/ski/internal/engine"
	"github.com/malphas-lang/ski/internal/render"
)

// printer writes session output, colouring the part of each line that was
// just reduced and the part that reduces next.
type printer struct {
	w     io.Writer
	color bool
}

var (
	colorArrow     = vt.LightGray
	colorNotice    = vt.Yellow
	colorReduced   = vt.LightGreen
	colorReducible = vt.LightRed
)

const (
	paintNone = iota
	paintReduced
	paintReducible
)

func (p printer) output(out engine.Output) {
	for _, line := range out.Lines {
		switch line.Kind {
		case engine.LineStep:
			fmt.Fprintf(p.w, "%s %s\n", p.paint(colorArrow, "→"), p.line(line))
		case engine.LineEllipsis:
			fmt.Fprintln(p.w, p.paint(colorArrow, "→ ..."))
		case engine.LineNotice:
			fmt.Fprintln(p.w, p.paint(colorNotice, line.Text))
		default:
			fmt.Fprintln(p.w, p.line(line))
		}
	}
	if out.Truncated {
		fmt.Fprintln(p.w, p.paint(colorNotice, "(stopped at the step limit)"))
	}
}

func (p printer) line(line engine.Line) string {
	if !p.color || (line.Reduced == nil && line.Reducible == nil) {
		return line.Text
	}

	paint := make([]int, len(line.Text))
	if line.Reduced != nil {
		fill(paint, *line.Reduced, paintReduced)
	}
	if line.Reducible != nil {
		fill(paint, line.Reducible.Entire, paintReducible)
	}

	var b strings.Builder
	start := 0
	for i := 1; i <= len(paint); i++ {
		if i < len(paint) && paint[i] == paint[start] {
			continue
		}
		segment := line.Text[start:i]
		switch paint[start] {
		case paintReduced:
			b.WriteString(colorReduced.Get(segment))
		case paintReducible:
			b.WriteString(colorReducible.Get(segment))
		default:
			b.WriteString(segment)
		}
		start = i
	}
	return b.String()
}

func fill(paint []int, r render.ExprRange, value int) {
	for i := r.Start; i < r.End && i < len(paint); i++ {
		paint[i] = value
	}
}

func (p printer) paint(color vt.AttributeColor, text string) string {
	if !p.color {
		return text
	}
	return color.Get(text)
}
