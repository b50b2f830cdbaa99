package engine

import (
	"strings"

	"github.com/malphas-lang/ski/internal/reduce"
	"github.com/malphas-lang/ski/internal/render"
)

// LineKind tells a front end how to present a line.
type LineKind string

const (
	LineExpr     LineKind = "expr"
	LineStep     LineKind = "step"
	LineEllipsis LineKind = "ellipsis"
	LineFunc     LineKind = "func"
	LineNotice   LineKind = "notice"
)

// Line is one line of output. Reduced and Reducible locate the parts of
// Text that changed in this step and that change in the next one.
type Line struct {
	Kind      LineKind               `json:"kind"`
	Step      int                    `json:"step,omitempty"`
	Text      string                 `json:"text"`
	Reduced   *render.ExprRange      `json:"reducedRange,omitempty"`
	Reducible *render.ReducibleRange `json:"reducibleRange,omitempty"`
}

// Output is everything one command produced.
type Output struct {
	Command   string `json:"command"`
	Lines     []Line `json:"lines"`
	Truncated bool   `json:"truncated,omitempty"`
}

// String renders the output as plain text, one line per Line.
func (o Output) String() string {
	var b strings.Builder
	for _, l := range o.Lines {
		switch l.Kind {
		case LineStep:
			b.WriteString("→ ")
			b.WriteString(l.Text)
		case LineEllipsis:
			b.WriteString("→ ...")
		default:
			b.WriteString(l.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ExprLine is the line for the initial term of a reduction.
func ExprLine(formed render.FormedExpr) Line {
	return Line{Kind: LineExpr, Text: formed.Text, Reducible: formed.ReducibleRange}
}

// StepLine is the line for one reduction step.
func StepLine(step reduce.Step) Line {
	reduced := step.Formed.ReducedRange
	return Line{
		Kind:      LineStep,
		Step:      step.Step,
		Text:      step.Formed.Text,
		Reduced:   &reduced,
		Reducible: step.Formed.ReducibleRange,
	}
}

func ellipsis() Line { return Line{Kind: LineEllipsis} }
