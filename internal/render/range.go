package render

import (
	"strconv"
	"strings"
)

// ExprRange is a half-open byte range into one rendered string.
type ExprRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered.
func (r ExprRange) Len() int { return r.End - r.Start }

// Slice returns the covered part of text.
func (r ExprRange) Slice(text string) string { return text[r.Start:r.End] }

// ReducibleRange locates a redex: the whole applied term, its head and each
// argument, left to right.
type ReducibleRange struct {
	Entire ExprRange   `json:"entire"`
	Callee ExprRange   `json:"callee"`
	Args   []ExprRange `json:"args"`
}

// FormedExpr is a rendering of the initial term of a reduction.
type FormedExpr struct {
	Text           string          `json:"expr"`
	ReducibleRange *ReducibleRange `json:"reducibleRange"`
}

// FormedReducedExpr is a rendering of one reduction step.
type FormedReducedExpr struct {
	Text           string          `json:"expr"`
	ReducedRange   ExprRange       `json:"reducedRange"`
	ReducibleRange *ReducibleRange `json:"reducibleRange"`
}

// Path names the application formed by a spine's callee and its first
// Arity arguments. Route selects the spine: starting at the root spine,
// each entry picks a 1-based argument whose own spine is entered next.
type Path struct {
	Route []int
	Arity int
}

// WithArity returns a copy of p addressing a different prefix of the same
// spine.
func (p Path) WithArity(arity int) Path {
	return Path{Route: p.Route, Arity: arity}
}

func (p Path) String() string {
	return routeKey(p.Route) + "/" + strconv.Itoa(p.Arity)
}

func routeKey(route []int) string {
	var b strings.Builder
	for i, idx := range route {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}
