package render

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/malphas-lang/ski/internal/expr"
)

// spine records where one tracked spine landed in the output. Entries of
// groupEnd are -1 unless an EcmaScript argument group closes after that
// argument.
type spine struct {
	start       int
	calleeStart int
	calleeEnd   int
	argStart    []int
	argEnd      []int
	groupEnd    []int
}

// A Layout is a rendered expression together with the positions of the
// spines its marks pass through.
type Layout struct {
	Text   string
	style  expr.DisplayStyle
	spines map[string]*spine
}

// NewLayout renders e and records the byte ranges of every marked location.
// In EcmaScript the argument group of a marked spine is split after Arity
// arguments, so f w x y z with marks of arity 1 and 3 prints as
// f(w)(x, y)(z) and each marked application is one contiguous substring.
func NewLayout(e expr.Expr, style expr.DisplayStyle, marks ...Path) *Layout {
	l := &Layout{style: style, spines: make(map[string]*spine)}

	p := &printer{
		layout:   l,
		splits:   make(map[string][]int),
		prefixes: make(map[string]bool),
	}
	for _, m := range marks {
		key := routeKey(m.Route)
		p.splits[key] = append(p.splits[key], m.Arity)
		for i := 0; i <= len(m.Route); i++ {
			p.prefixes[routeKey(m.Route[:i])] = true
		}
	}

	var root []int
	if len(marks) > 0 {
		root = []int{}
	}
	p.run(e, root)
	l.Text = p.buf.String()
	return l
}

// Style returns the syntax the layout was rendered in.
func (l *Layout) Style() expr.DisplayStyle { return l.style }

// Range returns the byte range of the application p addresses. It fails
// when p was not among the marks, or when p does not exist in the term.
func (l *Layout) Range(p Path) (ExprRange, bool) {
	sp, ok := l.spines[routeKey(p.Route)]
	if !ok {
		return ExprRange{}, false
	}
	n := len(sp.argEnd)
	switch {
	case p.Arity < 0 || p.Arity > n:
		return ExprRange{}, false
	case p.Arity == 0:
		return ExprRange{Start: sp.calleeStart, End: sp.calleeEnd}, true
	case l.style == expr.LazyK:
		// One backtick per argument precedes the callee; the application
		// of the first k arguments starts at the (n-k)th.
		return ExprRange{Start: sp.start + n - p.Arity, End: sp.argEnd[p.Arity-1]}, true
	}

	end := sp.groupEnd[p.Arity-1]
	if end < 0 {
		return ExprRange{}, false
	}
	return ExprRange{Start: sp.start, End: end}, true
}

// Reducible returns the ranges of the application p addresses, of its
// callee, and of each of its arguments.
func (l *Layout) Reducible(p Path) (*ReducibleRange, bool) {
	entire, ok := l.Range(p)
	if !ok {
		return nil, false
	}
	callee, _ := l.Range(p.WithArity(0))

	sp := l.spines[routeKey(p.Route)]
	args := lo.Times(p.Arity, func(i int) ExprRange {
		return ExprRange{Start: sp.argStart[i], End: sp.argEnd[i]}
	})
	return &ReducibleRange{Entire: entire, Callee: callee, Args: args}, true
}

// task is one unit of work on the printer's stack: render a node, write
// literal text, or store the current offset.
type task struct {
	node  expr.Expr
	route []int
	text  string
	at    *int
}

// printer renders with an explicit work stack so spine length and nesting
// depth never reach the goroutine stack.
type printer struct {
	layout   *Layout
	splits   map[string][]int
	prefixes map[string]bool

	buf   strings.Builder
	upper bool
	stack []task
}

func (p *printer) run(e expr.Expr, route []int) {
	p.stack = append(p.stack, task{node: e, route: route})
	for len(p.stack) > 0 {
		t := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		switch {
		case t.node != nil:
			p.node(t)
		case t.text != "":
			p.write(t.text)
		case t.at != nil:
			*t.at = p.buf.Len()
		}
	}
}

// push schedules tasks to run in the order given.
func (p *printer) push(tasks ...task) {
	for i := len(tasks) - 1; i >= 0; i-- {
		p.stack = append(p.stack, tasks[i])
	}
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
	p.upper = false
}

func (p *printer) mark(at *int) {
	if at != nil {
		*at = p.buf.Len()
	}
}

// ident writes a name, separating it from a preceding upper-case run in
// Lazy_K, where `X Y` would otherwise read back as the single name XY.
func (p *printer) ident(prefix string, name expr.Identifier, at *int) {
	lazyK := p.layout.style == expr.LazyK
	if lazyK && prefix == "" && p.upper && name.IsUpper() {
		p.buf.WriteByte(' ')
	}
	p.mark(at)
	p.buf.WriteString(prefix)
	p.buf.WriteString(string(name))
	p.upper = lazyK && name.IsUpper()
}

func (p *printer) node(t task) {
	var sp *spine
	if t.route != nil {
		sp = &spine{}
		p.layout.spines[routeKey(t.route)] = sp
	}

	switch n := t.node.(type) {
	case *expr.Variable:
		p.ident("", n.Name, t.at)
		p.atom(sp, t)

	case *expr.Symbol:
		p.ident(":", n.Name, t.at)
		p.atom(sp, t)

	case *expr.Lambda:
		p.mark(t.at)
		if sp != nil {
			sp.start = p.buf.Len()
			sp.calleeStart = sp.start
			p.push(task{node: n, route: nil}, task{at: &sp.calleeEnd})
			return
		}
		p.lambda(n)

	case *expr.Apply:
		p.mark(t.at)
		if p.layout.style == expr.LazyK {
			p.lazyKSpine(n, t.route, sp)
		} else {
			p.ecmaScriptSpine(n, t.route, sp)
		}
	}
}

// atom fills in the record of a tracked leaf, whose only range is itself.
func (p *printer) atom(sp *spine, t task) {
	if sp == nil {
		return
	}
	sp.calleeEnd = p.buf.Len()
	sp.calleeStart = sp.calleeEnd - len(atomText(t.node))
	sp.start = sp.calleeStart
}

func atomText(e expr.Expr) string {
	switch n := e.(type) {
	case *expr.Variable:
		return string(n.Name)
	case *expr.Symbol:
		return ":" + string(n.Name)
	}
	return ""
}

func (p *printer) lambda(n *expr.Lambda) {
	params, body := expr.Unlambda(n)

	if p.layout.style == expr.LazyK {
		var b strings.Builder
		for _, param := range params {
			b.WriteString("λ")
			b.WriteString(string(param))
			b.WriteString(".")
		}
		p.write(b.String())
		p.push(task{node: body})
		return
	}

	names := lo.Map(params, func(id expr.Identifier, _ int) string { return string(id) })
	if len(names) == 1 {
		p.write(names[0] + " => ")
	} else {
		p.write("(" + strings.Join(names, ", ") + ") => ")
	}
	p.push(task{node: body})
}

func newSpine(sp *spine, n int) {
	sp.argStart = make([]int, n)
	sp.argEnd = make([]int, n)
	sp.groupEnd = make([]int, n)
	for i := range sp.groupEnd {
		sp.groupEnd[i] = -1
	}
}

// child returns the tracked route of argument i (1-based), or nil when no
// mark passes through it.
func (p *printer) child(route []int, i int) []int {
	if route == nil {
		return nil
	}
	next := append(slices.Clip(route), i)
	if !p.prefixes[routeKey(next)] {
		return nil
	}
	return next
}

func (p *printer) lazyKSpine(n *expr.Apply, route []int, sp *spine) {
	callee, args := expr.Unapply(n)

	if sp != nil {
		newSpine(sp, len(args))
		sp.start = p.buf.Len()
	}
	p.write(strings.Repeat("`", len(args)))

	tasks := make([]task, 0, 2+2*len(args))
	if sp != nil {
		tasks = append(tasks, task{node: callee, at: &sp.calleeStart}, task{at: &sp.calleeEnd})
	} else {
		tasks = append(tasks, task{node: callee})
	}
	for i, arg := range args {
		if sp != nil {
			tasks = append(tasks,
				task{node: arg, route: p.child(route, i+1), at: &sp.argStart[i]},
				task{at: &sp.argEnd[i]},
			)
			continue
		}
		tasks = append(tasks, task{node: arg})
	}
	p.push(tasks...)
}

func (p *printer) ecmaScriptSpine(n *expr.Apply, route []int, sp *spine) {
	callee, args := expr.Unapply(n)

	var splits []int
	if sp != nil {
		newSpine(sp, len(args))
		sp.start = p.buf.Len()
		splits = p.splits[routeKey(route)]
	}

	var tasks []task
	_, lambdaCallee := callee.(*expr.Lambda)
	if lambdaCallee {
		tasks = append(tasks, task{text: "("})
	}
	if sp != nil {
		tasks = append(tasks, task{node: callee, at: &sp.calleeStart}, task{at: &sp.calleeEnd})
	} else {
		tasks = append(tasks, task{node: callee})
	}
	if lambdaCallee {
		tasks = append(tasks, task{text: ")"})
	}

	for i, arg := range args {
		k := i + 1
		if i == 0 || slices.Contains(splits, i) {
			tasks = append(tasks, task{text: "("})
		} else {
			tasks = append(tasks, task{text: ", "})
		}

		if sp != nil {
			tasks = append(tasks,
				task{node: arg, route: p.child(route, k), at: &sp.argStart[i]},
				task{at: &sp.argEnd[i]},
			)
		} else {
			tasks = append(tasks, task{node: arg})
		}

		if k == len(args) || slices.Contains(splits, k) {
			tasks = append(tasks, task{text: ")"})
			if sp != nil {
				tasks = append(tasks, task{at: &sp.groupEnd[i]})
			}
		}
	}
	p.push(tasks...)
}
