package expr

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Context maps identifiers to definitions. The zero value is not usable;
// construct one with NewContext.
type Context struct {
	funcs map[Identifier]Func
}

// NewContext returns a context holding funcs. Later entries replace earlier
// entries with the same name.
func NewContext(funcs ...Func) *Context {
	c := &Context{funcs: make(map[Identifier]Func, len(funcs))}
	for _, f := range funcs {
		c.Def(f)
	}
	return c
}

// Def inserts f, replacing any definition with the same name.
func (c *Context) Def(f Func) {
	c.funcs[f.Name] = f
}

// Delete removes the definition of id and reports whether one existed.
func (c *Context) Delete(id Identifier) bool {
	if _, ok := c.funcs[id]; !ok {
		return false
	}
	delete(c.funcs, id)
	return true
}

// Get looks up the definition of id.
func (c *Context) Get(id Identifier) (Func, bool) {
	if c == nil {
		return Func{}, false
	}
	f, ok := c.funcs[id]
	return f, ok
}

// Has reports whether id is defined.
func (c *Context) Has(id Identifier) bool {
	_, ok := c.Get(id)
	return ok
}

// Len is the number of definitions.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.funcs)
}

// Clear removes every definition.
func (c *Context) Clear() {
	maps.Clear(c.funcs)
}

// Replace swaps the contents of c for a copy of other.
func (c *Context) Replace(other *Context) {
	c.funcs = maps.Clone(other.funcs)
	if c.funcs == nil {
		c.funcs = map[Identifier]Func{}
	}
}

// Clone returns an independent snapshot. Funcs are immutable, so only the
// map is copied.
func (c *Context) Clone() *Context {
	if c == nil {
		return NewContext()
	}
	funcs := maps.Clone(c.funcs)
	if funcs == nil {
		funcs = map[Identifier]Func{}
	}
	return &Context{funcs: funcs}
}

// Names returns the defined identifiers in listing order.
func (c *Context) Names() []Identifier {
	names := maps.Keys(c.funcs)
	slices.SortFunc(names, compareNames)
	return names
}

// Funcs returns the definitions in listing order: single-character names
// first, then by case-insensitive stem, then by numeric suffix.
func (c *Context) Funcs() []Func {
	names := c.Names()
	funcs := make([]Func, len(names))
	for i, name := range names {
		funcs[i] = c.funcs[name]
	}
	return funcs
}

var numericSuffix = regexp.MustCompile(`\A(.*?)(\d*)\z`)

func compareNames(a, b Identifier) int {
	shortA := utf8.RuneCountInString(string(a)) == 1
	shortB := utf8.RuneCountInString(string(b)) == 1
	if shortA != shortB {
		if shortA {
			return -1
		}
		return 1
	}

	ma := numericSuffix.FindStringSubmatch(string(a))
	mb := numericSuffix.FindStringSubmatch(string(b))
	if c := strings.Compare(strings.ToLower(ma[1]), strings.ToLower(mb[1])); c != 0 {
		return c
	}
	if c := strings.Compare(ma[1], mb[1]); c != 0 {
		return c
	}

	na, errA := strconv.Atoi(ma[2])
	nb, errB := strconv.Atoi(mb[2])
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	case na != nb:
		if na < nb {
			return -1
		}
		return 1
	}
	return strings.Compare(string(a), string(b))
}
