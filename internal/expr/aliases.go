package expr

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// AliasCapacity is the number of remembered results: `_` plus `_0` … `_9`.
const AliasCapacity = 11

// Aliases is the bounded history of results. Index 0 is `_`, index i+1 is
// `_i`. Pushing a new result shifts every entry down one slot.
type Aliases struct {
	entries []Expr
}

// NewAliases returns an empty history.
func NewAliases() *Aliases {
	return &Aliases{}
}

// AliasName returns the identifier of slot index.
func AliasName(index int) Identifier {
	if index == 0 {
		return "_"
	}
	return Identifier("_" + strconv.Itoa(index-1))
}

// AliasIndex maps an alias identifier back to its slot.
func AliasIndex(id Identifier) (int, bool) {
	switch {
	case id == "_":
		return 0, true
	case len(id) == 2 && id[0] == '_' && '0' <= id[1] && id[1] <= '9':
		return int(id[1]-'0') + 1, true
	}
	return 0, false
}

// IsAlias reports whether id names an alias slot, populated or not.
func IsAlias(id Identifier) bool {
	_, ok := AliasIndex(id)
	return ok
}

// Push records e as the most recent result.
func (a *Aliases) Push(e Expr) {
	a.entries = slices.Insert(a.entries, 0, e)
	if len(a.entries) > AliasCapacity {
		a.entries = a.entries[:AliasCapacity]
	}
}

// Get returns the expression stored under id.
func (a *Aliases) Get(id Identifier) (Expr, bool) {
	if a == nil {
		return nil, false
	}
	i, ok := AliasIndex(id)
	if !ok || i >= len(a.entries) {
		return nil, false
	}
	return a.entries[i], true
}

// Len is the number of populated slots.
func (a *Aliases) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Clone returns an independent snapshot.
func (a *Aliases) Clone() *Aliases {
	if a == nil {
		return NewAliases()
	}
	return &Aliases{entries: slices.Clone(a.entries)}
}

// AliasEntry pairs a slot name with its expression.
type AliasEntry struct {
	Name Identifier
	Expr Expr
}

// Entries lists the populated slots, most recent first.
func (a *Aliases) Entries() []AliasEntry {
	out := make([]AliasEntry, a.Len())
	for i := range out {
		out[i] = AliasEntry{Name: AliasName(i), Expr: a.entries[i]}
	}
	return out
}
