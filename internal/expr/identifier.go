package expr

import (
	"strconv"
	"strings"
)

// Identifier names a variable, symbol, parameter or definition.
type Identifier string

// Iota is the name of the single-combinator basis.
const Iota Identifier = "ι"

func (id Identifier) String() string { return string(id) }

// IsUpper reports whether id is a Lazy_K upper-case run: one or more of
// [0-9A-Z_]. Two such identifiers written back to back need a separator.
func (id Identifier) IsUpper() bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if !isUpperRunByte(id[i]) {
			return false
		}
	}
	return true
}

func isUpperRunByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('A' <= b && b <= 'Z')
}

// Rename returns a fresh identifier derived from id that is not in avoid.
// Candidates are the upper-case form of id followed by that form with a
// numeric suffix 0, 1, 2, ...; the result is valid in both syntaxes.
func (id Identifier) Rename(avoid func(Identifier) bool) Identifier {
	base := strings.ToUpper(string(id))
	if !Identifier(base).IsUpper() || base[0] == '_' || ('0' <= base[0] && base[0] <= '9') {
		base = "X"
	}

	if cand := Identifier(base); cand != id && !avoid(cand) {
		return cand
	}
	for i := 0; ; i++ {
		cand := Identifier(base + strconv.Itoa(i))
		if cand != id && !avoid(cand) {
			return cand
		}
	}
}
