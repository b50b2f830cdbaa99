package expr

import (
	"fmt"
	"strings"
)

// DisplayStyle selects a concrete syntax.
type DisplayStyle int

const (
	EcmaScript DisplayStyle = iota
	LazyK
)

func (s DisplayStyle) String() string {
	switch s {
	case EcmaScript:
		return "ecmascript"
	case LazyK:
		return "lazyk"
	default:
		return fmt.Sprintf("DisplayStyle(%d)", int(s))
	}
}

// ParseDisplayStyle accepts the names produced by String, case-insensitively,
// plus the short forms "es", "js" and "lazy_k".
func ParseDisplayStyle(name string) (DisplayStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ecmascript", "es", "js":
		return EcmaScript, nil
	case "lazyk", "lazy_k", "lazy-k":
		return LazyK, nil
	}
	return 0, fmt.Errorf("unknown display style %q", name)
}
