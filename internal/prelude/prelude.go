// Package prelude provides the definitions a session starts with.
package prelude

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/malphas-lang/ski/internal/command"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/parser"
)

//go:embed default.ski
var source string

// Filename is the name diagnostics use for the built-in definitions.
const Filename = "default.ski"

var (
	once     sync.Once
	builtins *expr.Context
	loadErr  error
)

// Source returns the text of the built-in definitions.
func Source() string { return source }

// Default returns a fresh copy of the built-in context. Callers may mutate
// it freely.
func Default() *expr.Context {
	once.Do(func() {
		builtins, loadErr = Load(source, Filename)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("prelude: %v", loadErr))
	}
	return builtins.Clone()
}

// Load parses a definitions file: one definition per line, with blank
// lines and `#` comments allowed. Deletions remove earlier definitions;
// any other command is an error.
func Load(src, filename string) (*expr.Context, error) {
	lines, err := parser.ParseScript(src, parser.WithFilename(filename))
	if err != nil {
		return nil, err
	}

	ctx := expr.NewContext()
	for _, line := range lines {
		switch cmd := line.Command.(type) {
		case nil:
		case command.Update:
			ctx.Def(cmd.Func)
		case command.Delete:
			ctx.Delete(cmd.Name)
		default:
			return nil, fmt.Errorf("%s:%d: expected a definition, found %s command", filename, line.Line, command.Name(cmd))
		}
	}
	return ctx, nil
}
