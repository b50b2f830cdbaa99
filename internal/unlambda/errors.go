package unlambda

import (
	"errors"
	"fmt"

	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/expr"
)

// ErrRecursionLimit is matched by every RecursionLimitError.
var ErrRecursionLimit = errors.New("recursion limit exceeded")

// RecursionLimitError reports a definition whose inlining nested deeper
// than the limit, which in practice means it refers to itself.
type RecursionLimitError struct {
	Name  expr.Identifier
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("inlining %s: %v (limit %d)", e.Name, ErrRecursionLimit, e.Limit)
}

func (e *RecursionLimitError) Unwrap() error { return ErrRecursionLimit }

// ToDiagnostic converts the error for display.
func (e *RecursionLimitError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageUnlambda,
		Severity: diag.SeverityError,
		Code:     diag.CodeUnlambdaRecursionLimit,
		Message:  e.Error(),
	}.WithNote("a definition that refers to itself, directly or through others, cannot be inlined")
}

// LevelError reports an elimination level outside 1 to 4.
type LevelError struct {
	Level int
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("no elimination level %d (levels are 1 to %d)", e.Level, int(LevelIota))
}

// ToDiagnostic converts the error for display.
func (e *LevelError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageUnlambda,
		Severity: diag.SeverityError,
		Code:     diag.CodeUnlambdaInvalidLevel,
		Message:  e.Error(),
	}
}
