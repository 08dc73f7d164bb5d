package xpath

import "fmt"

// EvalErrorKind is the runtime-error taxonomy: the evaluator aborts at the
// first error and surfaces it to the caller, never returning a partial
// result.
type EvalErrorKind int

const (
	// UnknownFunction is returned when a function-call expression names a
	// function absent from the context's function table.
	UnknownFunction EvalErrorKind = iota
	// UnknownVariable is returned when a variable reference names a
	// variable absent from the context's variable table.
	UnknownVariable
	// WrongArgumentCount is returned by a function implementation invoked
	// with an arity it does not accept.
	WrongArgumentCount
	// WrongArgumentType is returned where no coercion exists, such as the
	// union operator applied to a non-node-set operand, or a predicate
	// selector that did not produce a node set.
	WrongArgumentType
)

func (k EvalErrorKind) String() string {
	switch k {
	case UnknownFunction:
		return "unknown function"
	case UnknownVariable:
		return "unknown variable"
	case WrongArgumentCount:
		return "wrong argument count"
	case WrongArgumentType:
		return "wrong argument type"
	default:
		return "unknown error"
	}
}

// EvalError is a tagged runtime evaluation error carrying the offending
// name (function name, variable name, or the operator that rejected an
// operand type).
type EvalError struct {
	Kind EvalErrorKind
	Name string
}

func (e *EvalError) Error() string {
	if e.Name == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}
