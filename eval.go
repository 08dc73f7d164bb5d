package xpath

import (
	"math"

	"github.com/sxdgo/xpath/internal/ast"
)

// evaluate is the single recursive procedure walking the expression tree.
// Each sub-evaluation receives either the same context (operands of scalar
// operators, which never move the context node) or a fresh copy sized to
// the node list being iterated (path steps and predicates).
func evaluate(x ast.Expr, ctx *Context) (Value, error) {
	switch e := x.(type) {
	case *ast.Or:
		left, err := evaluate(e.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		if left.Boolean() {
			return BooleanValue(true), nil
		}
		right, err := evaluate(e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(right.Boolean()), nil

	case *ast.And:
		left, err := evaluate(e.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		if !left.Boolean() {
			return BooleanValue(false), nil
		}
		right, err := evaluate(e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(right.Boolean()), nil

	case *ast.Equal:
		eq, err := evalEquality(e.Left, e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(eq), nil

	case *ast.NotEqual:
		eq, err := evalEquality(e.Left, e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		return BooleanValue(!eq), nil

	case *ast.Relational:
		l, r, err := evalNumericPair(e.Left, e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		switch e.Op {
		case ast.LessThan:
			return BooleanValue(l < r), nil
		case ast.LessThanOrEqual:
			return BooleanValue(l <= r), nil
		case ast.GreaterThan:
			return BooleanValue(l > r), nil
		default:
			return BooleanValue(l >= r), nil
		}

	case *ast.Math:
		l, r, err := evalNumericPair(e.Left, e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		switch e.Op {
		case ast.Add:
			return NumberValue(l + r), nil
		case ast.Subtract:
			return NumberValue(l - r), nil
		case ast.Multiply:
			return NumberValue(l * r), nil
		case ast.Divide:
			return NumberValue(l / r), nil
		default:
			return NumberValue(math.Mod(l, r)), nil
		}

	case *ast.Union:
		left, err := evaluate(e.Left, ctx)
		if err != nil {
			return Value{}, err
		}
		right, err := evaluate(e.Right, ctx)
		if err != nil {
			return Value{}, err
		}
		if left.Kind != ValueNodes || right.Kind != ValueNodes {
			return Value{}, &EvalError{Kind: WrongArgumentType, Name: "union"}
		}
		out := make(Nodeset, 0, len(left.Nodes)+len(right.Nodes))
		out.AppendAll(left.Nodes)
		out.AppendAll(right.Nodes)
		return NodesValue(out), nil

	case *ast.Negation:
		v, err := evaluate(e.Operand, ctx)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(-v.Number(ctx.Doc)), nil

	case *ast.ContextNode:
		return NodesValue(Nodeset{ctx.Node}), nil

	case *ast.RootNode:
		return NodesValue(Nodeset{ctx.Doc.Root()}), nil

	case *ast.Literal:
		if e.Kind == ast.LiteralNumber {
			return NumberValue(e.Num), nil
		}
		return StringValue(e.Str), nil

	case *ast.Variable:
		v, ok := ctx.Variables[e.Name]
		if !ok {
			return Value{}, &EvalError{Kind: UnknownVariable, Name: e.Name}
		}
		return v, nil

	case *ast.Function:
		fn, ok := ctx.Functions[e.Name]
		if !ok {
			return Value{}, &EvalError{Kind: UnknownFunction, Name: e.Name}
		}
		args := make([]Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := evaluate(a, ctx)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		return fn(ctx, args)

	case *ast.Step:
		var out Nodeset
		selectAxis(ctx.Doc, e.Axis, ctx.Node, e.Test, &out)
		return NodesValue(out), nil

	case *ast.Predicate:
		return evalPredicate(e, ctx)

	case *ast.Path:
		return evalPath(e, ctx)
	}

	return Value{}, &EvalError{Kind: WrongArgumentType, Name: "expression"}
}

// evalEquality implements the three-case coercion: booleans if either side
// is a boolean, else numbers if either side is a number, else strings.
// Node-set existence semantics are deliberately not applied; a node set
// falls through its coercions like any other operand (see DESIGN.md).
func evalEquality(lx, rx ast.Expr, ctx *Context) (bool, error) {
	left, err := evaluate(lx, ctx)
	if err != nil {
		return false, err
	}
	right, err := evaluate(rx, ctx)
	if err != nil {
		return false, err
	}
	switch {
	case left.Kind == ValueBoolean || right.Kind == ValueBoolean:
		return left.Boolean() == right.Boolean(), nil
	case left.Kind == ValueNumber || right.Kind == ValueNumber:
		return left.Number(ctx.Doc) == right.Number(ctx.Doc), nil
	default:
		return left.String(ctx.Doc) == right.String(ctx.Doc), nil
	}
}

func evalNumericPair(lx, rx ast.Expr, ctx *Context) (float64, float64, error) {
	left, err := evaluate(lx, ctx)
	if err != nil {
		return 0, 0, err
	}
	right, err := evaluate(rx, ctx)
	if err != nil {
		return 0, 0, err
	}
	return left.Number(ctx.Doc), right.Number(ctx.Doc), nil
}

// evalPredicate evaluates the selector to a node set, then keeps the i-th
// node when the predicate value is a number equal to i, or when it coerces
// to boolean true otherwise. Input order is preserved.
func evalPredicate(e *ast.Predicate, ctx *Context) (Value, error) {
	sel, err := evaluate(e.Selector, ctx)
	if err != nil {
		return Value{}, err
	}
	if sel.Kind != ValueNodes {
		return Value{}, &EvalError{Kind: WrongArgumentType, Name: "predicate"}
	}

	input := sel.Nodes
	sub := ctx.NewContextFor(len(input))
	var kept Nodeset
	for _, node := range input {
		sub.Next(node)
		v, err := evaluate(e.Cond, sub)
		if err != nil {
			return Value{}, err
		}
		if v.Kind == ValueNumber {
			if float64(sub.Position) == v.Num {
				kept.Append(node)
			}
		} else if v.Boolean() {
			kept.Append(node)
		}
	}
	return NodesValue(kept), nil
}

// evalPath evaluates the starting expression to a node set, then applies
// each step to every node of the running set via a sub-context sized to
// that set, concatenating the per-node results.
func evalPath(e *ast.Path, ctx *Context) (Value, error) {
	start, err := evaluate(e.Start, ctx)
	if err != nil {
		return Value{}, err
	}
	if start.Kind != ValueNodes {
		return Value{}, &EvalError{Kind: WrongArgumentType, Name: "path"}
	}

	current := start.Nodes
	for _, step := range e.Steps {
		sub := ctx.NewContextFor(len(current))
		var next Nodeset
		for _, node := range current {
			sub.Next(node)
			v, err := evaluate(step, sub)
			if err != nil {
				return Value{}, err
			}
			if v.Kind != ValueNodes {
				return Value{}, &EvalError{Kind: WrongArgumentType, Name: "step"}
			}
			next.AppendAll(v.Nodes)
		}
		current = next
	}
	return NodesValue(current), nil
}
