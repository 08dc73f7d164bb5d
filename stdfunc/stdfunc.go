// Package stdfunc supplies the XPath 1.0 core function library as one
// concrete implementation of the engine's function-invocation contract.
// The engine itself only resolves names against a function table; callers
// that want the standard library install it with RegisterCore before
// evaluating.
package stdfunc

import (
	"math"
	"strings"

	"github.com/sxdgo/xpath"
)

// RegisterCore installs the XPath 1.0 core functions into table. Existing
// entries with the same names are overwritten.
func RegisterCore(table map[string]xpath.Function) {
	table["boolean"] = fnBoolean
	table["true"] = fnTrue
	table["false"] = fnFalse
	table["not"] = fnNot
	table["number"] = fnNumber
	table["string"] = fnString
	table["count"] = fnCount
	table["sum"] = fnSum
	table["last"] = fnLast
	table["position"] = fnPosition
	table["name"] = fnName
	table["local-name"] = fnLocalName
	table["concat"] = fnConcat
	table["starts-with"] = fnStartsWith
	table["contains"] = fnContains
	table["substring"] = fnSubstring
	table["substring-before"] = fnSubstringBefore
	table["substring-after"] = fnSubstringAfter
	table["string-length"] = fnStringLength
	table["normalize-space"] = fnNormalizeSpace
	table["translate"] = fnTranslate
	table["floor"] = fnFloor
	table["ceiling"] = fnCeiling
	table["round"] = fnRound
}

// NewCoreTable returns a fresh function table holding only the core
// library.
func NewCoreTable() map[string]xpath.Function {
	table := make(map[string]xpath.Function, 24)
	RegisterCore(table)
	return table
}

func arity(name string, args []xpath.Value, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return &xpath.EvalError{Kind: xpath.WrongArgumentCount, Name: name}
	}
	return nil
}

func fnBoolean(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("boolean", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	return xpath.BooleanValue(args[0].Boolean()), nil
}

func fnTrue(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("true", args, 0, 0); err != nil {
		return xpath.Value{}, err
	}
	return xpath.BooleanValue(true), nil
}

func fnFalse(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("false", args, 0, 0); err != nil {
		return xpath.Value{}, err
	}
	return xpath.BooleanValue(false), nil
}

func fnNot(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("not", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	return xpath.BooleanValue(!args[0].Boolean()), nil
}

// contextString is the implied argument of the zero-argument string forms:
// the string value of the context node.
func contextString(ctx *xpath.Context) string {
	return ctx.Doc.StringValue(ctx.Node)
}

func fnNumber(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("number", args, 0, 1); err != nil {
		return xpath.Value{}, err
	}
	if len(args) == 0 {
		return xpath.NumberValue(xpath.ParseNumber(contextString(ctx))), nil
	}
	return xpath.NumberValue(args[0].Number(ctx.Doc)), nil
}

func fnString(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("string", args, 0, 1); err != nil {
		return xpath.Value{}, err
	}
	if len(args) == 0 {
		return xpath.StringValue(contextString(ctx)), nil
	}
	return xpath.StringValue(args[0].String(ctx.Doc)), nil
}

func fnCount(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("count", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	if args[0].Kind != xpath.ValueNodes {
		return xpath.Value{}, &xpath.EvalError{Kind: xpath.WrongArgumentType, Name: "count"}
	}
	return xpath.NumberValue(float64(args[0].Nodes.Size())), nil
}

func fnSum(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("sum", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	if args[0].Kind != xpath.ValueNodes {
		return xpath.Value{}, &xpath.EvalError{Kind: xpath.WrongArgumentType, Name: "sum"}
	}
	total := 0.0
	for _, h := range args[0].Nodes {
		total += xpath.ParseNumber(ctx.Doc.StringValue(h))
	}
	return xpath.NumberValue(total), nil
}

func fnLast(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("last", args, 0, 0); err != nil {
		return xpath.Value{}, err
	}
	return xpath.NumberValue(float64(ctx.Size)), nil
}

func fnPosition(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("position", args, 0, 0); err != nil {
		return xpath.Value{}, err
	}
	return xpath.NumberValue(float64(ctx.Position)), nil
}

// namedNode picks the node whose name the name/local-name functions
// report: the first node of the argument node set, or the context node
// when no argument was given. ok is false for an empty argument set.
func namedNode(ctx *xpath.Context, args []xpath.Value) (name string, ok bool, err error) {
	if len(args) == 0 {
		return ctx.Doc.Name(ctx.Node), true, nil
	}
	if args[0].Kind != xpath.ValueNodes {
		return "", false, &xpath.EvalError{Kind: xpath.WrongArgumentType, Name: "name"}
	}
	if args[0].Nodes.Size() == 0 {
		return "", false, nil
	}
	return ctx.Doc.Name(args[0].Nodes[0]), true, nil
}

func fnName(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("name", args, 0, 1); err != nil {
		return xpath.Value{}, err
	}
	name, ok, err := namedNode(ctx, args)
	if err != nil {
		return xpath.Value{}, err
	}
	if !ok {
		return xpath.StringValue(""), nil
	}
	return xpath.StringValue(name), nil
}

func fnLocalName(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("local-name", args, 0, 1); err != nil {
		return xpath.Value{}, err
	}
	name, ok, err := namedNode(ctx, args)
	if err != nil {
		return xpath.Value{}, err
	}
	if !ok {
		return xpath.StringValue(""), nil
	}
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return xpath.StringValue(name), nil
}

func fnConcat(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("concat", args, 2, -1); err != nil {
		return xpath.Value{}, err
	}
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.String(ctx.Doc))
	}
	return xpath.StringValue(sb.String()), nil
}

func fnStartsWith(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("starts-with", args, 2, 2); err != nil {
		return xpath.Value{}, err
	}
	return xpath.BooleanValue(strings.HasPrefix(args[0].String(ctx.Doc), args[1].String(ctx.Doc))), nil
}

func fnContains(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("contains", args, 2, 2); err != nil {
		return xpath.Value{}, err
	}
	return xpath.BooleanValue(strings.Contains(args[0].String(ctx.Doc), args[1].String(ctx.Doc))), nil
}

// round implements XPath round(): the closest integer, with halves rounded
// toward positive infinity. NaN and the infinities pass through.
func round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Floor(x + 0.5)
}

func fnSubstring(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("substring", args, 2, 3); err != nil {
		return xpath.Value{}, err
	}
	runes := []rune(args[0].String(ctx.Doc))
	start := round(args[1].Number(ctx.Doc))
	end := math.Inf(1)
	if len(args) == 3 {
		end = start + round(args[2].Number(ctx.Doc))
	}

	// 1-based character positions; NaN bounds make both comparisons false
	// and yield the empty string.
	var sb strings.Builder
	for i, r := range runes {
		pos := float64(i + 1)
		if pos >= start && pos < end {
			sb.WriteRune(r)
		}
	}
	return xpath.StringValue(sb.String()), nil
}

func fnSubstringBefore(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("substring-before", args, 2, 2); err != nil {
		return xpath.Value{}, err
	}
	s, sep := args[0].String(ctx.Doc), args[1].String(ctx.Doc)
	if i := strings.Index(s, sep); i >= 0 {
		return xpath.StringValue(s[:i]), nil
	}
	return xpath.StringValue(""), nil
}

func fnSubstringAfter(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("substring-after", args, 2, 2); err != nil {
		return xpath.Value{}, err
	}
	s, sep := args[0].String(ctx.Doc), args[1].String(ctx.Doc)
	if i := strings.Index(s, sep); i >= 0 {
		return xpath.StringValue(s[i+len(sep):]), nil
	}
	return xpath.StringValue(""), nil
}

func fnStringLength(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("string-length", args, 0, 1); err != nil {
		return xpath.Value{}, err
	}
	s := contextString(ctx)
	if len(args) == 1 {
		s = args[0].String(ctx.Doc)
	}
	return xpath.NumberValue(float64(len([]rune(s)))), nil
}

func fnNormalizeSpace(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("normalize-space", args, 0, 1); err != nil {
		return xpath.Value{}, err
	}
	s := contextString(ctx)
	if len(args) == 1 {
		s = args[0].String(ctx.Doc)
	}
	return xpath.StringValue(strings.Join(strings.Fields(s), " ")), nil
}

func fnTranslate(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("translate", args, 3, 3); err != nil {
		return xpath.Value{}, err
	}
	s := args[0].String(ctx.Doc)
	from := []rune(args[1].String(ctx.Doc))
	to := []rune(args[2].String(ctx.Doc))

	// first occurrence in from wins; from-runes past the end of to delete
	mapping := make(map[rune]rune, len(from))
	drop := make(map[rune]bool)
	for i, r := range from {
		if _, seen := mapping[r]; seen || drop[r] {
			continue
		}
		if i < len(to) {
			mapping[r] = to[i]
		} else {
			drop[r] = true
		}
	}

	var sb strings.Builder
	for _, r := range s {
		if drop[r] {
			continue
		}
		if m, ok := mapping[r]; ok {
			sb.WriteRune(m)
			continue
		}
		sb.WriteRune(r)
	}
	return xpath.StringValue(sb.String()), nil
}

func fnFloor(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("floor", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	return xpath.NumberValue(math.Floor(args[0].Number(ctx.Doc))), nil
}

func fnCeiling(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("ceiling", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	return xpath.NumberValue(math.Ceil(args[0].Number(ctx.Doc))), nil
}

func fnRound(ctx *xpath.Context, args []xpath.Value) (xpath.Value, error) {
	if err := arity("round", args, 1, 1); err != nil {
		return xpath.Value{}, err
	}
	return xpath.NumberValue(round(args[0].Number(ctx.Doc))), nil
}
