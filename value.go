// Package xpath evaluates XPath 1.0 expressions against an in-memory
// document.Document. An expression string is tokenized, deabbreviated,
// disambiguated, and parsed into an expression tree, which a single
// recursive evaluator walks against an evaluation context to produce one
// of the four XPath value types: boolean, number, string, or node set.
package xpath

import (
	"math"
	"strconv"
	"strings"

	"github.com/sxdgo/xpath/document"
)

// Nodeset is an ordered collection of node handles of any kind. Duplicates
// are allowed, and the evaluator never removes them or sorts a set into
// document order (callers can use document.Dedup and
// Document.SortDocumentOrder when they need conformant union output).
type Nodeset []document.Handle

// Append adds a single handle to the end of the set.
func (ns *Nodeset) Append(h document.Handle) { *ns = append(*ns, h) }

// AppendAll adds every handle of other, in order.
func (ns *Nodeset) AppendAll(other Nodeset) { *ns = append(*ns, other...) }

// Size returns the number of handles in the set.
func (ns Nodeset) Size() int { return len(ns) }

// Equal reports element-wise handle equality.
func (ns Nodeset) Equal(other Nodeset) bool {
	if len(ns) != len(other) {
		return false
	}
	for i := range ns {
		if ns[i] != other[i] {
			return false
		}
	}
	return true
}

// ValueKind tags the four variants of Value.
type ValueKind uint8

const (
	ValueBoolean ValueKind = iota
	ValueNumber
	ValueString
	ValueNodes
)

func (k ValueKind) String() string {
	switch k {
	case ValueBoolean:
		return "boolean"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueNodes:
		return "node-set"
	default:
		return "invalid"
	}
}

// Value is the tagged union every expression evaluates to. Only the field
// matching Kind is meaningful. Number uses IEEE-754 double; NaN is a legal
// value. Values are freely copyable.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Num   float64
	Str   string
	Nodes Nodeset
}

// BooleanValue creates a boolean value.
func BooleanValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// NumberValue creates a number value.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// StringValue creates a string value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NodesValue creates a node-set value.
func NodesValue(ns Nodeset) Value { return Value{Kind: ValueNodes, Nodes: ns} }

// Boolean coerces v to a boolean: a number is true unless zero or NaN, a
// string is true unless empty, a node set is true unless empty.
func (v Value) Boolean() bool {
	switch v.Kind {
	case ValueBoolean:
		return v.Bool
	case ValueNumber:
		return v.Num != 0 && v.Num == v.Num
	case ValueString:
		return v.Str != ""
	case ValueNodes:
		return len(v.Nodes) > 0
	}
	return false
}

// Number coerces v to a number. A boolean becomes 0 or 1; a string is
// parsed as an XPath number or NaN; a node set goes through its string
// value first, which is why the owning document is needed.
func (v Value) Number(doc *document.Document) float64 {
	switch v.Kind {
	case ValueBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case ValueNumber:
		return v.Num
	case ValueString:
		return ParseNumber(v.Str)
	case ValueNodes:
		return ParseNumber(v.String(doc))
	}
	return math.NaN()
}

// String coerces v to a string. A node set's string is the string value of
// its first node, or empty when the set is empty.
func (v Value) String(doc *document.Document) string {
	switch v.Kind {
	case ValueBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueNumber:
		return FormatNumber(v.Num)
	case ValueString:
		return v.Str
	case ValueNodes:
		if len(v.Nodes) == 0 {
			return ""
		}
		return doc.StringValue(v.Nodes[0])
	}
	return ""
}

// ParseNumber parses s as an XPath 1.0 number: optional leading/trailing
// whitespace, optional '-', digits with an optional fractional part. No
// exponent, no '+', no hex. Anything else is NaN.
func ParseNumber(s string) float64 {
	t := strings.Trim(s, " \t\r\n")
	if t == "" {
		return math.NaN()
	}
	body := t
	if body[0] == '-' {
		body = body[1:]
	}
	dots, digits := 0, 0
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] >= '0' && body[i] <= '9':
			digits++
		case body[i] == '.':
			dots++
		default:
			return math.NaN()
		}
	}
	if digits == 0 || dots > 1 {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// FormatNumber renders n the way XPath's string() does: "NaN" for NaN,
// "Infinity"/"-Infinity" for the infinities, integers without a decimal
// point, and otherwise the shortest decimal form with no exponent and no
// trailing zeros.
func FormatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
