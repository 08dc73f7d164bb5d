// Package token enumerates the XPath 1.0 lexeme kinds shared by the lexer,
// disambiguator, deabbreviator, and parser stages of the pipeline.
package token

// Kind is one member of the XPath token alphabet.
type Kind int

const (
	Invalid Kind = iota

	And
	Or
	Remainder // mod
	Divide    // div
	Multiply  // *, when used as the multiplicative operator

	Slash       // /
	DoubleSlash // //

	LeftParen
	RightParen
	LeftBracket
	RightBracket

	AtSign     // @
	DollarSign // $
	PlusSign
	MinusSign
	Pipe // |

	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	DoubleColon // ::
	CurrentNode // .
	ParentNode  // ..

	Literal      // quoted string, Str holds the content
	Number       // Num holds the value
	Name         // unqualified NCName, Str holds the text (also carries "*")
	PrefixedName // Str holds prefix, Str2 holds local part
	Function     // Name immediately followed by "(" and not a node-test name
	Axis         // Name immediately followed by "::"
	NodeTest     // node-test name immediately followed by "("

	EOF
)

var names = map[Kind]string{
	Invalid: "Invalid", And: "And", Or: "Or", Remainder: "Remainder", Divide: "Divide",
	Multiply: "Multiply", Slash: "Slash", DoubleSlash: "DoubleSlash", LeftParen: "LeftParen",
	RightParen: "RightParen", LeftBracket: "LeftBracket", RightBracket: "RightBracket",
	AtSign: "AtSign", DollarSign: "DollarSign", PlusSign: "PlusSign", MinusSign: "MinusSign",
	Pipe: "Pipe", Equal: "Equal", NotEqual: "NotEqual", LessThan: "LessThan",
	LessThanOrEqual: "LessThanOrEqual", GreaterThan: "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqual", DoubleColon: "DoubleColon",
	CurrentNode: "CurrentNode", ParentNode: "ParentNode", Literal: "Literal",
	Number: "Number", Name: "Name", PrefixedName: "PrefixedName", Function: "Function",
	Axis: "Axis", NodeTest: "NodeTest", EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// Token is a single lexeme. Only the fields relevant to Kind are populated:
// Str for Literal/Name/Function/Axis/NodeTest (and prefix of PrefixedName),
// Str2 for the local part of a PrefixedName, Num for Number.
type Token struct {
	Kind Kind
	Str  string
	Str2 string
	Num  float64
}

// PrecedesNodeTest, PrecedesExpression and IsOperatorPosition classify
// each token kind for the lexer's operator-name disambiguation: the
// preference boolean is recomputed from the previous token's kind after
// every successful emission.
func (k Kind) PrecedesNodeTest() bool {
	return k == AtSign || k == DoubleColon
}

func (k Kind) PrecedesExpression() bool {
	return k == LeftParen || k == LeftBracket
}

func (k Kind) IsOperatorPosition() bool {
	switch k {
	case Slash, DoubleSlash, PlusSign, MinusSign, Pipe, Equal, NotEqual,
		LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual,
		And, Or, Remainder, Divide, Multiply:
		return true
	default:
		return false
	}
}
