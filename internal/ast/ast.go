// Package ast defines the XPath expression tree: an owning, cycle-free
// tree of variants, one per grammar production.
package ast

// Expr is the sealed set of expression-tree node kinds. The evaluator
// performs one exhaustive type switch over it rather than per-kind
// methods, matching the "polymorphic expressions" design note.
type Expr interface {
	exprNode()
}

// RelOp and MathOp enumerate the operators folded into Relational and
// Math nodes rather than given one AST type each.
type RelOp uint8

const (
	LessThan RelOp = iota
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

type MathOp uint8

const (
	Add MathOp = iota
	Subtract
	Multiply
	Divide
	Remainder
)

type And struct{ Left, Right Expr }
type Or struct{ Left, Right Expr }
type Equal struct{ Left, Right Expr }
type NotEqual struct{ Left, Right Expr }
type Relational struct {
	Op          RelOp
	Left, Right Expr
}
type Math struct {
	Op          MathOp
	Left, Right Expr
}
type Union struct{ Left, Right Expr }

type Negation struct{ Operand Expr }

type ContextNode struct{}
type RootNode struct{}

// LiteralKind distinguishes the two scalar literal forms the parser
// produces directly (string, number); booleans only ever arise from
// function calls at evaluation time, never as a literal production.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
)

type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
}

type Variable struct{ Name string }

type Function struct {
	Name string
	Args []Expr
}

// Axis enumerates the six recognized traversal directions.
type Axis uint8

const (
	Self Axis = iota
	Parent
	Child
	Descendant
	DescendantOrSelf
	Attribute
)

// NodeTestKind distinguishes a structural test (node()/text()/comment()/
// processing-instruction()) from a name test (an element or attribute
// name, or the wildcard "*").
type NodeTestKind uint8

const (
	TestNode NodeTestKind = iota
	TestText
	TestComment
	TestPI
	TestName
)

// NodeTest is the (kind, name) pair a Step filters candidate nodes with.
// PITarget, if PIHasTarget, further restricts processing-instruction()
// to a literal target. Name (and Prefix, for a qualified name test) are
// only meaningful when Kind is TestName.
type NodeTest struct {
	Kind        NodeTestKind
	Prefix      string
	Name        string
	PIHasTarget bool
	PITarget    string
}

type Step struct {
	Axis Axis
	Test NodeTest
}

type Predicate struct {
	Selector Expr
	Cond     Expr
}

// Path is a location path: Start evaluates to the initial node set (either
// ContextNode or RootNode for a relative/absolute path, or an arbitrary
// FilterExpr result), and Steps are applied to it in order. Each step,
// including the Predicates wrapping it, is evaluated once per node of the
// current node set, and the per-node results are concatenated.
type Path struct {
	Start Expr
	Steps []Expr // each element is a *Step or *Predicate wrapping one
}

func (*And) exprNode()         {}
func (*Or) exprNode()          {}
func (*Equal) exprNode()       {}
func (*NotEqual) exprNode()    {}
func (*Relational) exprNode()  {}
func (*Math) exprNode()        {}
func (*Union) exprNode()       {}
func (*Negation) exprNode()    {}
func (*ContextNode) exprNode() {}
func (*RootNode) exprNode()    {}
func (*Literal) exprNode()     {}
func (*Variable) exprNode()    {}
func (*Function) exprNode()    {}
func (*Step) exprNode()        {}
func (*Predicate) exprNode()   {}
func (*Path) exprNode()        {}
